package models

import (
	"fmt"

	"gorm.io/gorm"
)

type MeetingStatus string

const (
	MeetingPending  MeetingStatus = "pending"
	MeetingApproved MeetingStatus = "approved"
	MeetingRejected MeetingStatus = "rejected"
)

// MeetingRequest goes from a patient to a health expert.
type MeetingRequest struct {
	gorm.Model
	PatientID uint          `json:"patient_id" gorm:"index"`
	ExpertID  uint          `json:"expert_id" gorm:"index"`
	Status    MeetingStatus `json:"status"`
	Notes     string        `json:"notes" gorm:"type:text"`
}

func (m *MeetingRequest) BeforeCreate(tx *gorm.DB) error {
	if m.Status == "" {
		m.Status = MeetingPending
	}
	return nil
}

func (m *MeetingRequest) UpdateStatus(tx *gorm.DB, newStatus MeetingStatus) error {
	if m.Status != MeetingPending {
		return fmt.Errorf("no transitions allowed from %s", m.Status)
	}
	if newStatus != MeetingApproved && newStatus != MeetingRejected {
		return fmt.Errorf("invalid transition from pending to %s", newStatus)
	}
	m.Status = newStatus
	return tx.Save(m).Error
}
