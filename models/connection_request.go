package models

import (
	"fmt"

	"gorm.io/gorm"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// ConnectionRequest is deduplicated on the exact (FromUser, ToUser)
// pair only; the reverse direction is a separate request.
type ConnectionRequest struct {
	gorm.Model
	FromUser uint          `json:"from_user" gorm:"index"`
	ToUser   uint          `json:"to_user" gorm:"index"`
	Status   RequestStatus `json:"status"`
}

func (r *ConnectionRequest) BeforeCreate(tx *gorm.DB) error {
	if r.Status == "" {
		r.Status = RequestPending
	}
	return nil
}

func (r *ConnectionRequest) UpdateStatus(tx *gorm.DB, newStatus RequestStatus) error {
	if r.Status != RequestPending {
		return fmt.Errorf("no transitions allowed from %s", r.Status)
	}
	if newStatus != RequestAccepted && newStatus != RequestRejected {
		return fmt.Errorf("invalid transition from pending to %s", newStatus)
	}
	r.Status = newStatus
	return tx.Save(r).Error
}
