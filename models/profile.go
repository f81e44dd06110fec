package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PatientProfile holds the structured form of a patient's free-text
// intake. Conditions is filled by the AI extraction step; when that
// fails the raw input is stored verbatim as the only condition.
type PatientProfile struct {
	gorm.Model
	UserID     uint                         `json:"user_id" gorm:"uniqueIndex"`
	Conditions datatypes.JSONSlice[string] `json:"conditions"`
	Location   string                       `json:"location"`
	RawInput   string                       `json:"raw_input" gorm:"type:text"`
}

type ResearcherProfile struct {
	gorm.Model
	UserID            uint                         `json:"user_id" gorm:"uniqueIndex"`
	Specialties       datatypes.JSONSlice[string] `json:"specialties"`
	ResearchInterests datatypes.JSONSlice[string] `json:"research_interests"`
	ORCID             string                       `json:"orcid"`
	ResearchGate      string                       `json:"researchgate"`
	Availability      bool                         `json:"availability" gorm:"default:false"`
	Bio               string                       `json:"bio" gorm:"type:text"`
}
