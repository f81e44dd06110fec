package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ClinicalTrial is either created by a researcher (CreatedBy set) or
// pulled in from ClinicalTrials.gov (CreatedBy zero).
type ClinicalTrial struct {
	gorm.Model
	NCTID       string                       `json:"nct_id" gorm:"uniqueIndex"`
	Title       string                       `json:"title" gorm:"type:text;not null"`
	Description string                       `json:"description" gorm:"type:text"`
	Phase       string                       `json:"phase"`
	Status      string                       `json:"status"`
	Location    string                       `json:"location"`
	Eligibility string                       `json:"eligibility" gorm:"type:text"`
	Contact     string                       `json:"contact"`
	Conditions  datatypes.JSONSlice[string] `json:"conditions"`
	CreatedBy   uint                         `json:"created_by"`
}
