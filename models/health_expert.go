package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HealthExpert is the discoverable expert record. Registered
// researchers get one when they first create their profile; externally
// sourced experts have no UserID and IsRegistered false.
type HealthExpert struct {
	gorm.Model
	UserID            uint                         `json:"user_id"`
	Name              string                       `json:"name" gorm:"not null"`
	Specialty         datatypes.JSONSlice[string] `json:"specialty"`
	ResearchInterests datatypes.JSONSlice[string] `json:"research_interests"`
	Contact           string                       `json:"contact"`
	IsRegistered      bool                         `json:"is_registered" gorm:"default:false"`
	Bio               string                       `json:"bio" gorm:"type:text"`
}
