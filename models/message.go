package models

import (
	"gorm.io/gorm"
)

// Message is a direct message between two users. The Read flag is
// persisted but there is currently no endpoint that flips it.
type Message struct {
	gorm.Model
	FromUser uint   `json:"from_user" gorm:"index"`
	ToUser   uint   `json:"to_user" gorm:"index"`
	Content  string `json:"message" gorm:"type:text;not null"`
	Read     bool   `json:"read" gorm:"default:false"`
}
