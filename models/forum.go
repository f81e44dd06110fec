package models

import (
	"gorm.io/gorm"
)

type Forum struct {
	gorm.Model
	Category    string `json:"category" gorm:"not null"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	CreatedBy   uint   `json:"created_by"`
}

// ForumPost forms a reply tree via ParentID. The parent reference is
// not checked at write time.
type ForumPost struct {
	gorm.Model
	ForumID  uint   `json:"forum_id" gorm:"index"`
	UserID   uint   `json:"user_id"`
	Content  string `json:"content" gorm:"type:text;not null"`
	ParentID *uint  `json:"parent_id"`
}
