package models

import (
	"time"
)

type UserType string

const (
	TypePatient    UserType = "patient"
	TypeResearcher UserType = "researcher"
)

type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Email          string    `json:"email" gorm:"uniqueIndex"`
	Password       string    `json:"password,omitempty"`
	UserType       UserType  `json:"user_type"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
