package models

import (
	"time"

	"gorm.io/gorm"
)

// PasswordReset is a single-use 6-digit code. Expired rows are not
// swept in the background; expiry is checked when the code is
// consumed.
type PasswordReset struct {
	gorm.Model
	Email     string    `json:"email" gorm:"index"`
	ResetCode string    `json:"reset_code"`
	ExpiresAt time.Time `json:"expires_at"`
}
