package models

import (
	"time"
)

// Verification lifecycle states for a user account.
const (
	VerificationStatusUnverified = "unverified"
	VerificationStatusVerified   = "verified"
)

// User represents a marketplace account. Accounts start unverified with a
// single-use email verification token; a verified user always has a nil token.
type User struct {
	BaseModel
	Username                   string     `gorm:"uniqueIndex" json:"username"`
	Email                      string     `gorm:"uniqueIndex" json:"email"`
	PasswordHash               string     `json:"-"`
	Role                       string     `json:"role"`
	VerificationStatus         string     `gorm:"default:unverified" json:"verification_status"`
	VerificationToken          *string    `gorm:"uniqueIndex" json:"-"`
	VerificationTokenCreatedAt *time.Time `json:"-"`
}

// IsVerified reports whether the account completed email verification.
func (u *User) IsVerified() bool {
	return u.VerificationStatus == VerificationStatusVerified
}
