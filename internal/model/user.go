package model

import "time"

// User represents a registered member of the events platform.
type User struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	FirstName         string    `json:"first_name" gorm:"size:100;not null"`
	LastName          string    `json:"last_name" gorm:"size:100;not null"`
	Email             string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash      string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role              string    `json:"role,omitempty" gorm:"size:50"`
	EmailVerified     bool      `json:"email_verified" gorm:"default:false"`
	VerificationToken *string   `json:"-" gorm:"size:64;index"` // present only while unverified
	JoinDate          time.Time `json:"join_date" gorm:"column:join_date;autoCreateTime"`
	UpdatedAt         time.Time `json:"-"`
}

// Sanitized returns a copy with credential fields stripped at the value
// level, so a sanitized record can never leak them regardless of how it is
// serialized downstream.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	u.VerificationToken = nil
	return u
}
