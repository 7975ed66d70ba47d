package model

import "time"

// Signup records a user's intent to attend an event. The (user, event) pair
// is unique; the composite index turns duplicate signups into store-level
// conflicts rather than silent double rows.
type Signup struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_event"`
	EventID   uint      `json:"event_id" gorm:"not null;uniqueIndex:idx_user_event;index"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User  User  `json:"-" gorm:"foreignKey:UserID"`
	Event Event `json:"-" gorm:"foreignKey:EventID"`
}
