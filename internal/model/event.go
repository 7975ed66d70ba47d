package model

import "time"

// Event represents a published event. Organizer identity is denormalized
// onto the row: the organizer email is the sole ownership key used by
// mutate/delete authorization.
type Event struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	Title            string     `json:"event_title" gorm:"column:event_title;size:255;not null"`
	Description      string     `json:"event_description" gorm:"column:event_description;type:text;not null"`
	Date             time.Time  `json:"event_date" gorm:"column:event_date;not null;index"`
	DateEnd          *time.Time `json:"event_date_end,omitempty" gorm:"column:event_date_end"`
	Location         string     `json:"event_location" gorm:"column:event_location;size:255;not null"`
	Organizer        string     `json:"event_organizer" gorm:"column:event_organizer;size:255;not null"`
	OrganizerEmail   string     `json:"event_organizer_email" gorm:"column:event_organizer_email;size:255;not null;index"`
	OrganizerPhone   string     `json:"event_organizer_phone,omitempty" gorm:"column:event_organizer_phone;size:50"`
	OrganizerWebsite string     `json:"event_organizer_website,omitempty" gorm:"column:event_organizer_website;size:255"`
	ImageURL         string     `json:"event_image_url,omitempty" gorm:"column:event_image_url;size:512"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// EventWithViewerFlags augments an event with flags computed relative to the
// caller identity on detail requests. The flags stay false for anonymous
// viewers.
type EventWithViewerFlags struct {
	Event
	IsSignedUp bool `json:"is_signed_up"`
	IsOwner    bool `json:"is_owner"`
}
