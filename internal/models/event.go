package models

import "time"

// Event is a scheduled happening shown on boards and displays. A nil
// Department means visible to all departments.
type Event struct {
	ID              string    `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	Description     string    `db:"description" json:"description"`
	EventDate       time.Time `db:"event_date" json:"event_date"`
	EventTime       *string   `db:"event_time" json:"event_time,omitempty"`
	Venue           *string   `db:"venue" json:"venue,omitempty"`
	Department      *string   `db:"department" json:"department,omitempty"`
	CreatedBy       *string   `db:"created_by" json:"created_by,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	Image           *string   `db:"image" json:"image,omitempty"`
	DisplayDuration int       `db:"display_duration" json:"display_duration"`
	IsActive        bool      `db:"is_active" json:"is_active"`
}
