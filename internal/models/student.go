package models

import "time"

// Student is a roster entry used by the attendance register. Students are
// soft-deleted, never removed.
type Student struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	RegisterNumber string    `db:"register_number" json:"register_number"`
	Department     string    `db:"department" json:"department"`
	Year           string    `db:"year" json:"year"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	IsActive       bool      `db:"is_active" json:"is_active"`
}

// StudentFilter scopes roster listings.
type StudentFilter struct {
	Department string
	Year       string
	ActiveOnly bool
}
