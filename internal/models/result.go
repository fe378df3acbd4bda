package models

import "time"

// Result is a published exam/semester result. Department is required;
// results never carry the department-null "visible to all" convention.
type Result struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Department  string    `db:"department" json:"department"`
	Year        string    `db:"year" json:"year"`
	Semester    *string   `db:"semester" json:"semester,omitempty"`
	Description *string   `db:"description" json:"description,omitempty"`
	FilePath    *string   `db:"file_path" json:"file_path,omitempty"`
	CreatedBy   *string   `db:"created_by" json:"created_by,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	IsActive    bool      `db:"is_active" json:"is_active"`
}
