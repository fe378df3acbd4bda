package models

import "time"

// Notice priorities. The column is free-form; these are the values the
// forms submit.
const (
	PriorityNormal = "normal"
	PriorityUrgent = "urgent"
)

// Notice is a posted announcement. A nil Department or ForAllDepartments
// makes it visible college-wide; soft delete is the only delete path.
type Notice struct {
	ID                string     `db:"id" json:"id"`
	Title             string     `db:"title" json:"title"`
	Content           string     `db:"content" json:"content"`
	Department        *string    `db:"department" json:"department,omitempty"`
	Priority          string     `db:"priority" json:"priority"`
	CreatedBy         *string    `db:"created_by" json:"created_by,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	ExpiresAt         *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	Attachment        *string    `db:"attachment" json:"attachment,omitempty"`
	AttachmentType    *string    `db:"attachment_type" json:"attachment_type,omitempty"`
	IsActive          bool       `db:"is_active" json:"is_active"`
	Views             int        `db:"views" json:"views"`
	DisplayDuration   int        `db:"display_duration" json:"display_duration"`
	ForAllDepartments bool       `db:"for_all_departments" json:"for_all_departments"`
}

// ContentFilter scopes content listings. When Scoped is true only items
// belonging to Department or shared with every department are returned;
// otherwise no department restriction applies (principal view).
type ContentFilter struct {
	Department  string
	Scoped      bool
	ActiveOnly  bool
	OldestFirst bool
	Limit       int
}
