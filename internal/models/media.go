package models

import "time"

// Media content types.
const (
	MediaImage = "image"
	MediaVideo = "video"
)

// MediaContent is an uploaded image or video cycled on TV displays. A nil
// Department means shown on every department's display.
type MediaContent struct {
	ID              string    `db:"id" json:"id"`
	Department      *string   `db:"department" json:"department,omitempty"`
	ContentType     string    `db:"content_type" json:"content_type"`
	FilePath        string    `db:"file_path" json:"file_path"`
	Title           *string   `db:"title" json:"title,omitempty"`
	DisplayOrder    int       `db:"display_order" json:"display_order"`
	DisplayDuration int       `db:"display_duration" json:"display_duration"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	IsActive        bool      `db:"is_active" json:"is_active"`
}
