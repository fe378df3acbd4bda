package models

// Default display durations in seconds, used when a department has no
// settings row (the "all" display) and as column defaults.
const (
	DefaultTextDuration  = 4
	DefaultPhotoDuration = 5
	DefaultVideoDuration = 30
)

// DepartmentSettings holds one department's TV display tuning. One row is
// auto-created per configured department at startup and never deleted.
type DepartmentSettings struct {
	ID               string `db:"id" json:"id"`
	Department       string `db:"department" json:"department"`
	TextDuration     int    `db:"text_duration" json:"text_duration"`
	PhotoDuration    int    `db:"photo_duration" json:"photo_duration"`
	VideoDuration    int    `db:"video_duration" json:"video_duration"`
	TotalWorkingDays int    `db:"total_working_days" json:"total_working_days"`
}
