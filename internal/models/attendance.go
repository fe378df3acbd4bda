package models

import "time"

// AttendanceStatus is either present or absent; unset checkboxes are
// ignored during marking.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// Valid reports whether the status is one of the accepted values.
func (s AttendanceStatus) Valid() bool {
	return s == AttendancePresent || s == AttendanceAbsent
}

// AttendanceRecord holds one student's status for one date. At most one
// record exists per (student_id, date); marking again overwrites.
type AttendanceRecord struct {
	ID         string           `db:"id" json:"id"`
	StudentID  string           `db:"student_id" json:"student_id"`
	Date       time.Time        `db:"date" json:"date"`
	Status     AttendanceStatus `db:"status" json:"status"`
	RecordedBy *string          `db:"recorded_by" json:"recorded_by,omitempty"`
	CreatedAt  time.Time        `db:"created_at" json:"created_at"`
}

// AttendanceCount aggregates present/absent totals for a student.
type AttendanceCount struct {
	StudentID string `db:"student_id" json:"student_id"`
	Present   int    `db:"present" json:"present"`
	Absent    int    `db:"absent" json:"absent"`
}

// StudentAttendanceRow is one row of the rolling attendance view: per-date
// statuses plus cumulative counts and percentage.
type StudentAttendanceRow struct {
	Student    Student           `json:"student"`
	Dates      map[string]string `json:"dates"`
	Present    int               `json:"present"`
	Absent     int               `json:"absent"`
	Percentage float64           `json:"percentage"`
}
