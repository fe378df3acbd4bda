package models

// Login types accepted by the login form.
const (
	LoginTypePrincipal = "principal"
	LoginTypeStaff     = "staff"
	LoginTypeGeneral   = "general"
)

// LoginRequest is the login form payload. Email is only consulted for the
// staff login type.
type LoginRequest struct {
	LoginType string `json:"login_type" form:"login_type" validate:"required,oneof=principal staff general"`
	Email     string `json:"email" form:"email" validate:"omitempty,email"`
	Password  string `json:"password" form:"password" validate:"required"`
}

// CreateNoticeRequest carries the notice form fields; the attachment travels
// separately as a multipart file.
type CreateNoticeRequest struct {
	Title             string `json:"title" form:"title" validate:"required,max=200"`
	Content           string `json:"content" form:"content" validate:"required"`
	Priority          string `json:"priority" form:"priority" validate:"omitempty,oneof=normal urgent"`
	ExpiresAt         string `json:"expires_at" form:"expires_at"`
	DisplayDuration   int    `json:"display_duration" form:"display_duration" validate:"omitempty,min=1,max=600"`
	ForAllDepartments bool   `json:"for_all_departments" form:"for_all_departments"`
}

// CreateEventRequest carries the event form fields.
type CreateEventRequest struct {
	Title           string  `json:"title" form:"title" validate:"required,max=200"`
	Description     string  `json:"description" form:"description" validate:"required"`
	EventDate       string  `json:"event_date" form:"event_date" validate:"required"`
	EventTime       *string `json:"event_time" form:"event_time"`
	Venue           *string `json:"venue" form:"venue"`
	DisplayDuration int     `json:"display_duration" form:"display_duration" validate:"omitempty,min=1,max=600"`
}

// CreateResultRequest carries the result form fields.
type CreateResultRequest struct {
	Title       string  `json:"title" form:"title" validate:"required,max=200"`
	Year        string  `json:"year" form:"year" validate:"required"`
	Semester    *string `json:"semester" form:"semester"`
	Description *string `json:"description" form:"description"`
}

// CreateMediaRequest carries the media upload form fields.
type CreateMediaRequest struct {
	ContentType     string  `json:"content_type" form:"content_type" validate:"required,oneof=image video"`
	Title           *string `json:"title" form:"title"`
	DisplayOrder    int     `json:"display_order" form:"display_order" validate:"omitempty,min=0"`
	DisplayDuration int     `json:"display_duration" form:"display_duration" validate:"omitempty,min=1,max=600"`
}

// AddStudentRequest carries a single roster entry.
type AddStudentRequest struct {
	Name           string `json:"name" form:"name" validate:"required,max=150"`
	RegisterNumber string `json:"register_number" form:"register_number" validate:"required,max=50"`
	Year           string `json:"year" form:"year" validate:"required"`
}

// MarkAttendanceRequest maps student IDs to present/absent for one date.
// Students absent from the map are left unmarked. Department is only
// consulted for the principal; HODs always mark their own roster.
type MarkAttendanceRequest struct {
	Date       string            `json:"date" form:"date" validate:"required"`
	Year       string            `json:"year" form:"year" validate:"required"`
	Department string            `json:"department" form:"department"`
	Statuses   map[string]string `json:"statuses" validate:"required,min=1"`
}

// UpdateSettingsRequest carries new display durations for a department.
type UpdateSettingsRequest struct {
	TextDuration     int `json:"text_duration" form:"text_duration" validate:"required,min=1,max=600"`
	PhotoDuration    int `json:"photo_duration" form:"photo_duration" validate:"required,min=1,max=600"`
	VideoDuration    int `json:"video_duration" form:"video_duration" validate:"required,min=1,max=600"`
	TotalWorkingDays int `json:"total_working_days" form:"total_working_days" validate:"omitempty,min=0"`
}
