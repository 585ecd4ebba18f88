package models

import "time"

// Announcement is an immutable notice. A nil CourseID marks a global announcement.
type Announcement struct {
	ID         string    `json:"id"`
	CourseID   *string   `json:"course_id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Date       time.Time `json:"date"`
	AuthorName string    `json:"author_name"`
}

// IsGlobal reports whether the announcement targets everyone.
func (a Announcement) IsGlobal() bool {
	return a.CourseID == nil
}

// AnnouncementDraft carries the caller-supplied fields of a new announcement.
type AnnouncementDraft struct {
	CourseID *string `json:"course_id"`
	Title    string  `json:"title" validate:"required"`
	Message  string  `json:"message" validate:"required"`
}
