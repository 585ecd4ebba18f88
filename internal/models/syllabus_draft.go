package models

import "time"

// SyllabusDraftStatus tracks an asynchronous syllabus generation.
type SyllabusDraftStatus string

const (
	SyllabusDraftPending SyllabusDraftStatus = "PENDING"
	SyllabusDraftReady   SyllabusDraftStatus = "READY"
)

// SyllabusDraft is a generated course description awaiting use in a course draft.
type SyllabusDraft struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Category    CourseCategory      `json:"category"`
	Status      SyllabusDraftStatus `json:"status"`
	Text        string              `json:"text,omitempty"`
	RequestedBy string              `json:"requested_by"`
	CreatedAt   time.Time           `json:"created_at"`
	FinishedAt  *time.Time          `json:"finished_at,omitempty"`
}
