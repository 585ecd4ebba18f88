package models

import "time"

// DomainEventType names an effective store mutation.
type DomainEventType string

const (
	EventCourseRegistered   DomainEventType = "course.registered"
	EventCourseUnregistered DomainEventType = "course.unregistered"
	EventCourseCreated      DomainEventType = "course.created"
	EventCourseDeleted      DomainEventType = "course.deleted"
	EventAnnouncementPosted DomainEventType = "announcement.posted"
	EventSessionReset       DomainEventType = "session.reset"
)

// DomainEvent describes a mutation after it has been installed in the store.
type DomainEvent struct {
	ID         string          `json:"id"`
	Type       DomainEventType `json:"type"`
	CourseID   string          `json:"course_id,omitempty"`
	UserID     string          `json:"user_id,omitempty"`
	Subject    string          `json:"subject,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}
