// Package enrollment applies course and announcement mutations to store snapshots.
//
// Every operation takes the current collection and returns a new one; inputs are
// never modified in place. Capacity and duplicate checks run before the mutation,
// so no result can violate len(EnrolledIDs) <= Capacity or hold a user twice.
// Invalid requests (missing course, full course, already enrolled, not enrolled)
// are no-ops reported through Outcome rather than errors.
package enrollment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/courseconnect-api/internal/models"
)

// DefaultCapacity is used when a draft does not specify a capacity.
const DefaultCapacity = 30

// Outcome describes what an operation did to the collection.
type Outcome string

const (
	OutcomeApplied       Outcome = "applied"
	OutcomeCourseMissing Outcome = "course_missing"
	OutcomeFull          Outcome = "full"
	OutcomeDuplicate     Outcome = "already_enrolled"
	OutcomeNotEnrolled   Outcome = "not_enrolled"
)

// Changed reports whether the operation installed a new value.
func (o Outcome) Changed() bool {
	return o == OutcomeApplied
}

// Config tunes engine defaults.
type Config struct {
	DefaultCapacity int
	NewID           func() string
	Now             func() time.Time
	ImageURL        func(time.Time) string
}

// Engine holds the identifier and clock sources used by create operations.
type Engine struct {
	defaultCapacity int
	newID           func() string
	now             func() time.Time
	imageURL        func(time.Time) string
}

// New constructs an Engine with sane defaults.
func New(cfg Config) *Engine {
	if cfg.DefaultCapacity <= 0 {
		cfg.DefaultCapacity = DefaultCapacity
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.ImageURL == nil {
		cfg.ImageURL = placeholderImage
	}
	return &Engine{defaultCapacity: cfg.DefaultCapacity, newID: cfg.NewID, now: cfg.Now, imageURL: cfg.ImageURL}
}

func placeholderImage(t time.Time) string {
	return fmt.Sprintf("https://picsum.photos/400/200?random=%d", t.UnixMilli())
}

// Register appends userID to the course's enrollment if a seat is free and the
// user is not already enrolled. Course order and all other fields are preserved.
func (e *Engine) Register(courses []models.Course, userID, courseID string) ([]models.Course, Outcome) {
	idx := indexOf(courses, courseID)
	if idx < 0 {
		return courses, OutcomeCourseMissing
	}
	course := courses[idx]
	if course.IsEnrolled(userID) {
		return courses, OutcomeDuplicate
	}
	if course.IsFull() {
		return courses, OutcomeFull
	}
	updated := course.Clone()
	updated.EnrolledIDs = append(updated.EnrolledIDs, userID)
	return replaceAt(courses, idx, updated), OutcomeApplied
}

// Unregister removes userID from the course's enrollment if present.
func (e *Engine) Unregister(courses []models.Course, userID, courseID string) ([]models.Course, Outcome) {
	idx := indexOf(courses, courseID)
	if idx < 0 {
		return courses, OutcomeCourseMissing
	}
	course := courses[idx]
	if !course.IsEnrolled(userID) {
		return courses, OutcomeNotEnrolled
	}
	updated := course.Clone()
	remaining := make([]string, 0, len(updated.EnrolledIDs))
	for _, id := range updated.EnrolledIDs {
		if id != userID {
			remaining = append(remaining, id)
		}
	}
	updated.EnrolledIDs = remaining
	return replaceAt(courses, idx, updated), OutcomeApplied
}

// CreateCourse appends a new course authored by author with an empty roster.
// The draft is taken as-is; callers validate required fields.
func (e *Engine) CreateCourse(courses []models.Course, draft models.CourseDraft, author models.User) ([]models.Course, models.Course) {
	now := e.now()
	capacity := draft.Capacity
	if capacity <= 0 {
		capacity = e.defaultCapacity
	}
	image := draft.Image
	if image == "" {
		image = e.imageURL(now)
	}
	course := models.Course{
		ID:             e.uniqueCourseID(courses),
		Code:           draft.Code,
		Title:          draft.Title,
		Description:    draft.Description,
		Syllabus:       draft.Syllabus,
		InstructorID:   author.ID,
		InstructorName: author.Name,
		Schedule:       draft.Schedule,
		Capacity:       capacity,
		EnrolledIDs:    []string{},
		Category:       draft.Category,
		Image:          image,
	}
	out := make([]models.Course, 0, len(courses)+1)
	out = append(out, courses...)
	out = append(out, course)
	return out, course
}

// DeleteCourse removes the course with courseID. Unknown ids leave the collection unchanged.
func (e *Engine) DeleteCourse(courses []models.Course, courseID string) ([]models.Course, Outcome) {
	idx := indexOf(courses, courseID)
	if idx < 0 {
		return courses, OutcomeCourseMissing
	}
	out := make([]models.Course, 0, len(courses)-1)
	out = append(out, courses[:idx]...)
	out = append(out, courses[idx+1:]...)
	return out, OutcomeApplied
}

// CreateAnnouncement prepends a new announcement so the collection stays newest first.
func (e *Engine) CreateAnnouncement(announcements []models.Announcement, draft models.AnnouncementDraft, author models.User) ([]models.Announcement, models.Announcement) {
	var courseID *string
	if draft.CourseID != nil && *draft.CourseID != "" {
		id := *draft.CourseID
		courseID = &id
	}
	ann := models.Announcement{
		ID:         e.uniqueAnnouncementID(announcements),
		CourseID:   courseID,
		Title:      draft.Title,
		Message:    draft.Message,
		Date:       e.now().UTC(),
		AuthorName: author.Name,
	}
	out := make([]models.Announcement, 0, len(announcements)+1)
	out = append(out, ann)
	out = append(out, announcements...)
	return out, ann
}

func (e *Engine) uniqueCourseID(courses []models.Course) string {
	for {
		id := e.newID()
		if indexOf(courses, id) < 0 {
			return id
		}
	}
}

func (e *Engine) uniqueAnnouncementID(announcements []models.Announcement) string {
	for {
		id := e.newID()
		taken := false
		for _, a := range announcements {
			if a.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
	}
}

func indexOf(courses []models.Course, courseID string) int {
	for i, c := range courses {
		if c.ID == courseID {
			return i
		}
	}
	return -1
}

func replaceAt(courses []models.Course, idx int, course models.Course) []models.Course {
	out := make([]models.Course, len(courses))
	copy(out, courses)
	out[idx] = course
	return out
}
