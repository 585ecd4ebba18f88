package models

import "strings"

// CourseCategory groups courses in the catalog.
type CourseCategory string

const (
	CategoryCS   CourseCategory = "CS"
	CategoryMath CourseCategory = "MATH"
	CategoryEng  CourseCategory = "ENG"
	CategorySci  CourseCategory = "SCI"
	CategoryArt  CourseCategory = "ART"
)

// Valid reports whether the category is known.
func (c CourseCategory) Valid() bool {
	switch c {
	case CategoryCS, CategoryMath, CategoryEng, CategorySci, CategoryArt:
		return true
	default:
		return false
	}
}

// SyllabusDelimiter separates the short description from the syllabus body.
const SyllabusDelimiter = "---"

// Course is a catalog entry with its enrollment list.
// Invariant: len(EnrolledIDs) <= Capacity and EnrolledIDs holds no duplicates.
type Course struct {
	ID             string         `json:"id"`
	Code           string         `json:"code"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Syllabus       string         `json:"syllabus,omitempty"`
	InstructorID   string         `json:"instructor_id"`
	InstructorName string         `json:"instructor_name"`
	Schedule       string         `json:"schedule"`
	Capacity       int            `json:"capacity"`
	EnrolledIDs    []string       `json:"enrolled_ids"`
	Category       CourseCategory `json:"category"`
	Image          string         `json:"image,omitempty"`
}

// SeatsRemaining returns capacity minus current enrollment.
func (c Course) SeatsRemaining() int {
	return c.Capacity - len(c.EnrolledIDs)
}

// IsFull reports whether no seat is left.
func (c Course) IsFull() bool {
	return len(c.EnrolledIDs) >= c.Capacity
}

// IsEnrolled reports whether userID holds a seat.
func (c Course) IsEnrolled(userID string) bool {
	for _, id := range c.EnrolledIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Summary returns the description up to the syllabus delimiter.
func (c Course) Summary() string {
	summary, _, _ := strings.Cut(c.Description, SyllabusDelimiter)
	return strings.TrimSpace(summary)
}

// Clone returns a deep copy so the enrollment slice is not shared.
func (c Course) Clone() Course {
	out := c
	out.EnrolledIDs = append([]string(nil), c.EnrolledIDs...)
	if out.EnrolledIDs == nil {
		out.EnrolledIDs = []string{}
	}
	return out
}

// CourseDraft carries the caller-supplied fields of a new course.
type CourseDraft struct {
	Code        string         `json:"code" validate:"required"`
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description"`
	Syllabus    string         `json:"syllabus"`
	Schedule    string         `json:"schedule"`
	Category    CourseCategory `json:"category" validate:"required,oneof=CS MATH ENG SCI ART"`
	Capacity    int            `json:"capacity" validate:"gte=0"`
	Image       string         `json:"image"`
}
