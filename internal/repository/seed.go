package repository

import (
	"time"

	"github.com/noah-isme/courseconnect-api/internal/models"
)

// Seed holds the collections a session starts from.
type Seed struct {
	Users         []models.User
	Courses       []models.Course
	Announcements []models.Announcement
}

func (s Seed) snapshot(version uint64) *Snapshot {
	return &Snapshot{
		Version:       version,
		Users:         append([]models.User(nil), s.Users...),
		Courses:       cloneCourses(s.Courses),
		Announcements: cloneAnnouncements(s.Announcements),
	}
}

// DefaultSeed returns the demo identities, catalog and announcements. Announcement
// dates are set to now.
func DefaultSeed(now time.Time) Seed {
	python := "c1"
	return Seed{
		Users: []models.User{
			{ID: "u1", Name: "Alice Student", Role: models.RoleStudent, Email: "alice@uni.edu"},
			{ID: "u2", Name: "Bob Student", Role: models.RoleStudent, Email: "bob@uni.edu"},
			{ID: "u3", Name: "Dr. Smith", Role: models.RoleInstructor, Email: "smith@uni.edu"},
			{ID: "u4", Name: "Prof. Johnson", Role: models.RoleInstructor, Email: "johnson@uni.edu"},
			{ID: "u5", Name: "Admin User", Role: models.RoleAdmin, Email: "admin@uni.edu"},
		},
		Courses: []models.Course{
			{
				ID:             "c1",
				Code:           "CS101",
				Title:          "Introduction to Python",
				Description:    "A comprehensive dive into Python programming fundamentals, data structures, and algorithms.",
				InstructorID:   "u3",
				InstructorName: "Dr. Smith",
				Schedule:       "Mon/Wed 10:00 AM",
				Capacity:       30,
				EnrolledIDs:    []string{"u2"},
				Category:       models.CategoryCS,
				Image:          "https://picsum.photos/400/200?random=1",
			},
			{
				ID:             "c2",
				Code:           "CS202",
				Title:          "Java for Enterprise",
				Description:    "Advanced Java concepts focusing on Spring Boot and enterprise application architecture.",
				InstructorID:   "u4",
				InstructorName: "Prof. Johnson",
				Schedule:       "Tue/Thu 02:00 PM",
				Capacity:       25,
				EnrolledIDs:    []string{},
				Category:       models.CategoryCS,
				Image:          "https://picsum.photos/400/200?random=2",
			},
			{
				ID:             "c3",
				Code:           "MATH101",
				Title:          "Calculus I",
				Description:    "Limits, derivatives, and integrals. The foundation of modern mathematics.",
				InstructorID:   "u3",
				InstructorName: "Dr. Smith",
				Schedule:       "Fri 09:00 AM",
				Capacity:       50,
				EnrolledIDs:    []string{"u1"},
				Category:       models.CategoryMath,
				Image:          "https://picsum.photos/400/200?random=3",
			},
		},
		Announcements: []models.Announcement{
			{
				ID:         "a1",
				Title:      "Welcome to Fall Semester",
				Message:    "Registration is now open for all students. Please check your schedule.",
				Date:       now.UTC(),
				AuthorName: "Admin User",
			},
			{
				ID:         "a2",
				CourseID:   &python,
				Title:      "Python Setup",
				Message:    "Please ensure you have Python 3.10 installed before the first class.",
				Date:       now.UTC(),
				AuthorName: "Dr. Smith",
			},
		},
	}
}
