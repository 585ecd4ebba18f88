// Package policy decides which actions a user may take. Every function is a
// pure predicate over its arguments.
package policy

import "github.com/noah-isme/courseconnect-api/internal/models"

// CanManageCourses reports whether the user may create courses.
func CanManageCourses(user models.User) bool {
	return user.Role.IsStaff()
}

// CanAnnounce reports whether the user may post announcements.
func CanAnnounce(user models.User) bool {
	return user.Role.IsStaff()
}

// CanManageCourse reports whether the user may delete or export the given course.
// Admins manage every course, instructors only their own.
func CanManageCourse(user models.User, course models.Course) bool {
	switch user.Role {
	case models.RoleAdmin:
		return true
	case models.RoleInstructor:
		return course.InstructorID == user.ID
	default:
		return false
	}
}

// CanEnroll reports whether the user may register for or drop courses.
func CanEnroll(user models.User) bool {
	return user.Role == models.RoleStudent
}

// CanViewActivity reports whether the user may read the activity feed and reset the session.
func CanViewActivity(user models.User) bool {
	return user.Role == models.RoleAdmin
}
