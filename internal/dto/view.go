package dto

import "github.com/noah-isme/courseconnect-api/internal/models"

// ViewResponse is the rendered projection of the current view for the current user.
type ViewResponse struct {
	View          models.ViewState      `json:"view"`
	Title         string                `json:"title"`
	Actions       ViewActions           `json:"actions"`
	Summary       *DashboardSummary     `json:"summary,omitempty"`
	Courses       []CourseCard          `json:"courses,omitempty"`
	Announcements []models.Announcement `json:"announcements,omitempty"`
	Version       uint64                `json:"version"`
}

// ViewActions lists the page level controls available to the user.
type ViewActions struct {
	CreateCourse     bool `json:"create_course"`
	PostAnnouncement bool `json:"post_announcement"`
}

// DashboardSummary holds the quick stats shown above the dashboard grid.
type DashboardSummary struct {
	TotalCourses       int     `json:"total_courses"`
	MyCourses          int     `json:"my_courses"`
	MyCoursesLabel     string  `json:"my_courses_label"`
	LatestAnnouncement *string `json:"latest_announcement"`
}

// CourseCard is a course plus the per-user flags that drive its controls.
type CourseCard struct {
	models.Course
	Summary        string `json:"summary"`
	SeatsRemaining int    `json:"seats_remaining"`
	EnrolledCount  int    `json:"enrolled_count"`
	IsEnrolled     bool   `json:"is_enrolled"`
	IsFull         bool   `json:"is_full"`
	CanRegister    bool   `json:"can_register"`
	CanDrop        bool   `json:"can_drop"`
	CanManage      bool   `json:"can_manage"`
}
