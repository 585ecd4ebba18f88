package models

// ViewState is a display state of the client shell.
type ViewState string

const (
	ViewDashboard     ViewState = "DASHBOARD"
	ViewCatalog       ViewState = "CATALOG"
	ViewMyCourses     ViewState = "MY_COURSES"
	ViewAnnouncements ViewState = "ANNOUNCEMENTS"
)

// Valid reports whether the view is reachable.
func (v ViewState) Valid() bool {
	switch v {
	case ViewDashboard, ViewCatalog, ViewMyCourses, ViewAnnouncements:
		return true
	default:
		return false
	}
}

// AppState is the explicit session state passed into every query and mutation.
type AppState struct {
	User User      `json:"user"`
	View ViewState `json:"view"`
}
