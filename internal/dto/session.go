package dto

import "github.com/noah-isme/courseconnect-api/internal/models"

// SwitchUserRequest selects another identity from the closed user list.
type SwitchUserRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// NavigateRequest selects the current view.
type NavigateRequest struct {
	View models.ViewState `json:"view" binding:"required"`
}

// SessionResponse describes the current session state and the capabilities it grants.
type SessionResponse struct {
	User         models.User      `json:"user"`
	View         models.ViewState `json:"view"`
	Capabilities Capabilities     `json:"capabilities"`
}

// Capabilities mirrors the role checks that gate the client controls.
type Capabilities struct {
	ManageCourses bool `json:"manage_courses"`
	Announce      bool `json:"announce"`
	Enroll        bool `json:"enroll"`
	ViewActivity  bool `json:"view_activity"`
}
