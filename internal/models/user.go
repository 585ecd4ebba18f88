package models

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleStudent    UserRole = "STUDENT"
	RoleInstructor UserRole = "INSTRUCTOR"
	RoleAdmin      UserRole = "ADMIN"
)

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsStaff reports whether the role teaches or administers courses.
func (r UserRole) IsStaff() bool {
	return r == RoleInstructor || r == RoleAdmin
}

// User is a selectable identity. Users are never created or edited at runtime.
type User struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Role      UserRole `json:"role"`
	Email     string   `json:"email"`
	AvatarURL string   `json:"avatar_url,omitempty"`
}

// FindUser returns the user with the given id from users.
func FindUser(users []User, id string) (User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}
