package session

// Role is the coarse role tag of a principal. The four known roles are a
// closed set; unknown tags coming from the backend are preserved as-is
// and simply match none of the constants.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleCoordinator Role = "coordinator"
	RoleTeacher     Role = "teacher"
	RoleStudent     Role = "student"
)

// ParseRole converts a backend role string into a Role. Unknown tags are
// kept verbatim rather than rejected.
func ParseRole(s string) Role {
	return Role(s)
}

// Known reports whether the role is one of the four closed variants.
func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleCoordinator, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// Principal is the authenticated actor. It is immutable for the lifetime
// of a session and replaced wholesale on re-login; the session store is
// its only owner.
type Principal struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	CourseID   string `json:"courseId,omitempty"`
	CourseName string `json:"courseName,omitempty"`
}
