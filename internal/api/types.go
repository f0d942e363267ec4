package api

import "github.com/sistema-academico/academico-console/internal/permission"

// UserPayload is the user object the auth endpoints return.
type UserPayload struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	CourseID   string `json:"courseId,omitempty"`
	CourseName string `json:"courseName,omitempty"`
}

// LoginRequest is the credential exchange payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is a successful credential exchange.
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	User        UserPayload `json:"user"`
}

// Identity is the whoami payload: the authenticated user plus the
// resource grants scoped to them.
type Identity struct {
	User      UserPayload           `json:"user"`
	Resources []permission.Resource `json:"resources"`
}

// RefreshResponse carries a re-issued access token.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// User is a managed account record.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	CourseID   string `json:"courseId,omitempty"`
	CourseName string `json:"courseName,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// Course is an academic course.
type Course struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Code            string `json:"code"`
	Description     string `json:"description,omitempty"`
	CoordinatorID   string `json:"coordinatorId,omitempty"`
	CoordinatorName string `json:"coordinatorName,omitempty"`
	CreatedAt       string `json:"createdAt,omitempty"`
	UpdatedAt       string `json:"updatedAt,omitempty"`
}

// Semester is a dated slice of a course.
type Semester struct {
	ID         string `json:"id"`
	Code       string `json:"code"`
	CourseID   string `json:"courseId"`
	CourseName string `json:"courseName,omitempty"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// Subject is a discipline taught within a semester.
type Subject struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Credits     int    `json:"credits"`
	SemesterID  string `json:"semesterId"`
	TeacherID   string `json:"teacherId,omitempty"`
	TeacherName string `json:"teacherName,omitempty"`
}

// CourseDetail is a course together with its semesters.
type CourseDetail struct {
	Course
	Semesters []Semester `json:"semesters,omitempty"`
}
