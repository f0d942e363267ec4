package backendstub

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sistema-academico/academico-console/internal/api"
	"github.com/sistema-academico/academico-console/internal/shared"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.data.listUsers())
}

type userRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=admin coordinator teacher student"`
	CourseID string `json:"courseId"`
	Password string `json:"password"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !decodeValid(s, w, r, &req) {
		return
	}
	hash := s.seedHash(req.Password)
	created := s.data.createUser(api.User{
		Name: req.Name, Email: req.Email, Role: req.Role, CourseID: req.CourseID,
	}, hash)
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !decodeValid(s, w, r, &req) {
		return
	}
	updated, err := s.data.updateUser(chi.URLParam(r, "id"), api.User{
		Name: req.Name, Email: req.Email, Role: req.Role, CourseID: req.CourseID,
	})
	if respondNotFound(w, err) {
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if respondNotFound(w, s.data.deleteUser(chi.URLParam(r, "id"))) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.data.listCourses())
}

func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	detail, err := s.data.getCourse(chi.URLParam(r, "id"))
	if respondNotFound(w, err) {
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

type courseRequest struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required"`
	Description string `json:"description"`
}

func (s *Server) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	var req courseRequest
	if !decodeValid(s, w, r, &req) {
		return
	}
	created := s.data.createCourse(api.Course{Name: req.Name, Code: req.Code, Description: req.Description})
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	var req courseRequest
	if !decodeValid(s, w, r, &req) {
		return
	}
	updated, err := s.data.updateCourse(chi.URLParam(r, "id"), api.Course{Name: req.Name, Code: req.Code, Description: req.Description})
	if respondNotFound(w, err) {
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	if respondNotFound(w, s.data.deleteCourse(chi.URLParam(r, "id"))) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := s.data.subjectsOf(chi.URLParam(r, "courseID"), chi.URLParam(r, "semesterID"))
	if respondNotFound(w, err) {
		return
	}
	writeJSON(w, http.StatusOK, subjects)
}

func (s *Server) handleListSemesters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.data.listSemesters())
}

type semesterRequest struct {
	Code      string `json:"code" validate:"required"`
	CourseID  string `json:"courseId" validate:"required"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
}

func (s *Server) handleCreateSemester(w http.ResponseWriter, r *http.Request) {
	var req semesterRequest
	if !decodeValid(s, w, r, &req) {
		return
	}
	created := s.data.createSemester(api.Semester{
		Code: req.Code, CourseID: req.CourseID, StartDate: req.StartDate, EndDate: req.EndDate,
	})
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateSemester(w http.ResponseWriter, r *http.Request) {
	var req semesterRequest
	if !decodeValid(s, w, r, &req) {
		return
	}
	updated, err := s.data.updateSemester(chi.URLParam(r, "id"), api.Semester{
		Code: req.Code, CourseID: req.CourseID, StartDate: req.StartDate, EndDate: req.EndDate,
	})
	if respondNotFound(w, err) {
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteSemester(w http.ResponseWriter, r *http.Request) {
	if respondNotFound(w, s.data.deleteSemester(chi.URLParam(r, "id"))) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// seedHash hashes a fresh password, falling back to the seed hash when the
// request omitted one.
func (s *Server) seedHash(password string) []byte {
	if password == "" {
		password = s.opts.SeedPassword
	}
	hash, err := bcryptHash(password)
	if err != nil {
		return nil
	}
	return hash
}

func decodeValid(s *Server, w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida")
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida")
		return false
	}
	return true
}

func respondNotFound(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, shared.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Registro não encontrado")
		return true
	}
	writeError(w, http.StatusInternalServerError, "Erro interno")
	return true
}
