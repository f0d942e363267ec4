package backendstub

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sistema-academico/academico-console/internal/api"
	"github.com/sistema-academico/academico-console/internal/shared"
)

type account struct {
	api.User
	passwordHash []byte
}

// Dataset is the stub's in-memory academic data, seeded with the demo
// accounts and one course worth of records.
type Dataset struct {
	mu        sync.Mutex
	accounts  map[string]*account
	byEmail   map[string]string
	courses   map[string]api.Course
	semesters map[string]api.Semester
	subjects  map[string][]api.Subject
}

// NewDataset seeds the demo records. Every seeded account shares the
// provided bcrypt password hash.
func NewDataset(passwordHash []byte) *Dataset {
	d := &Dataset{
		accounts:  make(map[string]*account),
		byEmail:   make(map[string]string),
		courses:   make(map[string]api.Course),
		semesters: make(map[string]api.Semester),
		subjects:  make(map[string][]api.Subject),
	}

	seedUsers := []api.User{
		{ID: "1", Name: "João Silva", Email: "admin@academic.com", Role: "admin"},
		{ID: "2", Name: "Maria Santos", Email: "coord@academic.com", Role: "coordinator", CourseID: "course-1", CourseName: "Engenharia de Software"},
		{ID: "3", Name: "Pedro Costa", Email: "teacher@academic.com", Role: "teacher", CourseID: "course-1", CourseName: "Engenharia de Software"},
		{ID: "4", Name: "Ana Oliveira", Email: "student@academic.com", Role: "student", CourseID: "course-1", CourseName: "Engenharia de Software"},
	}
	now := timestamp()
	for _, u := range seedUsers {
		u.CreatedAt, u.UpdatedAt = now, now
		d.accounts[u.ID] = &account{User: u, passwordHash: passwordHash}
		d.byEmail[u.Email] = u.ID
	}

	d.courses["course-1"] = api.Course{
		ID: "course-1", Name: "Engenharia de Software", Code: "ESW",
		CoordinatorID: "2", CoordinatorName: "Maria Santos",
		CreatedAt: now, UpdatedAt: now,
	}
	d.semesters["sem-2026-1"] = api.Semester{
		ID: "sem-2026-1", Code: "2026.1", CourseID: "course-1", CourseName: "Engenharia de Software",
		StartDate: "2026-02-02", EndDate: "2026-06-26", CreatedAt: now, UpdatedAt: now,
	}
	d.semesters["sem-2026-2"] = api.Semester{
		ID: "sem-2026-2", Code: "2026.2", CourseID: "course-1", CourseName: "Engenharia de Software",
		StartDate: "2026-08-03", EndDate: "2026-12-11", CreatedAt: now, UpdatedAt: now,
	}
	d.subjects["sem-2026-1"] = []api.Subject{
		{ID: "subj-1", Name: "Algoritmos", Code: "ALG01", Credits: 4, SemesterID: "sem-2026-1", TeacherID: "3", TeacherName: "Pedro Costa"},
		{ID: "subj-2", Name: "Banco de Dados", Code: "BD01", Credits: 4, SemesterID: "sem-2026-1", TeacherID: "3", TeacherName: "Pedro Costa"},
	}
	return d
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func (d *Dataset) findByEmail(email string) (*account, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id, ok := d.byEmail[email]
	if !ok {
		return nil, false
	}
	acc := *d.accounts[id]
	return &acc, true
}

func (d *Dataset) findByID(id string) (*account, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	acc, ok := d.accounts[id]
	if !ok {
		return nil, false
	}
	cp := *acc
	return &cp, true
}

func (d *Dataset) listUsers() []api.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]api.User, 0, len(d.accounts))
	for _, acc := range d.accounts {
		out = append(out, acc.User)
	}
	return out
}

func (d *Dataset) createUser(u api.User, passwordHash []byte) api.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	u.ID = uuid.NewString()
	u.CreatedAt, u.UpdatedAt = timestamp(), timestamp()
	d.accounts[u.ID] = &account{User: u, passwordHash: passwordHash}
	d.byEmail[u.Email] = u.ID
	return u
}

func (d *Dataset) updateUser(id string, u api.User) (api.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	acc, ok := d.accounts[id]
	if !ok {
		return api.User{}, shared.ErrNotFound
	}
	delete(d.byEmail, acc.Email)
	u.ID = id
	u.CreatedAt = acc.CreatedAt
	u.UpdatedAt = timestamp()
	acc.User = u
	d.byEmail[u.Email] = id
	return u, nil
}

func (d *Dataset) deleteUser(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	acc, ok := d.accounts[id]
	if !ok {
		return shared.ErrNotFound
	}
	delete(d.byEmail, acc.Email)
	delete(d.accounts, id)
	return nil
}

func (d *Dataset) listCourses() []api.Course {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]api.Course, 0, len(d.courses))
	for _, c := range d.courses {
		out = append(out, c)
	}
	return out
}

func (d *Dataset) getCourse(id string) (api.CourseDetail, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.courses[id]
	if !ok {
		return api.CourseDetail{}, shared.ErrNotFound
	}
	detail := api.CourseDetail{Course: c}
	for _, s := range d.semesters {
		if s.CourseID == id {
			detail.Semesters = append(detail.Semesters, s)
		}
	}
	return detail, nil
}

func (d *Dataset) createCourse(c api.Course) api.Course {
	d.mu.Lock()
	defer d.mu.Unlock()
	c.ID = uuid.NewString()
	c.CreatedAt, c.UpdatedAt = timestamp(), timestamp()
	d.courses[c.ID] = c
	return c
}

func (d *Dataset) updateCourse(id string, c api.Course) (api.Course, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	cur, ok := d.courses[id]
	if !ok {
		return api.Course{}, shared.ErrNotFound
	}
	c.ID = id
	c.CreatedAt = cur.CreatedAt
	c.UpdatedAt = timestamp()
	d.courses[id] = c
	return c, nil
}

func (d *Dataset) deleteCourse(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.courses[id]; !ok {
		return shared.ErrNotFound
	}
	delete(d.courses, id)
	return nil
}

func (d *Dataset) listSemesters() []api.Semester {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]api.Semester, 0, len(d.semesters))
	for _, s := range d.semesters {
		out = append(out, s)
	}
	return out
}

func (d *Dataset) createSemester(s api.Semester) api.Semester {
	d.mu.Lock()
	defer d.mu.Unlock()
	s.ID = uuid.NewString()
	s.CreatedAt, s.UpdatedAt = timestamp(), timestamp()
	if c, ok := d.courses[s.CourseID]; ok {
		s.CourseName = c.Name
	}
	d.semesters[s.ID] = s
	return s
}

func (d *Dataset) updateSemester(id string, s api.Semester) (api.Semester, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	cur, ok := d.semesters[id]
	if !ok {
		return api.Semester{}, shared.ErrNotFound
	}
	s.ID = id
	s.CreatedAt = cur.CreatedAt
	s.UpdatedAt = timestamp()
	d.semesters[id] = s
	return s, nil
}

func (d *Dataset) deleteSemester(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.semesters[id]; !ok {
		return shared.ErrNotFound
	}
	delete(d.semesters, id)
	return nil
}

func (d *Dataset) subjectsOf(courseID, semesterID string) ([]api.Subject, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	sem, ok := d.semesters[semesterID]
	if !ok || sem.CourseID != courseID {
		return nil, shared.ErrNotFound
	}
	return append([]api.Subject(nil), d.subjects[semesterID]...), nil
}
