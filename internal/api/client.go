package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sistema-academico/academico-console/internal/shared"
)

// Client is the REST client for the academic backend. The bearer token it
// attaches to requests is owned by the session store, which pushes new
// values in via SetToken before any authenticated call is issued.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger

	mu    sync.RWMutex
	token string
}

// NewClient constructs a Client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// SetToken installs the bearer token used for subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the bearer token.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token returns the currently installed bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// APIError is a non-2xx backend response, carrying the backend-provided
// message when the body had one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP Error: %d", e.Status)
}

// IsSessionInvalid reports whether err marks the current token as no
// longer valid on the backend.
func IsSessionInvalid(err error) bool {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status == http.StatusUnauthorized || ae.Status == http.StatusForbidden
	}
	return false
}

type errorBody struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return &shared.TransportError{Err: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return &shared.TransportError{Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{Status: res.StatusCode}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			apiErr.Message = eb.Message
		}
		if c.logger != nil {
			c.logger.Debug("backend rejected request",
				slog.String("method", method),
				slog.String("path", path),
				slog.Int("status", res.StatusCode))
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &shared.TransportError{Err: err}
	}
	return nil
}

// Login exchanges credentials for a token. Rejected credentials surface as
// *shared.AuthError carrying the backend message verbatim; network-level
// failures surface as *shared.TransportError.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	var res LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", LoginRequest{Email: email, Password: password}, &res)
	if err != nil {
		var ae *APIError
		if errors.As(err, &ae) {
			switch ae.Status {
			case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
				return LoginResponse{}, &shared.AuthError{Message: ae.Message}
			default:
				return LoginResponse{}, &shared.TransportError{Err: ae}
			}
		}
		return LoginResponse{}, err
	}
	return res, nil
}

// WhoAmI fetches the authenticated principal and its resource grants.
// Any non-2xx means the session is invalid for the installed token.
func (c *Client) WhoAmI(ctx context.Context) (Identity, error) {
	var res Identity
	if err := c.do(ctx, http.MethodGet, "/auth/whoami", nil, &res); err != nil {
		return Identity{}, err
	}
	return res, nil
}

// Logout informs the backend the session ended. Failures are the caller's
// to swallow; local logout never depends on this call.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// RefreshToken asks the backend to re-issue the access token.
func (c *Client) RefreshToken(ctx context.Context) (string, error) {
	var res RefreshResponse
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, &res); err != nil {
		return "", err
	}
	return res.AccessToken, nil
}

// Users

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	err := c.do(ctx, http.MethodGet, "/users", nil, &out)
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, u User) (User, error) {
	var out User
	err := c.do(ctx, http.MethodPost, "/users", u, &out)
	return out, err
}

func (c *Client) UpdateUser(ctx context.Context, id string, u User) (User, error) {
	var out User
	err := c.do(ctx, http.MethodPut, "/users/"+id, u, &out)
	return out, err
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id, nil, nil)
}

// Courses

func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	var out []Course
	err := c.do(ctx, http.MethodGet, "/courses", nil, &out)
	return out, err
}

func (c *Client) GetCourse(ctx context.Context, id string) (CourseDetail, error) {
	var out CourseDetail
	err := c.do(ctx, http.MethodGet, "/courses/"+id, nil, &out)
	return out, err
}

func (c *Client) CreateCourse(ctx context.Context, course Course) (Course, error) {
	var out Course
	err := c.do(ctx, http.MethodPost, "/courses", course, &out)
	return out, err
}

func (c *Client) UpdateCourse(ctx context.Context, id string, course Course) (Course, error) {
	var out Course
	err := c.do(ctx, http.MethodPut, "/courses/"+id, course, &out)
	return out, err
}

func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/courses/"+id, nil, nil)
}

// ListSubjects returns the subjects of one semester of a course.
func (c *Client) ListSubjects(ctx context.Context, courseID, semesterID string) ([]Subject, error) {
	var out []Subject
	err := c.do(ctx, http.MethodGet, "/courses/"+courseID+"/"+semesterID+"/subjects", nil, &out)
	return out, err
}

// Semesters

func (c *Client) ListSemesters(ctx context.Context) ([]Semester, error) {
	var out []Semester
	err := c.do(ctx, http.MethodGet, "/semesters", nil, &out)
	return out, err
}

func (c *Client) CreateSemester(ctx context.Context, s Semester) (Semester, error) {
	var out Semester
	err := c.do(ctx, http.MethodPost, "/semesters", s, &out)
	return out, err
}

func (c *Client) UpdateSemester(ctx context.Context, id string, s Semester) (Semester, error) {
	var out Semester
	err := c.do(ctx, http.MethodPut, "/semesters/"+id, s, &out)
	return out, err
}

func (c *Client) DeleteSemester(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/semesters/"+id, nil, nil)
}
