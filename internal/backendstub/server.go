package backendstub

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/unrolled/secure"
	"golang.org/x/crypto/bcrypt"

	"github.com/sistema-academico/academico-console/internal/api"
)

// Options tunes the stub server.
type Options struct {
	TokenTTL     time.Duration
	SeedPassword string
	LoginRate    int
	LoginWindow  time.Duration
}

// Server is a development double of the academic backend. It implements
// the wire contract the console depends on and nothing else; state lives
// in memory plus a Redis-backed token store.
type Server struct {
	logger   *slog.Logger
	tokens   *TokenStore
	data     *Dataset
	validate *validator.Validate
	opts     Options
}

// NewServer constructs a stub Server backed by the given Redis client.
func NewServer(logger *slog.Logger, client *redis.Client, opts Options) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.SeedPassword == "" {
		opts.SeedPassword = "admin123"
	}
	if opts.LoginRate <= 0 {
		opts.LoginRate = 5
	}
	if opts.LoginWindow <= 0 {
		opts.LoginWindow = time.Minute
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Server{
		logger:   logger,
		tokens:   NewTokenStore(client, opts.TokenTTL),
		data:     NewDataset(hash),
		validate: validator.New(),
		opts:     opts,
	}, nil
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	})

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(secureMiddleware.Handler)

	r.Route("/auth", func(r chi.Router) {
		r.With(httprate.Limit(
			s.opts.LoginRate,
			s.opts.LoginWindow,
			httprate.WithKeyFuncs(httprate.KeyByIP),
		)).Post("/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.requireToken)
			r.Get("/whoami", s.handleWhoAmI)
			r.Post("/refresh", s.handleRefresh)
		})
		// Logout is deliberately lenient: a stale token still gets 204.
		r.Post("/logout", s.handleLogout)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)

		r.Route("/users", func(r chi.Router) {
			r.With(s.requireAction("users", "read")).Get("/", s.handleListUsers)
			r.With(s.requireAction("users", "create")).Post("/", s.handleCreateUser)
			r.With(s.requireAction("users", "update")).Put("/{id}", s.handleUpdateUser)
			r.With(s.requireAction("users", "delete")).Delete("/{id}", s.handleDeleteUser)
		})

		r.Route("/courses", func(r chi.Router) {
			r.With(s.requireAction("courses", "read")).Get("/", s.handleListCourses)
			r.With(s.requireAction("courses", "create")).Post("/", s.handleCreateCourse)
			r.With(s.requireAction("courses", "read")).Get("/{id}", s.handleGetCourse)
			r.With(s.requireAction("courses", "update")).Put("/{id}", s.handleUpdateCourse)
			r.With(s.requireAction("courses", "delete")).Delete("/{id}", s.handleDeleteCourse)
			r.With(s.requireAction("courses", "read")).Get("/{courseID}/{semesterID}/subjects", s.handleListSubjects)
		})

		r.Route("/semesters", func(r chi.Router) {
			r.With(s.requireAction("semesters", "read")).Get("/", s.handleListSemesters)
			r.With(s.requireAction("semesters", "create")).Post("/", s.handleCreateSemester)
			r.With(s.requireAction("semesters", "update")).Put("/{id}", s.handleUpdateSemester)
			r.With(s.requireAction("semesters", "delete")).Delete("/{id}", s.handleDeleteSemester)
		})
	})

	return r
}

type accountContextKey struct{}

func accountFromContext(ctx context.Context) *account {
	acc, _ := ctx.Value(accountContextKey{}).(*account)
	return acc
}

// requireToken resolves the bearer token and loads the account into the
// request context. Anything short of a resolvable token is 401.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		userID, err := s.tokens.Resolve(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Sessão inválida")
			return
		}
		acc, ok := s.data.findByID(userID)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Sessão inválida")
			return
		}
		ctx := context.WithValue(r.Context(), accountContextKey{}, acc)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAction enforces the same grant table whoami reports.
func (s *Server) requireAction(resource, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			acc := accountFromContext(r.Context())
			if acc == nil || !roleHasAction(acc.Role, resource, action) {
				writeError(w, http.StatusForbidden, "Acesso negado")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida")
		return
	}

	acc, ok := s.data.findByEmail(req.Email)
	if !ok || bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Credenciais inválidas")
		return
	}

	token, err := s.tokens.Issue(r.Context(), acc.ID)
	if err != nil {
		s.logger.Error("issue token", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}
	writeJSON(w, http.StatusOK, api.LoginResponse{AccessToken: token, User: userPayload(acc)})
}

func (s *Server) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	acc := accountFromContext(r.Context())
	writeJSON(w, http.StatusOK, api.Identity{
		User:      userPayload(acc),
		Resources: grantsForRole(acc.Role),
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	fresh, err := s.tokens.Renew(r.Context(), bearerToken(r))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Sessão inválida")
		return
	}
	writeJSON(w, http.StatusOK, api.RefreshResponse{AccessToken: fresh})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.tokens.Revoke(r.Context(), bearerToken(r)); err != nil {
		s.logger.Debug("revoke token", slog.Any("error", err))
	}
	w.WriteHeader(http.StatusNoContent)
}

func userPayload(acc *account) api.UserPayload {
	return api.UserPayload{
		ID:         acc.ID,
		Name:       acc.Name,
		Email:      acc.Email,
		Role:       acc.Role,
		CourseID:   acc.CourseID,
		CourseName: acc.CourseName,
	}
}

func bcryptHash(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
