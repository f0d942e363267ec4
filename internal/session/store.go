package session

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/sistema-academico/academico-console/internal/api"
	"github.com/sistema-academico/academico-console/internal/permission"
	"github.com/sistema-academico/academico-console/internal/shared"
)

// Backend is the slice of the API client the session store depends on.
// *api.Client satisfies it.
type Backend interface {
	Login(ctx context.Context, email, password string) (api.LoginResponse, error)
	WhoAmI(ctx context.Context) (api.Identity, error)
	Logout(ctx context.Context) error
	SetToken(token string)
	ClearToken()
}

// Store owns the single current authentication session: the bearer token,
// the principal, and the persisted copy of both. It is the only writer of
// the permission registry, which it repopulates wholesale after every
// session transition.
type Store struct {
	backend  Backend
	registry *permission.Registry
	state    StateStore
	logger   *slog.Logger

	whoami singleflight.Group

	mu        sync.Mutex
	epoch     uint64
	token     string
	principal *Principal
	loading   bool
	lastErr   string
}

// NewStore constructs a Store. The store starts unauthenticated with the
// loading flag set; call Rehydrate once at process start to resolve it.
func NewStore(backend Backend, registry *permission.Registry, state StateStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		backend:  backend,
		registry: registry,
		state:    state,
		logger:   logger,
		loading:  true,
	}
}

// Principal returns the current principal, or nil when unauthenticated.
func (s *Store) Principal() *Principal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.principal == nil {
		return nil
	}
	p := *s.principal
	return &p
}

// IsLoading reports whether a login or rehydrate is in flight.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the message of the last failed login, for UI feedback.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Login exchanges credentials for a session. Empty credentials are a
// contract violation answered locally, without a network call. A valid
// credential exchange whose follow-up whoami fails still succeeds: the
// session is degraded (principal present, empty registry) rather than
// torn down.
func (s *Store) Login(ctx context.Context, email, password string) (*Principal, error) {
	if email == "" || password == "" {
		return nil, shared.ErrMissingCredentials
	}

	s.setLoading(true)
	defer s.setLoading(false)

	res, err := s.backend.Login(ctx, email, password)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return nil, err
	}

	principal := principalFromPayload(res.User)

	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	s.token = res.AccessToken
	s.principal = &principal
	s.lastErr = ""
	s.mu.Unlock()

	// The token must reach the HTTP layer before whoami is issued, since
	// whoami's own request carries it.
	s.backend.SetToken(res.AccessToken)
	if err := s.state.Save(State{Token: res.AccessToken, Principal: &principal, Resources: []permission.Resource{}}); err != nil {
		s.logger.Warn("persist session state", slog.Any("error", err))
	}

	identity, err := s.backend.WhoAmI(ctx)
	if err != nil {
		// Degraded session: credentials were valid, the grant fetch was
		// not. The registry stays empty and every gate denies.
		s.logger.Warn("whoami after login failed", slog.Any("error", err))
		return &principal, nil
	}

	if !s.commitIdentity(epoch, identity) {
		// A logout (or newer login) superseded this login while its
		// whoami was in flight; the late response is discarded.
		s.logger.Debug("discarding stale whoami response")
		return &principal, nil
	}
	refreshed := principalFromPayload(identity.User)
	return &refreshed, nil
}

// Logout ends the session. The backend call is best-effort; the local
// teardown always happens and the operation is idempotent.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	hadToken := s.token != ""
	s.mu.Unlock()

	if hadToken {
		if err := s.backend.Logout(ctx); err != nil {
			s.logger.Debug("backend logout failed", slog.Any("error", err))
		}
	}
	s.invalidate()
}

// Rehydrate restores the session from persisted state, once at process
// start. Any failure silently leaves the store logged out with all
// persisted identity discarded.
func (s *Store) Rehydrate(ctx context.Context) {
	defer s.setLoading(false)

	st, err := s.state.Load()
	if err != nil || st == nil {
		if err != nil {
			s.logger.Warn("load session state", slog.Any("error", err))
		}
		s.invalidate()
		return
	}

	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	s.token = st.Token
	s.mu.Unlock()
	s.backend.SetToken(st.Token)

	identity, err := s.backend.WhoAmI(ctx)
	if err != nil {
		s.logger.Debug("rehydrate whoami failed", slog.Any("error", err))
		s.invalidateIfCurrent(epoch)
		return
	}
	s.commitIdentity(epoch, identity)
}

// Refresh re-fetches the grant set for the current token, picking up
// permission changes without a re-login. Concurrent calls share a single
// whoami request. A rejected token invalidates the session the same way a
// failed rehydrate does.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return nil
	}
	epoch := s.epoch
	s.mu.Unlock()

	_, err, _ := s.whoami.Do("whoami", func() (any, error) {
		identity, err := s.backend.WhoAmI(ctx)
		if err != nil {
			if api.IsSessionInvalid(err) {
				s.invalidateIfCurrent(epoch)
			}
			return nil, err
		}
		s.commitIdentity(epoch, identity)
		return nil, nil
	})
	return err
}

// commitIdentity applies a whoami response if, and only if, the session
// epoch it was issued under is still current. It reports whether the
// response was applied.
func (s *Store) commitIdentity(epoch uint64, identity api.Identity) bool {
	principal := principalFromPayload(identity.User)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return false
	}
	s.principal = &principal

	// Registry and persisted state are committed under the same lock as
	// the epoch check so a concurrent logout cannot interleave between
	// the check and the commit.
	s.registry.Populate(identity.Resources)
	if err := s.state.Save(State{Token: s.token, Principal: &principal, Resources: identity.Resources}); err != nil {
		s.logger.Warn("persist session state", slog.Any("error", err))
	}
	return true
}

// invalidate tears the session down unconditionally.
func (s *Store) invalidate() {
	s.mu.Lock()
	s.epoch++
	s.token = ""
	s.principal = nil
	s.mu.Unlock()

	s.backend.ClearToken()
	s.registry.Clear()
	if err := s.state.Clear(); err != nil {
		s.logger.Warn("clear session state", slog.Any("error", err))
	}
}

// invalidateIfCurrent tears the session down unless a newer transition
// already superseded the epoch that observed the failure.
func (s *Store) invalidateIfCurrent(epoch uint64) {
	s.mu.Lock()
	current := s.epoch == epoch
	s.mu.Unlock()
	if current {
		s.invalidate()
	}
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func principalFromPayload(u api.UserPayload) Principal {
	return Principal{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       ParseRole(u.Role),
		CourseID:   u.CourseID,
		CourseName: u.CourseName,
	}
}
