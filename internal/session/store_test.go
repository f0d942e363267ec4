package session

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sistema-academico/academico-console/internal/api"
	"github.com/sistema-academico/academico-console/internal/permission"
	"github.com/sistema-academico/academico-console/internal/shared"
	_ "github.com/sistema-academico/academico-console/testing"
)

type fakeBackend struct {
	mu          sync.Mutex
	loginRes    api.LoginResponse
	loginErr    error
	whoamiRes   api.Identity
	whoamiErr   error
	token       string
	loginCalls  int
	whoamiCalls int
	logoutCalls int

	// When set, WhoAmI blocks until the channel is closed.
	whoamiGate chan struct{}
}

func (f *fakeBackend) Login(ctx context.Context, email, password string) (api.LoginResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	return f.loginRes, f.loginErr
}

func (f *fakeBackend) WhoAmI(ctx context.Context) (api.Identity, error) {
	f.mu.Lock()
	gate := f.whoamiGate
	f.whoamiCalls++
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.whoamiRes, f.whoamiErr
}

func (f *fakeBackend) Logout(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls++
	return nil
}

func (f *fakeBackend) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeBackend) ClearToken() { f.SetToken("") }

func (f *fakeBackend) currentToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func coordinatorBackend() *fakeBackend {
	user := api.UserPayload{ID: "2", Name: "Maria", Email: "coord@x.com", Role: "coordinator"}
	return &fakeBackend{
		loginRes: api.LoginResponse{AccessToken: "tok1", User: user},
		whoamiRes: api.Identity{
			User: user,
			Resources: []permission.Resource{
				{Name: "courses", Label: "Cursos", Actions: []string{"read", "create", "createSubject"}},
			},
		},
	}
}

func newTestStore(backend Backend) (*Store, *permission.Registry, *MemoryStore) {
	registry := permission.NewRegistry()
	state := &MemoryStore{}
	store := NewStore(backend, registry, state, nil)
	return store, registry, state
}

func TestLoginPopulatesSessionAndRegistry(t *testing.T) {
	backend := coordinatorBackend()
	store, registry, state := newTestStore(backend)

	principal, err := store.Login(context.Background(), "coord@x.com", "admin123")
	require.NoError(t, err)
	require.Equal(t, "Maria", principal.Name)
	require.Equal(t, RoleCoordinator, principal.Role)

	require.True(t, registry.HasPermission("courses", "read"))
	require.False(t, registry.HasPermission("courses", "delete"))
	require.False(t, registry.HasPermission("users", "read"))

	// The token reached the HTTP layer before whoami was issued.
	require.Equal(t, "tok1", backend.currentToken())

	persisted, err := state.Load()
	require.NoError(t, err)
	require.NotNil(t, persisted)
	require.Equal(t, "tok1", persisted.Token)
	require.Equal(t, "Maria", persisted.Principal.Name)
	require.Len(t, persisted.Resources, 1)
}

func TestLoginRejectedCredentials(t *testing.T) {
	backend := coordinatorBackend()
	backend.loginErr = &shared.AuthError{Message: "Credenciais inválidas"}
	store, registry, state := newTestStore(backend)

	_, err := store.Login(context.Background(), "coord@x.com", "wrong")
	require.Error(t, err)
	require.Equal(t, "Credenciais inválidas", err.Error())
	require.True(t, shared.IsAuthError(err))

	require.Nil(t, store.Principal())
	require.Zero(t, registry.Len())
	require.Equal(t, "Credenciais inválidas", store.LastError())

	persisted, err := state.Load()
	require.NoError(t, err)
	require.Nil(t, persisted)
}

func TestLoginEmptyCredentialsIsLocal(t *testing.T) {
	backend := coordinatorBackend()
	store, _, _ := newTestStore(backend)

	_, err := store.Login(context.Background(), "", "")
	require.ErrorIs(t, err, shared.ErrMissingCredentials)
	require.Zero(t, backend.loginCalls)
}

func TestLoginDegradedWhenWhoAmIFails(t *testing.T) {
	backend := coordinatorBackend()
	backend.whoamiErr = &shared.TransportError{}
	store, registry, state := newTestStore(backend)

	principal, err := store.Login(context.Background(), "coord@x.com", "admin123")
	require.NoError(t, err)
	require.NotNil(t, principal)

	// Authenticated but with no grants: every gate denies.
	require.Zero(t, registry.Len())
	require.False(t, registry.HasPermission("courses", "read"))

	persisted, err := state.Load()
	require.NoError(t, err)
	require.NotNil(t, persisted)
	require.Empty(t, persisted.Resources)
}

func TestLogoutIsIdempotent(t *testing.T) {
	backend := coordinatorBackend()
	store, registry, state := newTestStore(backend)

	_, err := store.Login(context.Background(), "coord@x.com", "admin123")
	require.NoError(t, err)

	store.Logout(context.Background())
	store.Logout(context.Background())

	require.Nil(t, store.Principal())
	require.Zero(t, registry.Len())
	require.Empty(t, backend.currentToken())
	persisted, err := state.Load()
	require.NoError(t, err)
	require.Nil(t, persisted)
	// Only the first logout had a token to report.
	require.Equal(t, 1, backend.logoutCalls)
}

func TestRehydrateRestoresSession(t *testing.T) {
	backend := coordinatorBackend()
	store, registry, state := newTestStore(backend)
	require.NoError(t, state.Save(State{
		Token:     "tok1",
		Principal: &Principal{ID: "2", Name: "Maria", Email: "coord@x.com", Role: RoleCoordinator},
		Resources: []permission.Resource{},
	}))

	require.True(t, store.IsLoading())
	store.Rehydrate(context.Background())
	require.False(t, store.IsLoading())

	principal := store.Principal()
	require.NotNil(t, principal)
	require.Equal(t, "Maria", principal.Name)
	require.True(t, registry.HasPermission("courses", "read"))
}

func TestRehydrateInvalidTokenDiscardsEverything(t *testing.T) {
	backend := coordinatorBackend()
	backend.whoamiErr = &api.APIError{Status: http.StatusUnauthorized, Message: "Sessão inválida"}
	store, registry, state := newTestStore(backend)
	require.NoError(t, state.Save(State{
		Token:     "expired",
		Principal: &Principal{ID: "2", Name: "Maria"},
		Resources: []permission.Resource{},
	}))

	store.Rehydrate(context.Background())

	require.Nil(t, store.Principal())
	require.Zero(t, registry.Len())
	require.Empty(t, backend.currentToken())
	persisted, err := state.Load()
	require.NoError(t, err)
	require.Nil(t, persisted)
}

func TestRehydrateWithoutStateSkipsNetwork(t *testing.T) {
	backend := coordinatorBackend()
	store, _, _ := newTestStore(backend)

	store.Rehydrate(context.Background())

	require.Nil(t, store.Principal())
	require.False(t, store.IsLoading())
	require.Zero(t, backend.whoamiCalls)
}

func TestStaleWhoAmIResponseIsDiscarded(t *testing.T) {
	backend := coordinatorBackend()
	gate := make(chan struct{})
	backend.whoamiGate = gate
	store, registry, _ := newTestStore(backend)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = store.Login(context.Background(), "coord@x.com", "admin123")
	}()

	// Wait for the login's whoami to be in flight, then log out.
	require.Eventually(t, func() bool {
		backend.mu.Lock()
		defer backend.mu.Unlock()
		return backend.whoamiCalls == 1
	}, time.Second, time.Millisecond)

	store.Logout(context.Background())

	// Release the late whoami response.
	close(gate)
	<-done

	// The session the response belonged to no longer exists.
	require.Zero(t, registry.Len())
	require.False(t, registry.HasPermission("courses", "read"))
	require.Nil(t, store.Principal())
}

func TestRefreshIsNoOpWhenLoggedOut(t *testing.T) {
	backend := coordinatorBackend()
	store, _, _ := newTestStore(backend)

	require.NoError(t, store.Refresh(context.Background()))
	require.Zero(t, backend.whoamiCalls)
}

func TestRefreshInvalidatesOnRejectedToken(t *testing.T) {
	backend := coordinatorBackend()
	store, registry, state := newTestStore(backend)
	_, err := store.Login(context.Background(), "coord@x.com", "admin123")
	require.NoError(t, err)

	backend.mu.Lock()
	backend.whoamiErr = &api.APIError{Status: http.StatusUnauthorized}
	backend.mu.Unlock()

	require.Error(t, store.Refresh(context.Background()))
	require.Nil(t, store.Principal())
	require.Zero(t, registry.Len())
	persisted, err := state.Load()
	require.NoError(t, err)
	require.Nil(t, persisted)
}
