package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sistema-academico/academico-console/internal/api"
	"github.com/sistema-academico/academico-console/internal/shared"
	_ "github.com/sistema-academico/academico-console/testing"
)

func newClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return api.NewClient(server.URL, time.Second, nil)
}

func TestLoginSuccess(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "coord@x.com", body["email"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok1","user":{"id":"2","name":"Maria","email":"coord@x.com","role":"coordinator"}}`))
	}))

	res, err := client.Login(context.Background(), "coord@x.com", "admin123")
	require.NoError(t, err)
	require.Equal(t, "tok1", res.AccessToken)
	require.Equal(t, "Maria", res.User.Name)
}

func TestLoginRejectedCarriesBackendMessage(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Credenciais inválidas"}`))
	}))

	_, err := client.Login(context.Background(), "coord@x.com", "bad")
	require.Error(t, err)
	require.True(t, shared.IsAuthError(err))
	require.Equal(t, "Credenciais inválidas", err.Error())
}

func TestLoginUnreachableBackendIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := api.NewClient(url, 200*time.Millisecond, nil)
	_, err := client.Login(context.Background(), "coord@x.com", "admin123")
	require.Error(t, err)
	require.True(t, shared.IsTransportError(err))
}

func TestLoginServerErrorIsTransportError(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.Login(context.Background(), "coord@x.com", "admin123")
	require.Error(t, err)
	require.True(t, shared.IsTransportError(err))
}

func TestWhoAmICarriesBearerToken(t *testing.T) {
	var got string
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":"2","name":"Maria","email":"coord@x.com","role":"coordinator"},"resources":[{"name":"courses","label":"Cursos","actions":["read"]}]}`))
	}))
	client.SetToken("tok1")

	identity, err := client.WhoAmI(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer tok1", got)
	require.Len(t, identity.Resources, 1)
	require.Equal(t, "courses", identity.Resources[0].Name)
}

func TestWhoAmIRejectedIsSessionInvalid(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	client.SetToken("expired")

	_, err := client.WhoAmI(context.Background())
	require.Error(t, err)
	require.True(t, api.IsSessionInvalid(err))
}

func TestClearTokenStopsSendingHeader(t *testing.T) {
	var got string
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	client.SetToken("tok1")
	client.ClearToken()

	require.NoError(t, client.Logout(context.Background()))
	require.Empty(t, got)
}
