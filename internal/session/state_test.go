package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sistema-academico/academico-console/internal/permission"
	_ "github.com/sistema-academico/academico-console/testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())

	saved := State{
		Token:     "tok1",
		Principal: &Principal{ID: "2", Name: "Maria", Email: "coord@x.com", Role: RoleCoordinator},
		Resources: []permission.Resource{
			{Name: "courses", Label: "Cursos", Actions: []string{"read"}},
		},
	}
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, saved.Token, loaded.Token)
	require.Equal(t, saved.Principal, loaded.Principal)
	require.Equal(t, saved.Resources, loaded.Resources)
}

func TestFileStoreLoadAbsent(t *testing.T) {
	store := NewFileStore(t.TempDir())
	loaded, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestFileStorePartialStateIsAbsent(t *testing.T) {
	// A snapshot missing any of the three keys must load as logged out.
	partials := []string{
		`{"access_token":"tok1"}`,
		`{"access_token":"tok1","principal":{"id":"1"}}`,
		`{"principal":{"id":"1"},"resources":[]}`,
	}
	for _, partial := range partials {
		dir := t.TempDir()
		store := NewFileStore(dir)
		require.NoError(t, os.WriteFile(filepath.Join(dir, stateFileName), []byte(partial), 0o600))

		loaded, err := store.Load()
		require.NoError(t, err)
		require.Nil(t, loaded)
	}
}

func TestFileStoreCorruptStateIsAbsent(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, stateFileName), []byte("{not json"), 0o600))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestFileStoreClear(t *testing.T) {
	store := NewFileStore(t.TempDir())
	require.NoError(t, store.Save(State{
		Token:     "tok1",
		Principal: &Principal{ID: "1"},
		Resources: []permission.Resource{},
	}))

	require.NoError(t, store.Clear())
	loaded, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)

	// Clearing again is a no-op.
	require.NoError(t, store.Clear())
}
