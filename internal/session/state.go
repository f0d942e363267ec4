package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sistema-academico/academico-console/internal/permission"
)

// State is the durable session snapshot: bearer token, serialized
// principal and serialized resource grants. The three travel together;
// a snapshot missing any of them is treated as absent.
type State struct {
	Token     string                `json:"access_token"`
	Principal *Principal            `json:"principal"`
	Resources []permission.Resource `json:"resources"`
}

func (s State) complete() bool {
	return s.Token != "" && s.Principal != nil && s.Resources != nil
}

// StateStore persists session state across process restarts.
type StateStore interface {
	// Load returns the persisted state, or nil when none (or only a
	// partial one) exists.
	Load() (*State, error)
	// Save writes the full state atomically.
	Save(State) error
	// Clear removes any persisted state. Clearing an empty store is a
	// no-op.
	Clear() error
}

const stateFileName = "session.json"

// FileStore keeps the session state in a single JSON file, written with a
// temp-file rename so the trio of keys is replaced all-or-nothing.
type FileStore struct {
	path string
}

// NewFileStore constructs a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, stateFileName)}
}

func (f *FileStore) Load() (*State, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		// Corrupt state fails closed: treat as logged out.
		return nil, nil
	}
	if !st.complete() {
		return nil, nil
	}
	return &st, nil
}

func (f *FileStore) Save(st State) error {
	if st.Resources == nil {
		st.Resources = []permission.Resource{}
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// MemoryStore is an in-process StateStore used by tests.
type MemoryStore struct {
	state *State
}

func (m *MemoryStore) Load() (*State, error) {
	if m.state == nil || !m.state.complete() {
		return nil, nil
	}
	st := *m.state
	return &st, nil
}

func (m *MemoryStore) Save(st State) error {
	if st.Resources == nil {
		st.Resources = []permission.Resource{}
	}
	m.state = &st
	return nil
}

func (m *MemoryStore) Clear() error {
	m.state = nil
	return nil
}

var (
	_ StateStore = (*FileStore)(nil)
	_ StateStore = (*MemoryStore)(nil)
)
