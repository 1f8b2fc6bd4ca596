package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Session is the client's persisted local state: the bearer token, the last
// day anything was logged, and the task snapshot the reminder scheduler
// scans. It is loaded once at session start, saved on change, and cleared
// at logout rather than living as ambient global state.
type Session struct {
	Token            string `json:"token"`
	SessionID        string `json:"session_id"`
	LastActivityDate string `json:"last_activity_date"`
	CachedTasks      []Task `json:"cached_tasks"`
}

type SessionStore interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}

// FileStore keeps the session as a JSON file.
type FileStore struct {
	Path string

	mu sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the stored session. A missing file yields a fresh session with
// a new session id, not an error.
func (s *FileStore) Load() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return Session{SessionID: uuid.NewString()}, nil
	}
	if err != nil {
		return Session{}, err
	}

	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		// corrupt state file: start over rather than wedge the app
		return Session{SessionID: uuid.NewString()}, nil
	}
	if sess.SessionID == "" {
		sess.SessionID = uuid.NewString()
	}
	return sess, nil
}

func (s *FileStore) Save(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.Path, b, 0o600)
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
