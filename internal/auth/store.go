package auth

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultDirName = ".credentials"

// Store resolves per-service token file locations under a single
// credentials directory, creating the directory on first use.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir. An empty dir defaults to
// ~/.credentials.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("%w: os.UserHomeDir failed: %v", ErrCredential, err)
		}
		dir = filepath.Join(home, defaultDirName)
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("%w: os.MkdirAll(%s) failed: %v", ErrCredential, dir, err)
	}

	return &Store{dir: dir}, nil
}

// TokenPath returns the token file path for a service, e.g. "gmail".
func (s *Store) TokenPath(service string) string {
	return filepath.Join(s.dir, service+".json")
}

// Dir returns the credentials directory.
func (s *Store) Dir() string {
	return s.dir
}
