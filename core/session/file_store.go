package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore persists the session as a small JSON file so it survives process
// restarts, playing the role browser local storage plays for a web client.
type FileStore struct {
	path string
}

// fileRecord is the on-disk shape: both entries written and read together.
type fileRecord struct {
	User   json.RawMessage `json:"auth_user"`
	Expiry int64           `json:"auth_expiry"`
}

// NewFileStore creates a file-backed session store at path. The file is
// created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(ctx context.Context) (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("session: read %s: %w", s.path, err)
	}

	var rec fileRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		// A corrupt record is treated as absent rather than fatal.
		return nil, ErrNoSession
	}
	if len(rec.User) == 0 {
		return nil, ErrNoSession
	}
	return DecodeUser(rec.User, rec.Expiry)
}

func (s *FileStore) Save(ctx context.Context, sess Session) error {
	user, err := EncodeUser(sess)
	if err != nil {
		return err
	}

	data, err := json.Marshal(fileRecord{User: user, Expiry: ExpiryMillis(sess)})
	if err != nil {
		return fmt.Errorf("session: encode record: %w", err)
	}

	// Write-then-rename keeps the record atomic on crash.
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session: create dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("session: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("session: rename %s: %w", tmp, err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: remove %s: %w", s.path, err)
	}
	return nil
}
