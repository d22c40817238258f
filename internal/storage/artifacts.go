package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrArtifactNotFound = errors.New("artifact not found")

// ArtifactStore persists generated images under unique filenames and
// serves them back read-only. Filenames are random identifiers chosen by
// the caller and never reused.
type ArtifactStore interface {
	Save(ctx context.Context, filename string, data []byte) error
	Open(ctx context.Context, filename string) ([]byte, error)
}

// LocalStore writes artifacts to a directory on disk.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(_ context.Context, filename string, data []byte) error {
	if err := validateFilename(filename); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}

func (s *LocalStore) Open(_ context.Context, filename string) ([]byte, error) {
	if err := validateFilename(filename); err != nil {
		return nil, ErrArtifactNotFound
	}
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrArtifactNotFound
		}
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	return data, nil
}

// validateFilename rejects anything that could escape the artifact
// directory.
func validateFilename(filename string) error {
	if filename == "" || strings.ContainsAny(filename, `/\`) || strings.Contains(filename, "..") {
		return fmt.Errorf("invalid artifact filename %q", filename)
	}
	return nil
}
