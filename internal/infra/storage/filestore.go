// Package storage provides the persistent key-value mirrors backing the
// session and cart containers.
package storage

import (
	"context"
	"net/url"
	"os"
	"path/filepath"

	"megamart/internal/domain/repository"

	"github.com/pkg/errors"
)

const fileExt = ".kv"

// fileStore keeps one file per key under a data directory. Writes go to a
// temp file first and are renamed into place, so a crashed write never
// leaves a truncated value behind.
type fileStore struct {
	dir string
}

// NewFileStore creates the data directory if needed and returns a
// file-backed store.
func NewFileStore(dir string) (repository.KVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create storage directory")
	}

	return &fileStore{dir: dir}, nil
}

func (s *fileStore) path(key string) string {
	// Keys such as "cart:guest" contain characters that are unsafe or
	// ambiguous in filenames; escaping keeps distinct keys distinct.
	return filepath.Join(s.dir, url.PathEscape(key)+fileExt)
}

func (s *fileStore) Get(_ context.Context, key string) (string, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrapf(repository.ErrKeyNotFound, "key %q", key)
		}

		return "", errors.Wrapf(err, "failed to read key %q", key)
	}

	return string(data), nil
}

func (s *fileStore) Set(_ context.Context, key, value string) error {
	tmp, err := os.CreateTemp(s.dir, "write-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)

		return errors.Wrapf(err, "failed to write key %q", key)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)

		return errors.Wrapf(err, "failed to close temp file for key %q", key)
	}

	if err := os.Rename(tmpName, s.path(key)); err != nil {
		_ = os.Remove(tmpName)

		return errors.Wrapf(err, "failed to persist key %q", key)
	}

	return nil
}

func (s *fileStore) Remove(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to remove key %q", key)
	}

	return nil
}

func (s *fileStore) Clear(_ context.Context) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return errors.Wrap(err, "failed to list storage directory")
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != fileExt {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			return errors.Wrapf(err, "failed to remove %q", entry.Name())
		}
	}

	return nil
}
