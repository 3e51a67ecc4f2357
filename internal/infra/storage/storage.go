package storage

import (
	"log/slog"
	"os"
	"path/filepath"

	"megamart/config"
	"megamart/internal/domain/repository"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params defines the dependencies for building the configured store.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// New builds the key-value store selected by storage.driver.
func New(params Params) (repository.KVStore, error) {
	cfg := params.Config.Storage

	switch cfg.Driver {
	case "file":
		store, err := NewFileStore(cfg.Path)
		if err != nil {
			return nil, err
		}
		params.Logger.Info("Using file-backed storage", slog.String("path", cfg.Path))

		return store, nil
	case "sqlite":
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, errors.Wrap(err, "failed to create storage directory")
		}
		path := filepath.Join(cfg.Path, "megamart.db")
		store, err := NewGormStore(path)
		if err != nil {
			return nil, err
		}
		params.Logger.Info("Using sqlite-backed storage", slog.String("path", path))

		return store, nil
	case "memory":
		params.Logger.Warn("Using in-memory storage, state will not survive restarts")

		return NewMemoryStore(), nil
	default:
		return nil, errors.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}
