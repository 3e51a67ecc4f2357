package storage

import (
	"context"

	"megamart/internal/domain/repository"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// kvEntry is the single-table schema of the sqlite-backed store.
type kvEntry struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"column:value"`
}

func (kvEntry) TableName() string {
	return "kv_entries"
}

type gormStore struct {
	db *gorm.DB
}

// NewGormStore opens (or creates) the sqlite database at path and migrates
// the key-value schema.
func NewGormStore(path string) (repository.KVStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite store")
	}

	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate kv schema")
	}

	return &gormStore{db: db}, nil
}

func (s *gormStore) Get(ctx context.Context, key string) (string, error) {
	var entry kvEntry
	err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errors.Wrapf(repository.ErrKeyNotFound, "key %q", key)
		}

		return "", errors.Wrapf(err, "failed to read key %q", key)
	}

	return entry.Value, nil
}

func (s *gormStore) Set(ctx context.Context, key, value string) error {
	entry := kvEntry{Key: key, Value: value}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&entry).Error
	if err != nil {
		return errors.Wrapf(err, "failed to persist key %q", key)
	}

	return nil
}

func (s *gormStore) Remove(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Delete(&kvEntry{}, "key = ?", key).Error
	if err != nil {
		return errors.Wrapf(err, "failed to remove key %q", key)
	}

	return nil
}

func (s *gormStore) Clear(ctx context.Context) error {
	err := s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&kvEntry{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to clear store")
	}

	return nil
}
