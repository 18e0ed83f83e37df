// Package dbstore implements store.KV on top of SQLite via GORM.
package dbstore

import (
	"errors"
	"fmt"

	"github.com/yiblet/clipstash/internal/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteStore is a SQLite-backed implementation of store.KV
type SQLiteStore struct {
	db     *gorm.DB
	dbPath string
}

// NewSQLiteStore opens (creating if needed) a SQLite database at dbPath and
// migrates the key-value table.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	// SQLite allows a single writer; serialise access through one connection.
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA busy_timeout = 5000").Error; err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := db.AutoMigrate(&KVItemModel{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

// Get retrieves a value by key
func (s *SQLiteStore) Get(key string) (string, error) {
	var model KVItemModel
	if err := s.db.First(&model, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: %s", store.ErrNotFound, key)
		}
		return "", fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return model.Value, nil
}

// Set stores a value (upsert)
func (s *SQLiteStore) Set(key, value string) error {
	model := &KVItemModel{
		Key:   key,
		Value: value,
	}

	// Upsert: update if exists, insert if not
	result := s.db.Where("key = ?", key).
		Assign(map[string]interface{}{"value": value, "updated_at": s.db.NowFunc()}).
		FirstOrCreate(model)

	if result.Error != nil {
		return fmt.Errorf("failed to set key %s: %w", key, result.Error)
	}

	return nil
}

// List returns all key-value pairs
func (s *SQLiteStore) List() (map[string]string, error) {
	var models []KVItemModel
	if err := s.db.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	result := make(map[string]string, len(models))
	for _, model := range models {
		result[model.Key] = model.Value
	}

	return result, nil
}

// Delete removes a key
func (s *SQLiteStore) Delete(key string) error {
	result := s.db.Delete(&KVItemModel{}, "key = ?", key)
	if result.Error != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", store.ErrNotFound, key)
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
