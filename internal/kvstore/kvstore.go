// Package kvstore is a thin key-value document store over the database.
// Values are JSON documents replaced wholesale on every write so that two
// concurrent writers can never interleave a partially updated document.
package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kimphuquy/silvershop/internal/database"
	"github.com/kimphuquy/silvershop/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store reads and writes JSON documents by string key.
type Store struct {
	db *database.DB
}

// New creates a Store backed by the given database.
func New(db *database.DB) *Store {
	return &Store{db: db}
}

// Get unmarshals the document stored under key into out. The boolean reports
// whether the key existed; callers treat (false, nil) and errors alike as a
// cache miss.
func (s *Store) Get(key string, out interface{}) (bool, error) {
	var doc models.KVDocument
	err := s.db.Where("key = ?", key).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	if err := json.Unmarshal(doc.Value, out); err != nil {
		return false, fmt.Errorf("failed to decode key %q: %w", key, err)
	}
	return true, nil
}

// Set serializes value and replaces the document stored under key.
func (s *Store) Set(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode key %q: %w", key, err)
	}

	doc := models.KVDocument{Key: key, Value: datatypes.JSON(data)}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Remove deletes the document stored under key. Removing a missing key is
// not an error.
func (s *Store) Remove(key string) error {
	err := s.db.Where("key = ?", key).Delete(&models.KVDocument{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove key %q: %w", key, err)
	}
	return nil
}
