// Package store is the offline source of truth: a durable key-value
// table of JSON-encoded entity collections, one key per collection.
// Writes replace the whole value for a key atomically; there is no
// transactionality across keys (single-user, single-device store).
package store

import (
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Persistence keys, one per entity collection plus the company profile
// and the two remote-credential entries.
const (
	KeyClients      = "clients"
	KeyProducts     = "products"
	KeyServices     = "services"
	KeyQuotes       = "quotes"
	KeyExpenses     = "expenses"
	KeyAppointments = "appointments"
	KeyCompany      = "company_profile"
	KeyRemoteDSN    = "remote_url"
	KeyRemoteKey    = "remote_key"
)

// Entry is one persisted key-value row.
type Entry struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the sqlite database at path and
// migrates the entries table.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Get returns the raw value for key; ok is false when the key has
// never been written.
func (s *Store) Get(key string) (value []byte, ok bool, err error) {
	var e Entry
	if err := s.db.First(&e, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return e.Value, true, nil
}

// Put replaces the whole value stored under key.
func (s *Store) Put(key string, value []byte) error {
	e := Entry{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

// Delete removes key; deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	return s.db.Delete(&Entry{}, "key = ?", key).Error
}

// GetString is a convenience for small configuration values such as
// the remote credentials.
func (s *Store) GetString(key string) (string, error) {
	v, ok, err := s.Get(key)
	if err != nil || !ok {
		return "", err
	}
	return string(v), nil
}

// PutString stores a small configuration value.
func (s *Store) PutString(key, value string) error {
	return s.Put(key, []byte(value))
}
