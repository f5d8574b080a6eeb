package store

import (
	"encoding/json"
	"fmt"

	"github.com/vsitelecom/fieldops/internal/models"
)

// LoadCollection reads and decodes the collection stored under key.
// A key that was never written yields an empty collection.
func LoadCollection[T any](s *Store, key string) ([]T, error) {
	raw, ok, err := s.Get(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// SaveCollection serializes the whole collection and stores it under
// key in one write.
func SaveCollection[T any](s *Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	return s.Put(key, raw)
}

// LoadCompany reads the singleton company profile, falling back to the
// default record when none was saved yet.
func LoadCompany(s *Store) (models.CompanyProfile, error) {
	raw, ok, err := s.Get(KeyCompany)
	if err != nil {
		return models.CompanyProfile{}, err
	}
	if !ok {
		return models.DefaultCompanyProfile(), nil
	}
	var c models.CompanyProfile
	if err := json.Unmarshal(raw, &c); err != nil {
		return models.CompanyProfile{}, fmt.Errorf("store: decode %s: %w", KeyCompany, err)
	}
	return c, nil
}

// SaveCompany persists the singleton company profile.
func SaveCompany(s *Store, c models.CompanyProfile) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", KeyCompany, err)
	}
	return s.Put(KeyCompany, raw)
}
