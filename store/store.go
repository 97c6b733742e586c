// Package store provides database access to all raw objects.
package store

import (
	"github.com/parkjy76/haruplan/internal/profile"
)

// Store provides database access to events and the chat memory snapshot.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

// GetDriver exposes the underlying driver, mainly for migrations.
func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	return s.driver.Close()
}
