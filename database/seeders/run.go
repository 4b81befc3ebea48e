// Package seeders loads the initial menu and settings into the store.
// Seeders register themselves from init() and run in registration order
// through `popays seed`. Every seeder must be safe to re-run.
package seeders

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/popays/backend/pkg/logger"
)

type seeder struct {
	name string
	fn   func(db *gorm.DB) error
}

var registry []seeder

// Register adds a seeder under a stable name. Call from init().
func Register(name string, fn func(db *gorm.DB) error) {
	registry = append(registry, seeder{name: name, fn: fn})
}

// RunAll executes every registered seeder, stopping on the first error.
func RunAll(db *gorm.DB) error {
	if len(registry) == 0 {
		logger.Warn("no seeders registered")
		return nil
	}
	for _, s := range registry {
		start := time.Now()
		if err := s.fn(db); err != nil {
			return fmt.Errorf("seeder %q: %w", s.name, err)
		}
		logger.Info("seeder finished", "name", s.name, "took", time.Since(start).String())
	}
	return nil
}
