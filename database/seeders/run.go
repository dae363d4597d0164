// Package seeders populates a fresh database with starter records.
package seeders

import (
	"github.com/priyadarshi/darzi/pkg/logger"
	"gorm.io/gorm"
)

// Seeder inserts one batch of records. Seeders must be idempotent: they
// run on every `darzi seed` invocation.
type Seeder func(db *gorm.DB) error

type namedSeeder struct {
	name string
	run  Seeder
}

var registry []namedSeeder

// Register adds a seeder to the registry. Seeders run in registration order.
func Register(name string, s Seeder) {
	registry = append(registry, namedSeeder{name: name, run: s})
}

// Run executes every registered seeder.
func Run(db *gorm.DB) error {
	for _, s := range registry {
		logger.Info("seeding", "name", s.name)
		if err := s.run(db); err != nil {
			return err
		}
	}
	return nil
}
