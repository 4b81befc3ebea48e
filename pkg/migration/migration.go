// Package migration runs schema migrations in tracked batches so a
// rollback undoes exactly the set that last ran. Migrations register
// themselves from init() in database/migrations; the name's timestamp
// prefix gives the execution order.
package migration

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"gorm.io/gorm"

	"github.com/popays/backend/pkg/logger"
)

// Migration is one reversible schema change.
type Migration struct {
	Name string
	Up   func(db *gorm.DB) error
	Down func(db *gorm.DB) error
}

var registry []Migration

// Register adds a migration. Call from init(); names must be unique and
// carry a timestamp prefix.
func Register(m Migration) {
	registry = append(registry, m)
}

// appliedMigration is one row of the tracking table.
type appliedMigration struct {
	ID    uint      `gorm:"primaryKey"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (appliedMigration) TableName() string { return "schema_migrations" }

// Runner applies and reverses registered migrations against one handle.
type Runner struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Runner {
	return &Runner{db: db}
}

func (r *Runner) applied() (map[string]appliedMigration, error) {
	if err := r.db.AutoMigrate(&appliedMigration{}); err != nil {
		return nil, fmt.Errorf("migration: tracking table: %w", err)
	}
	var rows []appliedMigration
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	byName := make(map[string]appliedMigration, len(rows))
	for _, row := range rows {
		byName[row.Name] = row
	}
	return byName, nil
}

func (r *Runner) lastBatch() int {
	var out struct{ Max int }
	r.db.Model(&appliedMigration{}).Select("MAX(batch) as max").Scan(&out)
	return out.Max
}

// Run applies every registered migration that has not run yet, all under
// the same batch number. A second call in a row is a no-op.
func (r *Runner) Run() error {
	done, err := r.applied()
	if err != nil {
		return err
	}

	pending := make([]Migration, 0, len(registry))
	for _, m := range registry {
		if _, ok := done[m.Name]; !ok {
			pending = append(pending, m)
		}
	}
	if len(pending) == 0 {
		logger.Info("migrations up to date")
		return nil
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Name < pending[j].Name })

	batch := r.lastBatch() + 1
	for _, m := range pending {
		logger.Info("applying migration", "name", m.Name, "batch", batch)
		if err := m.Up(r.db); err != nil {
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		if err := r.db.Create(&appliedMigration{Name: m.Name, Batch: batch}).Error; err != nil {
			return fmt.Errorf("migration %s: record: %w", m.Name, err)
		}
	}
	return nil
}

// Rollback reverses the most recent batch, newest migration first.
func (r *Runner) Rollback() error {
	if _, err := r.applied(); err != nil {
		return err
	}
	batch := r.lastBatch()
	if batch == 0 {
		logger.Info("nothing to roll back")
		return nil
	}

	var rows []appliedMigration
	if err := r.db.Where("batch = ?", batch).Order("id desc").Find(&rows).Error; err != nil {
		return err
	}

	byName := make(map[string]Migration, len(registry))
	for _, m := range registry {
		byName[m.Name] = m
	}

	for _, row := range rows {
		m, ok := byName[row.Name]
		if !ok {
			return fmt.Errorf("migration %s: applied but not registered", row.Name)
		}
		logger.Info("reversing migration", "name", row.Name)
		if err := m.Down(r.db); err != nil {
			return fmt.Errorf("migration %s: %w", row.Name, err)
		}
		if err := r.db.Delete(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// Status writes a table of registered migrations and their state.
func (r *Runner) Status() error {
	done, err := r.applied()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(registry))
	for _, m := range registry {
		names = append(names, m.Name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "MIGRATION\tSTATUS\tBATCH")
	for _, name := range names {
		if row, ok := done[name]; ok {
			fmt.Fprintf(w, "%s\tran\t%d\n", name, row.Batch)
		} else {
			fmt.Fprintf(w, "%s\tpending\t-\n", name)
		}
	}
	return w.Flush()
}
