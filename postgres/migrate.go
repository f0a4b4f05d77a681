package postgres

import (
	"fmt"
	"time"

	"github.com/xy-planning-network/dbenum"
	"github.com/xy-planning-network/dbenum/logger"
	"gorm.io/gorm"
)

// Migration is used to hold the database key and function for creating the migration.
type Migration struct {
	Executor func(*gorm.DB) error
	Key      string
}

func (m Migration) execute(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := m.Executor(tx); err != nil {
			return err
		}

		return tx.Create(&migrationRecord{Key: m.Key, RanAt: time.Now().Unix()}).Error
	})
}

// migrationRecord is a row of the migrations table tracking which Migrations ran.
type migrationRecord struct {
	ID    uint   `gorm:"primaryKey"`
	RanAt int64  `gorm:"not null"`
	Key   string `gorm:"not null;uniqueIndex:migrations_key"`
}

func (migrationRecord) TableName() string { return "migrations" }

// MigrateUp runs, in order, each of migrations not yet recorded in the migrations table.
//
// Each Migration runs in its own transaction along with recording its key.
// MigrateUp stops at the first failing Migration and returns its error;
// Migrations before it stay applied.
func MigrateUp(db *gorm.DB, migrations []Migration, l logger.Logger) error {
	if err := db.AutoMigrate(new(migrationRecord)); err != nil {
		return fmt.Errorf("%w: failed ensuring migrations table: %s", dbenum.ErrUnexpected, err)
	}

	toRun, err := determineMigrationsToRun(db, migrations)
	if err != nil {
		return err
	}

	for _, m := range toRun {
		if err := m.execute(db); err != nil {
			l.Error("migration failed", &logger.LogContext{
				Caller: logger.CurrentCaller(),
				Data:   map[string]any{"key": m.Key},
				Error:  err,
			})
			return fmt.Errorf("migration %s: %w", m.Key, Translate(err))
		}

		l.Info("migration ran", &logger.LogContext{Data: map[string]any{"key": m.Key}})
	}

	return nil
}

func determineMigrationsToRun(db *gorm.DB, all []Migration) ([]Migration, error) {
	var ran []string
	if err := db.Model(new(migrationRecord)).Pluck("key", &ran).Error; err != nil {
		return nil, fmt.Errorf("%w: failed fetching ran migrations: %s", dbenum.ErrUnexpected, err)
	}

	seen := make(map[string]bool, len(ran))
	for _, key := range ran {
		seen[key] = true
	}

	toRun := make([]Migration, 0, len(all))
	for _, m := range all {
		if seen[m.Key] {
			continue
		}

		seen[m.Key] = true
		toRun = append(toRun, m)
	}

	return toRun, nil
}
