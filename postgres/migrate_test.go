package postgres_test

import (
	"errors"
	"io"
	"log"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/dbenum/logger"
	"github.com/xy-planning-network/dbenum/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

var errTest = errors.New("just testing")

func newSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "migrate.db")), &gorm.Config{
		Logger: glogger.Discard,
	})
	require.NoError(t, err)

	return db
}

func quietLogger() logger.Logger {
	return logger.New(logger.WithLogger(log.New(io.Discard, "", 0)))
}

func TestMigrateUp(t *testing.T) {
	// Arrange
	db := newSQLite(t)
	var calls []string
	migrations := []postgres.Migration{
		{Key: "001_widgets", Executor: func(tx *gorm.DB) error {
			calls = append(calls, "001_widgets")
			return tx.Exec("CREATE TABLE widgets (id integer PRIMARY KEY, status text NOT NULL)").Error
		}},
		{Key: "002_gadgets", Executor: func(tx *gorm.DB) error {
			calls = append(calls, "002_gadgets")
			return tx.Exec("CREATE TABLE gadgets (id integer PRIMARY KEY)").Error
		}},
	}

	// Act
	err := postgres.MigrateUp(db, migrations, quietLogger())

	// Assert
	require.NoError(t, err)
	require.Equal(t, []string{"001_widgets", "002_gadgets"}, calls)

	var keys []string
	require.NoError(t, db.Table("migrations").Order("id").Pluck("key", &keys).Error)
	require.Equal(t, []string{"001_widgets", "002_gadgets"}, keys)

	// Act
	err = postgres.MigrateUp(db, migrations, quietLogger())

	// Assert
	require.NoError(t, err)
	require.Len(t, calls, 2)
}

func TestMigrateUpFailure(t *testing.T) {
	// Arrange
	db := newSQLite(t)
	migrations := []postgres.Migration{
		{Key: "001_ok", Executor: func(tx *gorm.DB) error {
			return tx.Exec("CREATE TABLE ok (id integer PRIMARY KEY)").Error
		}},
		{Key: "002_broken", Executor: func(tx *gorm.DB) error {
			if err := tx.Exec("CREATE TABLE half (id integer PRIMARY KEY)").Error; err != nil {
				return err
			}
			return errTest
		}},
		{Key: "003_never", Executor: func(tx *gorm.DB) error {
			t.Fatal("ran a migration after a failure")
			return nil
		}},
	}

	// Act
	err := postgres.MigrateUp(db, migrations, quietLogger())

	// Assert
	require.ErrorIs(t, err, errTest)
	require.ErrorContains(t, err, "002_broken")

	var keys []string
	require.NoError(t, db.Table("migrations").Pluck("key", &keys).Error)
	require.Equal(t, []string{"001_ok"}, keys)
	require.True(t, db.Migrator().HasTable("ok"))
	require.False(t, db.Migrator().HasTable("half"))
}
