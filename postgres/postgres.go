package postgres

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/xy-planning-network/dbenum"
	"github.com/xy-planning-network/dbenum/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

// PG Docs: https://www.postgresql.org/docs/current/libpq-connect.html#LIBPQ-PARAMKEYWORDS
const cxnStr = "host=%s port=%s dbname=%s user=%s password=%s sslmode=%s"

// CxnConfig holds connection information used to connect to a PostgreSQL database.
type CxnConfig struct {
	IsTestDB bool
	URL      string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string

	// MaxIdle caps idle connections in the pool; zero leaves database/sql's default.
	MaxIdle int
}

// NewCxnConfig reads a CxnConfig from the environment.
//
// DATABASE_URL wins over the individual DATABASE_* variables.
// In the Testing Environment, the DATABASE_TEST_* variables are read instead
// and the public schema is dropped on Connect.
func NewCxnConfig(env dbenum.Environment) *CxnConfig {
	prefix := "DATABASE_"
	if env.IsTesting() {
		prefix = "DATABASE_TEST_"
	}

	return &CxnConfig{
		IsTestDB: env.IsTesting(),
		URL:      dbenum.EnvVarOrString(prefix+"URL", ""),
		Host:     dbenum.EnvVarOrString(prefix+"HOST", "localhost"),
		Port:     dbenum.EnvVarOrString(prefix+"PORT", "5432"),
		Name:     dbenum.EnvVarOrString(prefix+"NAME", "dbenum"),
		User:     dbenum.EnvVarOrString(prefix+"USER", "postgres"),
		Password: dbenum.EnvVarOrString(prefix+"PASSWORD", ""),
		SSLMode:  dbenum.EnvVarOrString(prefix+"SSLMODE", ""),
		MaxIdle:  dbenum.EnvVarOrInt(prefix+"MAX_IDLE_CXNS", 1),
	}
}

// Connect creates a database connection through GORM according to the connection config and runs all migrations.
//
// Queries slower than DATABASE_SLOW_THRESHOLD, 200ms by default, are logged.
func Connect(config *CxnConfig, migrations []Migration, env dbenum.Environment) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(buildCxnStr(config)), &gorm.Config{
		Logger: glogger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), gormLoggerConfig(env)),
		NowFunc: func() time.Time {
			return time.Now().Truncate(time.Microsecond)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed opening connection: %s", dbenum.ErrUnexpected, err)
	}

	if config.MaxIdle > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("%w: %s", dbenum.ErrUnexpected, err)
		}
		sqlDB.SetMaxIdleConns(config.MaxIdle)
	}

	if config.IsTestDB {
		if err := db.Exec("DROP SCHEMA IF EXISTS public CASCADE; CREATE SCHEMA public;").Error; err != nil {
			return nil, Translate(err)
		}
	}

	l := logger.New(logger.WithEnv(env.String()))
	if err := MigrateUp(db, migrations, l); err != nil {
		return nil, err
	}

	return db, nil
}

// gormLoggerConfig configures GORM's own logger.
// Cf., https://gorm.io/docs/logger.html
func gormLoggerConfig(env dbenum.Environment) glogger.Config {
	return glogger.Config{
		SlowThreshold:             dbenum.EnvVarOrDuration("DATABASE_SLOW_THRESHOLD", 200*time.Millisecond),
		LogLevel:                  glogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  env.IsDevelopment(),
	}
}

func buildCxnStr(config *CxnConfig) string {
	if config.URL != "" {
		return config.URL
	}

	sslMode := config.SSLMode
	if sslMode == "" {
		// PG Docs: https://www.postgresql.org/docs/current/libpq-ssl.html#LIBPQ-SSL-SSLMODE-STATEMENTS
		sslMode = "prefer"
	}

	return fmt.Sprintf(
		cxnStr,
		config.Host,
		config.Port,
		config.Name,
		config.User,
		config.Password,
		sslMode,
	)
}
