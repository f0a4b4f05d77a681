package postgres

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/xy-planning-network/dbenum"
	"gorm.io/gorm"
)

// sqlStateRegex finds the SQLSTATE code in errors that have lost their *pgconn.PgError.
//
// Cf., https://www.postgresql.org/docs/current/errcodes-appendix.html
var sqlStateRegex = regexp.MustCompile(`SQLSTATE ([0-9A-Z]{5})`)

const (
	invalidTextRepresentation = "22P02"
	uniqueViolation           = "23505"
	duplicateObject           = "42710"
)

// Translate maps errors from PostgreSQL onto dbenum's sentinel errors,
// wrapping both so the underlying error stays inspectable:
//
//   - invalid input value for an enum (22P02): dbenum.ErrNotValid
//   - unique violation (23505) or duplicate object (42710): dbenum.ErrExists
//   - gorm.ErrRecordNotFound: dbenum.ErrNotExist
//
// Any other error returns unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", dbenum.ErrNotExist, err)
	}

	switch sqlState(err) {
	case invalidTextRepresentation:
		return fmt.Errorf("%w: %w", dbenum.ErrNotValid, err)

	case uniqueViolation, duplicateObject:
		return fmt.Errorf("%w: %w", dbenum.ErrExists, err)

	default:
		return err
	}
}

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	if m := sqlStateRegex.FindStringSubmatch(err.Error()); m != nil {
		return m[1]
	}

	return ""
}
