package postgres_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/dbenum"
	"github.com/xy-planning-network/dbenum/postgres"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	plain := errors.New("connection reset")

	for _, tc := range []struct {
		name     string
		err      error
		expected error
	}{
		{"nil", nil, nil},
		{"invalid-enum", &pgconn.PgError{Code: "22P02", Message: `invalid input value for enum status: "deleted"`}, dbenum.ErrNotValid},
		{"wrapped", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), dbenum.ErrExists},
		{"duplicate-type", &pgconn.PgError{Code: "42710"}, dbenum.ErrExists},
		{"message-only", errors.New(`ERROR: invalid input value for enum status: "deleted" (SQLSTATE 22P02)`), dbenum.ErrNotValid},
		{"not-found", gorm.ErrRecordNotFound, dbenum.ErrNotExist},
		{"other", plain, plain},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual := postgres.Translate(tc.err)

			// Assert
			if tc.expected == nil {
				require.NoError(t, actual)
				return
			}

			require.ErrorIs(t, actual, tc.expected)
			if tc.err != nil {
				require.ErrorIs(t, actual, tc.err)
			}
		})
	}
}
