package postgres

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/xy-planning-network/dbenum"
	"gorm.io/gorm"
)

// TypeName is the name of the Postgres type backing def, e.g., order_status for OrderStatus.
func TypeName(def *dbenum.Definition) string { return def.PostgresName() }

// CreateTypeSQL renders a statement creating the Postgres enumerated type for def
// unless a type by that name already exists:
//
//	DO $enum$
//	BEGIN
//		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'status') THEN
//			CREATE TYPE "status" AS ENUM ('draft', 'published');
//		END IF;
//	END
//	$enum$;
func CreateTypeSQL(def *dbenum.Definition) string {
	var b strings.Builder
	b.WriteString("DO $enum$\nBEGIN\n")
	fmt.Fprintf(&b, "\tIF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = %s) THEN\n", quoteLiteral(TypeName(def)))
	fmt.Fprintf(&b, "\t\tCREATE TYPE %s AS %s;\n", quoteIdent(TypeName(def)), def.ColumnDeclaration())
	b.WriteString("\tEND IF;\nEND\n$enum$;")
	return b.String()
}

// AddValuesSQL renders one ALTER TYPE statement per value of def missing from existing,
// the labels the type holds in their current order.
// Running the statements in order brings the type up to date with def
// without disturbing values def no longer lists.
//
// Each missing value is placed after the nearest preceding value already in the type
// or added by an earlier statement, or else before the nearest following value already in the type.
// With no existing labels, values are appended in declaration order.
//
// ADD VALUE runs inside a transaction from PostgreSQL 12 on.
func AddValuesSQL(def *dbenum.Definition, existing ...string) []string {
	present := make(map[string]bool, len(existing))
	for _, label := range existing {
		present[label] = true
	}

	values := def.Values()
	var stmts []string
	for i, v := range values {
		if present[v] {
			continue
		}

		stmt := fmt.Sprintf("ALTER TYPE %s ADD VALUE IF NOT EXISTS %s", quoteIdent(TypeName(def)), quoteLiteral(v))
		if anchor, ok := nearest(values[:i], present, true); ok {
			stmt += " AFTER " + quoteLiteral(anchor)
		} else if anchor, ok := nearest(values[i+1:], present, false); ok {
			stmt += " BEFORE " + quoteLiteral(anchor)
		}

		stmts = append(stmts, stmt+";")
		present[v] = true
	}

	return stmts
}

// nearest finds the value in values closest to the one being placed that is present,
// searching from the end of values when before is true.
func nearest(values []string, present map[string]bool, before bool) (string, bool) {
	for j := range values {
		if before {
			j = len(values) - 1 - j
		}

		if present[values[j]] {
			return values[j], true
		}
	}

	return "", false
}

const existingLabelsSQL = `SELECT e.enumlabel
FROM pg_enum e
JOIN pg_type t ON t.oid = e.enumtypid
WHERE t.typname = ?
ORDER BY e.enumsortorder`

// EnumMigration creates or updates the Postgres types backing defs.
//
// The Migration's Key is derived from every declaration,
// so adding a value to a Definition yields a new Migration.
func EnumMigration(defs ...*dbenum.Definition) Migration {
	h := fnv.New64a()
	for _, def := range defs {
		fmt.Fprintf(h, "%s %s;", TypeName(def), def.ColumnDeclaration())
	}

	return Migration{
		Key: fmt.Sprintf("enum_types_%x", h.Sum64()),
		Executor: func(tx *gorm.DB) error {
			for _, def := range defs {
				if err := tx.Exec(CreateTypeSQL(def)).Error; err != nil {
					return fmt.Errorf("creating type %s: %w", TypeName(def), err)
				}

				var existing []string
				if err := tx.Raw(existingLabelsSQL, TypeName(def)).Scan(&existing).Error; err != nil {
					return fmt.Errorf("reading type %s: %w", TypeName(def), err)
				}

				for _, stmt := range AddValuesSQL(def, existing...) {
					if err := tx.Exec(stmt).Error; err != nil {
						return fmt.Errorf("updating type %s: %w", TypeName(def), err)
					}
				}
			}

			return nil
		},
	}
}

func quoteIdent(s string) string { return `"` + strings.ReplaceAll(s, `"`, `""`) + `"` }

func quoteLiteral(s string) string { return "'" + strings.ReplaceAll(s, "'", "''") + "'" }
