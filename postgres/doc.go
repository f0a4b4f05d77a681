/*
Package postgres keeps PostgreSQL in step with enumerations.

Postgres has no inline ENUM column type, so each Definition needs a type created with CREATE TYPE.
CreateTypeSQL and AddValuesSQL render the statements; EnumMigration bundles them into a Migration.
Columns then declare the type by name, which dbenum.Enum and dbenum.NullEnum do on their own
when GORM is connected through gorm.io/driver/postgres.

Connect opens the GORM connection and runs every Migration not yet recorded in the migrations table.
When connecting to a test database, the public schema is dropped first.

Translate maps errors reported by PostgreSQL, such as writing a value the type does not list,
onto dbenum's sentinel errors.
*/
package postgres
