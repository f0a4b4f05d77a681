package dbenum

import (
	"bytes"
	"database/sql"
	"database/sql/driver"
	"encoding"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

var (
	_ Enumerable                   = Enum[descriptorCheck]("")
	_ Field                        = NullEnum[descriptorCheck]{}
	_ schema.GormDataTypeInterface = NullEnum[descriptorCheck]{}
	_ encoding.TextUnmarshaler     = (*NullEnum[descriptorCheck])(nil)
	_ sql.Scanner                  = (*NullEnum[descriptorCheck])(nil)
)

type descriptorCheck struct{}

func (descriptorCheck) Definition() *Definition { return nil }

// A Descriptor ties a Go type to a Definition.
// Descriptors are generally zero-size struct types:
//
//	var statusDef = dbenum.MustRegister(dbenum.MustDefine("Status",
//		dbenum.Choice{Value: "draft", Label: "Draft"},
//		dbenum.Choice{Value: "published", Label: "Published"},
//	))
//
//	type StatusEnum struct{}
//
//	func (StatusEnum) Definition() *dbenum.Definition { return statusDef }
//
//	type Post struct {
//		Status dbenum.Enum[StatusEnum]
//	}
type Descriptor interface {
	Definition() *Definition
}

// Field is the interface implemented by model field types backed by a Definition.
type Field interface {
	Definition() *Definition
	Nullable() bool
}

// An Enum is a NOT NULL column holding one of the values of D's Definition.
type Enum[D Descriptor] string

// Definition returns the Definition backing e.
func (Enum[D]) Definition() *Definition {
	var d D
	return d.Definition()
}

// Nullable is always false for an Enum; use NullEnum for nullable columns.
func (Enum[D]) Nullable() bool { return false }

// String stringifies the Enum.
//
// String implements fmt.Stringer.
func (e Enum[D]) String() string { return string(e) }

// Valid returns an *InvalidValueError if e is not a value of its Definition.
//
// Valid implements Enumerable.
func (e Enum[D]) Valid() error { return e.Definition().Validate(string(e)) }

// Label returns the human-readable label for e.
func (e Enum[D]) Label() (string, error) { return e.Definition().Label(string(e)) }

// Value validates e before it is written to the database.
//
// Value implements driver.Valuer.
func (e Enum[D]) Value() (driver.Value, error) {
	return e.Definition().StorageValue(string(e))
}

// Scan copies the raw database value into e without transforming it.
// Scanning NULL returns ErrMissingData; use NullEnum for nullable columns.
//
// Scan implements sql.Scanner.
func (e *Enum[D]) Scan(src any) error {
	switch v := src.(type) {
	case string:
		*e = Enum[D](v)

	case []byte:
		*e = Enum[D](v)

	case nil:
		return fmt.Errorf("%w: cannot scan NULL into enum %s", ErrMissingData, e.Definition().Name())

	default:
		return fmt.Errorf("%w: cannot scan %T into enum %s", ErrNotValid, src, e.Definition().Name())
	}

	return nil
}

// GormDataType names the Definition as the field's data type in GORM's schema.
func (e Enum[D]) GormDataType() string { return e.Definition().Name() }

// GormDBDataType renders the column type for the database GORM is connected to.
func (e Enum[D]) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return dbDataType(e.Definition(), db)
}

// A NullEnum is a nullable column holding either NULL or one of the values of D's Definition.
// NullEnum behaves like [database/sql.NullString].
type NullEnum[D Descriptor] struct {
	Enum  Enum[D]
	Valid bool // Valid is true if Enum is not NULL
}

// NewNullEnum constructs a NullEnum holding value.
func NewNullEnum[D Descriptor](value Enum[D]) NullEnum[D] {
	return NullEnum[D]{Enum: value, Valid: true}
}

// Definition returns the Definition backing n.
func (NullEnum[D]) Definition() *Definition { return Enum[D]("").Definition() }

// Nullable is always true for a NullEnum.
func (NullEnum[D]) Nullable() bool { return true }

// Value returns nil when n is NULL and otherwise validates n.Enum.
//
// Value implements driver.Valuer.
func (n NullEnum[D]) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}

	return n.Enum.Value()
}

// Scan sets n to NULL when src is nil and otherwise scans src into n.Enum.
//
// Scan implements sql.Scanner.
func (n *NullEnum[D]) Scan(src any) error {
	if src == nil {
		n.Enum, n.Valid = "", false
		return nil
	}

	if err := n.Enum.Scan(src); err != nil {
		return err
	}

	n.Valid = true
	return nil
}

// GormDataType names the Definition as the field's data type in GORM's schema.
func (n NullEnum[D]) GormDataType() string { return n.Definition().Name() }

// GormDBDataType renders the column type for the database GORM is connected to.
func (n NullEnum[D]) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return dbDataType(n.Definition(), db)
}

// MarshalJSON renders null when n is NULL and otherwise the raw value.
func (n NullEnum[D]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}

	return json.Marshal(string(n.Enum))
}

// UnmarshalJSON reads null as NULL and a string as the raw value.
func (n *NullEnum[D]) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Enum, n.Valid = "", false
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: enum %s must be a string or null: %s", ErrNotValid, n.Definition().Name(), err)
	}

	n.Enum, n.Valid = Enum[D](s), true
	return nil
}

// UnmarshalText reads empty text as NULL and anything else as the raw value,
// matching how an unselected option is submitted in an HTML form.
func (n *NullEnum[D]) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		n.Enum, n.Valid = "", false
		return nil
	}

	n.Enum, n.Valid = Enum[D](text), true
	return nil
}

func dbDataType(def *Definition, db *gorm.DB) string {
	if db == nil || db.Config == nil || db.Dialector == nil {
		return def.ColumnDeclaration()
	}

	return def.Declaration(db.Dialector.Name())
}
