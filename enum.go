package dbenum

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm/schema"
)

// Enumerable is the interface implemented by types that can only be represented by enumerable, constant values.
//
// Implementing a new Enumerable or adding a new constant value ought to include updating the database with the same
// types and values.
type Enumerable interface {
	String() string
	Valid() error
}

// A Choice pairs the raw value stored in the database with the label shown to people.
type Choice struct {
	Value string `json:"value" yaml:"value" toml:"value"`
	Label string `json:"label" yaml:"label" toml:"label"`
}

// A Definition is the ordered, immutable set of Choices making up one enumeration.
//
// The order of Choices is the order values are declared in the column type.
// Construct a Definition with Define or MustDefine.
type Definition struct {
	name    string
	choices []Choice
	index   map[string]int
}

// Define constructs a *Definition named name from choices.
//
// Define returns ErrBadConfig when name is empty,
// ErrMissingData when there are no choices,
// ErrNotValid when a choice has an empty value,
// and ErrExists when two choices share a value.
func Define(name string, choices ...Choice) (*Definition, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: enum name must not be empty", ErrBadConfig)
	}

	if len(choices) == 0 {
		return nil, fmt.Errorf("%w: enum %s has no choices", ErrMissingData, name)
	}

	d := &Definition{
		name:    name,
		choices: make([]Choice, len(choices)),
		index:   make(map[string]int, len(choices)),
	}

	for i, c := range choices {
		if c.Value == "" {
			return nil, fmt.Errorf("%w: enum %s has an empty value at position %d", ErrNotValid, name, i)
		}

		if _, ok := d.index[c.Value]; ok {
			return nil, fmt.Errorf("%w: enum %s declares %q more than once", ErrExists, name, c.Value)
		}

		d.index[c.Value] = i
		d.choices[i] = c
	}

	return d, nil
}

// MustDefine is like Define but panics if the Definition cannot be constructed.
// It simplifies declaring Definitions in package-level variables.
func MustDefine(name string, choices ...Choice) *Definition {
	d, err := Define(name, choices...)
	if err != nil {
		panic(err)
	}

	return d
}

// Name returns the identifier the Definition is registered and typed under.
func (d *Definition) Name() string { return d.name }

// Choices returns a copy of the value-label pairs in declaration order.
func (d *Definition) Choices() []Choice {
	out := make([]Choice, len(d.choices))
	copy(out, d.choices)
	return out
}

// ChoiceMap returns the value-label pairs keyed by value.
// Prefer Choices whenever order matters.
func (d *Definition) ChoiceMap() map[string]string {
	m := make(map[string]string, len(d.choices))
	for _, c := range d.choices {
		m[c.Value] = c.Label
	}

	return m
}

// Values returns the raw values in declaration order.
func (d *Definition) Values() []string {
	out := make([]string, len(d.choices))
	for i, c := range d.choices {
		out[i] = c.Value
	}

	return out
}

// Contains asserts whether value is one of the Definition's values.
func (d *Definition) Contains(value string) bool {
	_, ok := d.index[value]
	return ok
}

// Validate returns an *InvalidValueError if value is not one of the Definition's values.
func (d *Definition) Validate(value string) error {
	if !d.Contains(value) {
		return &InvalidValueError{Value: value, TypeName: d.name}
	}

	return nil
}

// Label returns the human-readable label for value.
// If value is not one of the Definition's values, Label returns an *InvalidValueError.
func (d *Definition) Label(value string) (string, error) {
	i, ok := d.index[value]
	if !ok {
		return "", &InvalidValueError{Value: value, TypeName: d.name}
	}

	return d.choices[i].Label, nil
}

// StorageValue converts value into the form written to the database.
//
// A nil value, including any nil pointer such as a nil *string or *NullEnum,
// is NULL and returns nil so nullable columns can hold no value.
// A driver.Valuer, such as a NullEnum, is resolved first.
// A string, *string, []byte or fmt.Stringer must be one of the Definition's values
// and returns unchanged as a string.
// Anything else, or a value not in the Definition, returns an *InvalidValueError.
func (d *Definition) StorageValue(value any) (driver.Value, error) {
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, nil
	}

	var s string
	switch v := value.(type) {
	case nil:
		return nil, nil

	case string:
		s = v

	case *string:
		s = *v

	case []byte:
		s = string(v)

	case driver.Valuer:
		dv, err := v.Value()
		if err != nil {
			return nil, err
		}
		return d.StorageValue(dv)

	case fmt.Stringer:
		s = v.String()

	default:
		return nil, &InvalidValueError{Value: fmt.Sprint(value), TypeName: d.name}
	}

	if err := d.Validate(s); err != nil {
		return nil, err
	}

	return s, nil
}

// ColumnDeclaration renders the column type listing every value in order,
// for example:
//
//	ENUM('draft', 'published')
//
// Single quotes inside a value are doubled.
func (d *Definition) ColumnDeclaration() string {
	return "ENUM(" + quoteList(d.Values()) + ")"
}

// Declaration renders the column type for the named SQL dialect,
// matching the names GORM dialectors report:
//
//   - "postgres": the quoted name of the type created by CREATE TYPE
//   - "sqlite": text
//   - "sqlserver": nvarchar sized to the longest value
//   - anything else, including "mysql": ColumnDeclaration
func (d *Definition) Declaration(dialect string) string {
	switch dialect {
	case "postgres":
		return `"` + strings.ReplaceAll(d.PostgresName(), `"`, `""`) + `"`

	case "sqlite":
		return "text"

	case "sqlserver":
		var n int
		for _, c := range d.choices {
			n = max(n, utf8.RuneCountInString(c.Value))
		}
		return fmt.Sprintf("nvarchar(%d)", n)

	default:
		return d.ColumnDeclaration()
	}
}

// PostgresName is the snake_cased name of the Postgres type backing the Definition,
// e.g., OrderStatus becomes order_status.
// Distinct names may share a PostgresName, so a Registry refuses to hold both.
func (d *Definition) PostgresName() string {
	return schema.NamingStrategy{}.ColumnName("", d.name)
}

// ParseColumnDeclaration reads the values back out of a declaration
// rendered by ColumnDeclaration.
// Quoted values may contain commas and doubled single quotes.
func ParseColumnDeclaration(decl string) ([]string, error) {
	decl = strings.TrimSpace(decl)
	if len(decl) < len("ENUM()") || !strings.EqualFold(decl[:5], "ENUM(") || decl[len(decl)-1] != ')' {
		return nil, fmt.Errorf("%w: %q is not an ENUM declaration", ErrNotValid, decl)
	}

	body := decl[5 : len(decl)-1]

	var (
		values  []string
		current strings.Builder
		inQuote bool
		closed  bool
	)

	for i := 0; i < len(body); i++ {
		ch := body[i]
		switch {
		case inQuote && ch == '\'' && i+1 < len(body) && body[i+1] == '\'':
			current.WriteByte('\'')
			i++

		case inQuote && ch == '\'':
			inQuote = false
			closed = true
			values = append(values, current.String())
			current.Reset()

		case inQuote:
			current.WriteByte(ch)

		case ch == '\'' && !closed:
			inQuote = true

		case ch == ',' && closed:
			closed = false

		case ch == ' ':

		default:
			return nil, fmt.Errorf("%w: unexpected %q at offset %d in %q", ErrNotValid, ch, i+5, decl)
		}
	}

	if inQuote || (!closed && len(values) > 0) {
		return nil, fmt.Errorf("%w: unterminated value in %q", ErrNotValid, decl)
	}

	return values, nil
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
	}

	return strings.Join(quoted, ", ")
}
