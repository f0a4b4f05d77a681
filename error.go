package dbenum

import (
	"errors"
	"fmt"
)

var (
	ErrBadConfig   = errors.New("bad config")
	ErrExists      = errors.New("exists")
	ErrMissingData = errors.New("missing data")
	ErrNotExist    = errors.New("not exist")
	ErrNotValid    = errors.New("invalid")
	ErrUnexpected  = errors.New("unexpected")
)

// An InvalidValueError reports a value that is not among the values
// of the enumeration named by TypeName.
//
// InvalidValueError unwraps to ErrNotValid.
type InvalidValueError struct {
	Value    string
	TypeName string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for enum %s", e.Value, e.TypeName)
}

func (*InvalidValueError) Unwrap() error { return ErrNotValid }
