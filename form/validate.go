package form

import (
	"database/sql/driver"
	"errors"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
	"github.com/xy-planning-network/dbenum"
)

type validator struct {
	valid *v10.Validate
	reg   *dbenum.Registry
}

// newValidator constructs a validator, which applies default configuration.
// The "enum" rule is registered against reg.
func newValidator(reg *dbenum.Registry) validator {
	v := validator{valid: v10.New(), reg: reg}
	v.valid.RegisterValidation("enum", v.validateEnum)
	v.valid.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			name = ""
		}

		if name == "" {
			name = strings.SplitN(field.Tag.Get("schema"), ",", 2)[0]
		}

		if name == "-" {
			name = ""
		}

		return name
	})

	return v
}

// validate checks the fields on structPtr match the rules set by "validate" struct tags.
// On success, validate returns no error.
// On failure, validate translates each issue to a ValidationError,
// returning them all as ValidationErrors.
func (v validator) validate(structPtr any) error {
	err := v.valid.Struct(structPtr)
	if err == nil {
		return nil
	}

	var errs v10.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	var validateErrs ValidationErrors
	for _, ve := range errs {
		field := ve.Namespace()

		ns := strings.SplitN(field, ".", 2)
		if len(ns) == 2 {
			field = ns[1]
		}

		rule := ve.Tag()
		if ve.Param() != "" {
			rule += "=" + ve.Param()
		}
		rule += "; " + ve.Type().String()

		validateErrs = append(validateErrs, ValidationError{
			Field: field,
			Got:   ve.Value(),
			Rule:  rule,
		})
	}

	return validateErrs
}

// validateEnum validates whether field is a valid enumeration value or slice of them.
//
// With a parameter, e.g., "enum=Status", plain strings are checked
// against the Definition registered under that name.
func (v validator) validateEnum(fl v10.FieldLevel) bool {
	var def *dbenum.Definition
	if name := fl.Param(); name != "" {
		var err error
		if def, err = v.reg.Lookup(name); err != nil {
			return false
		}
	}

	field := fl.Field()
	if field.Kind() == reflect.Slice {
		vals := []reflect.Value{}
		for i := 0; i < field.Len(); i++ {
			vals = append(vals, field.Index(i))
		}

		return checkEnums(def, vals...)
	}

	return checkEnums(def, field)
}

// checkEnums asserts each [reflect.Value] is a valid enumeration value.
//
// A value is valid if def contains it,
// or, without def, if it is a valid Enumerable
// or a driver.Valuer that accepts its value, such as a NullEnum.
func checkEnums(def *dbenum.Definition, items ...reflect.Value) bool {
	if len(items) == 0 {
		return false
	}

	for _, item := range items {
		if !checkEnum(def, item) {
			return false
		}
	}

	return true
}

func checkEnum(def *dbenum.Definition, item reflect.Value) bool {
	if !item.IsValid() || !item.CanInterface() {
		return false
	}

	if def != nil {
		_, err := def.StorageValue(item.Interface())
		return err == nil
	}

	switch enum := item.Interface().(type) {
	case dbenum.Enumerable:
		return enum.Valid() == nil

	case driver.Valuer:
		_, err := enum.Value()
		return err == nil

	default:
		return false
	}
}
