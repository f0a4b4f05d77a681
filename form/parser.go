package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"reflect"

	"github.com/gorilla/schema"
	"github.com/xy-planning-network/dbenum"
)

// A Parser decodes submitted form values or JSON into a pointer to a struct
// and validates the result against its "validate" struct tags.
//
// Besides the rules [github.com/go-playground/validator/v10] ships with,
// a Parser understands "enum":
//
//	type PostForm struct {
//		Status   dbenum.Enum[StatusEnum]     `schema:"status" validate:"enum"`
//		Previous dbenum.NullEnum[StatusEnum] `schema:"previous" validate:"enum"`
//		Role     string                      `schema:"role" validate:"enum=Role"`
//	}
//
// A bare "enum" checks [dbenum.Enumerable] values and [database/sql/driver.Valuer] values, like NullEnum.
// "enum=Name" checks plain values against the Definition registered under Name.
type Parser struct {
	decoder *schema.Decoder
	validator
}

// NewParser constructs a *Parser resolving "enum=Name" rules against reg.
// If reg is nil, the default registry is used.
func NewParser(reg *dbenum.Registry) *Parser {
	if reg == nil {
		reg = dbenum.Default()
	}

	return &Parser{
		decoder:   newFormDecoder(),
		validator: newValidator(reg),
	}
}

// ParseBody decodes into a pointer to a struct the JSON data in body.
// If successful, ParseBody runs validation against the contents,
// returning an error wrapping dbenum.ErrNotValid if the data fails validation rules.
func (p *Parser) ParseBody(body io.Reader, structPtr any) error {
	var ourFault *json.InvalidUnmarshalError
	err := json.NewDecoder(body).Decode(structPtr)
	if errors.As(err, &ourFault) {
		return fmt.Errorf("dbenum/form: %w: ParseBody called with non-pointer: %s", dbenum.ErrBadConfig, err)
	}

	if err != nil {
		return fmt.Errorf("dbenum/form: %w: failed decoding body: %s", dbenum.ErrNotValid, err)
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("dbenum/form: %T failed validation: %w", structPtr, err)
	}

	return nil
}

// ParseForm decodes into a pointer to a struct the submitted values,
// such as *http.Request.PostForm.
// If successful, ParseForm runs validation against the contents,
// returning an error wrapping dbenum.ErrNotValid if the data fails validation rules.
func (p *Parser) ParseForm(values url.Values, structPtr any) error {
	if v := reflect.ValueOf(structPtr); v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("dbenum/form: %w: ParseForm called with %T, not a pointer to a struct", dbenum.ErrBadConfig, structPtr)
	}

	if err := p.decoder.Decode(structPtr, values); err != nil {
		return fmt.Errorf("dbenum/form: failed decoding form values: %w", translateDecoderError(err))
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("dbenum/form: %T failed validation: %w", structPtr, err)
	}

	return nil
}
