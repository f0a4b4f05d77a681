package form_test

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/dbenum"
	"github.com/xy-planning-network/dbenum/form"
)

var (
	statusDef = dbenum.MustDefine("Status",
		dbenum.Choice{Value: "published", Label: "Published"},
		dbenum.Choice{Value: "draft", Label: "Draft"},
		dbenum.Choice{Value: "archived", Label: "Archived"},
	)

	roleDef = dbenum.MustDefine("Role",
		dbenum.Choice{Value: "admin", Label: "Administrator"},
		dbenum.Choice{Value: "member", Label: "Member"},
	)
)

type statusEnum struct{}

func (statusEnum) Definition() *dbenum.Definition { return statusDef }

func newRegistry(t *testing.T) *dbenum.Registry {
	t.Helper()

	reg, err := dbenum.NewRegistry(statusDef, roleDef)
	require.NoError(t, err)
	reg.Freeze()

	return reg
}

type postForm struct {
	Status   dbenum.Enum[statusEnum]     `json:"status" schema:"status" validate:"enum"`
	Previous dbenum.NullEnum[statusEnum] `json:"previous" schema:"previous" validate:"enum"`
	Role     string                      `json:"role" schema:"role" validate:"enum=Role"`
	Tags     []dbenum.Enum[statusEnum]   `json:"tags" schema:"tags" validate:"omitempty,enum"`
}

func TestParseForm(t *testing.T) {
	// Arrange
	p := form.NewParser(newRegistry(t))
	values := url.Values{
		"status":   {"draft"},
		"previous": {""},
		"role":     {"admin"},
		"tags":     {"published", "archived"},
	}

	// Act
	var actual postForm
	err := p.ParseForm(values, &actual)

	// Assert
	require.NoError(t, err)
	require.Equal(t, dbenum.Enum[statusEnum]("draft"), actual.Status)
	require.False(t, actual.Previous.Valid)
	require.Equal(t, "admin", actual.Role)
	require.Equal(t, []dbenum.Enum[statusEnum]{"published", "archived"}, actual.Tags)
}

func TestParseFormNullEnum(t *testing.T) {
	// Arrange
	p := form.NewParser(newRegistry(t))
	values := url.Values{"status": {"draft"}, "previous": {"archived"}, "role": {"member"}}

	// Act
	var actual postForm
	err := p.ParseForm(values, &actual)

	// Assert
	require.NoError(t, err)
	require.Equal(t, dbenum.NewNullEnum[statusEnum]("archived"), actual.Previous)
}

func TestParseFormInvalid(t *testing.T) {
	for _, tc := range []struct {
		name   string
		values url.Values
		field  string
	}{
		{"status", url.Values{"status": {"deleted"}, "role": {"admin"}}, "status"},
		{"missing-status", url.Values{"role": {"admin"}}, "status"},
		{"previous", url.Values{"status": {"draft"}, "previous": {"deleted"}, "role": {"admin"}}, "previous"},
		{"role", url.Values{"status": {"draft"}, "role": {"guest"}}, "role"},
		{"tags", url.Values{"status": {"draft"}, "role": {"admin"}, "tags": {"draft", "deleted"}}, "tags"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			p := form.NewParser(newRegistry(t))

			// Act
			var actual postForm
			err := p.ParseForm(tc.values, &actual)

			// Assert
			require.ErrorIs(t, err, dbenum.ErrNotValid)

			var errs form.ValidationErrors
			require.True(t, errors.As(err, &errs))
			require.Len(t, errs, 1)
			require.Equal(t, tc.field, errs[0].Field)
			require.True(t, strings.HasPrefix(errs[0].Rule, "enum"))
		})
	}
}

func TestParseFormNotPointer(t *testing.T) {
	// Arrange
	p := form.NewParser(newRegistry(t))

	// Act
	err := p.ParseForm(url.Values{"status": {"draft"}}, postForm{})

	// Assert
	require.ErrorIs(t, err, dbenum.ErrBadConfig)
}

func TestParseBody(t *testing.T) {
	// Arrange
	p := form.NewParser(newRegistry(t))
	body := strings.NewReader(`{"status":"published","previous":null,"role":"member"}`)

	// Act
	var actual postForm
	err := p.ParseBody(body, &actual)

	// Assert
	require.NoError(t, err)
	require.Equal(t, dbenum.Enum[statusEnum]("published"), actual.Status)
	require.False(t, actual.Previous.Valid)
}

func TestParseBodyInvalid(t *testing.T) {
	// Arrange
	p := form.NewParser(newRegistry(t))
	body := strings.NewReader(`{"status":"published","previous":"deleted","role":"member"}`)

	// Act
	var actual postForm
	err := p.ParseBody(body, &actual)

	// Assert
	require.ErrorIs(t, err, dbenum.ErrNotValid)

	var errs form.ValidationErrors
	require.True(t, errors.As(err, &errs))
	require.Equal(t, "previous", errs[0].Field)
}

func TestParseBodyMalformed(t *testing.T) {
	// Arrange
	p := form.NewParser(newRegistry(t))

	// Act
	var actual postForm
	err := p.ParseBody(strings.NewReader(`{"previous": 42}`), &actual)

	// Assert
	require.ErrorIs(t, err, dbenum.ErrNotValid)
}

func TestParseBodyNotPointer(t *testing.T) {
	// Arrange
	p := form.NewParser(newRegistry(t))

	// Act
	err := p.ParseBody(strings.NewReader(`{}`), postForm{})

	// Assert
	require.ErrorIs(t, err, dbenum.ErrBadConfig)
}
