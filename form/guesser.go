package form

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/xy-planning-network/dbenum"
	"github.com/xy-planning-network/dbenum/logger"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gorm.io/gorm/schema"
)

// ChoiceWidget is the widget guessed for enumeration fields.
const ChoiceWidget = "choice"

const placeholderKey = "Please choose"

var (
	supportedLanguages = []language.Tag{language.English, language.German, language.French}
	languageMatcher    = language.NewMatcher(supportedLanguages)

	placeholders = mustCatalog(map[language.Tag]string{
		language.English: "Please choose",
		language.German:  "Bitte wählen",
		language.French:  "Veuillez choisir",
	})
)

// mustCatalog builds the placeholder translations, panicking if any cannot be compiled.
func mustCatalog(translations map[language.Tag]string) *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msg := range translations {
		if err := b.SetString(tag, placeholderKey, msg); err != nil {
			panic(fmt.Sprintf("dbenum/form: cannot set %s placeholder: %s", tag, err))
		}
	}

	return b
}

// Confidence ranks how sure a Guesser is about a Guess.
type Confidence int

const (
	LowConfidence Confidence = iota
	MediumConfidence
	HighConfidence
	VeryHighConfidence
)

// A Guess describes the widget a form ought to render for a field.
type Guess struct {
	Widget string

	// Choices are the value-label pairs to select from, in declaration order.
	Choices []dbenum.Choice

	// Required is false when the column is nullable.
	Required bool

	// Placeholder labels the blank option offered for nullable columns.
	// Placeholder is empty for required fields.
	Placeholder string

	Confidence Confidence
}

// An Option is a single entry of a select widget.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Options lists the entries for a select widget with selected marked,
// beginning with a blank entry when g has a Placeholder.
func (g Guess) Options(selected string) []Option {
	opts := make([]Option, 0, len(g.Choices)+1)
	if g.Placeholder != "" {
		opts = append(opts, Option{Label: g.Placeholder, Selected: selected == ""})
	}

	for _, c := range g.Choices {
		opts = append(opts, Option{Value: c.Value, Label: c.Label, Selected: c.Value == selected})
	}

	return opts
}

// A Guesser inspects GORM models to guess which widget a form ought to use for a field.
//
// A Guesser only guesses for fields typed with an enumeration,
// that is, fields whose GORM data type is the name of a registered Definition.
// Such fields are generally dbenum.Enum or dbenum.NullEnum,
// but a string field tagged `gorm:"type:Status"` qualifies as well.
type Guesser struct {
	reg     *dbenum.Registry
	types   map[string]*dbenum.Definition
	cache   *sync.Map
	namer   schema.Namer
	printer *message.Printer
	l       logger.Logger
}

// A GuesserOpt configures a *Guesser when constructing a new one.
type GuesserOpt func(*Guesser) error

// WithTypes restricts a Guesser to the enumerations registered under names.
// Every name must be in the Guesser's registry, otherwise NewGuesser returns ErrBadConfig.
func WithTypes(names ...string) GuesserOpt {
	return func(g *Guesser) error {
		g.types = make(map[string]*dbenum.Definition, len(names))
		for _, name := range names {
			def, err := g.reg.Lookup(name)
			if err != nil {
				return fmt.Errorf("%w: enum registered for guessing is missing: %w", dbenum.ErrBadConfig, err)
			}

			g.types[name] = def
		}

		return nil
	}
}

// WithLanguage sets the language placeholders are written in.
// Unsupported languages fall back to English.
func WithLanguage(tag language.Tag) GuesserOpt {
	return func(g *Guesser) error {
		_, i, _ := languageMatcher.Match(tag)
		g.printer = message.NewPrinter(supportedLanguages[i], message.Catalog(placeholders))
		return nil
	}
}

// WithLogger sets the logger.Logger a Guesser reports misses with.
func WithLogger(l logger.Logger) GuesserOpt {
	return func(g *Guesser) error {
		g.l = l
		return nil
	}
}

// WithNamer sets the schema.Namer models are parsed with.
// Use the same NamingStrategy the *gorm.DB uses so column names resolve.
func WithNamer(namer schema.Namer) GuesserOpt {
	return func(g *Guesser) error {
		g.namer = namer
		return nil
	}
}

// NewGuesser constructs a *Guesser looking up enumerations in reg.
// If reg is nil, the default registry is used.
func NewGuesser(reg *dbenum.Registry, opts ...GuesserOpt) (*Guesser, error) {
	if reg == nil {
		reg = dbenum.Default()
	}

	g := &Guesser{
		reg:   reg,
		cache: new(sync.Map),
		namer: schema.NamingStrategy{},
	}

	for _, opt := range append([]GuesserOpt{WithLanguage(language.English)}, opts...) {
		if err := opt(g); err != nil {
			return nil, err
		}
	}

	if g.l == nil {
		g.l = logger.New()
	}

	return g, nil
}

// GuessType guesses the widget for field on model.
// field is either the Go field name or the column name.
//
// GuessType returns false when model cannot be parsed as a GORM model,
// has no such field, or the field is not an enumeration the Guesser knows.
func (g *Guesser) GuessType(model any, field string) (Guess, bool) {
	s, err := schema.Parse(model, g.cache, g.namer)
	if err != nil {
		g.l.Debug("cannot parse model", &logger.LogContext{
			Caller: logger.CurrentCaller(),
			Data:   map[string]any{"model": fmt.Sprintf("%T", model)},
			Error:  err,
		})
		return Guess{}, false
	}

	f := s.LookUpField(field)
	if f == nil {
		g.l.Debug("no such field", &logger.LogContext{
			Caller: logger.CurrentCaller(),
			Data:   map[string]any{"model": s.Name, "field": field},
		})
		return Guess{}, false
	}

	def, ok := g.definition(string(f.DataType))
	if !ok {
		return Guess{}, false
	}

	nullable := isNullable(f)
	guess := Guess{
		Widget:     ChoiceWidget,
		Choices:    def.Choices(),
		Required:   !nullable,
		Confidence: VeryHighConfidence,
	}

	if nullable {
		guess.Placeholder = g.printer.Sprintf(placeholderKey)
	}

	return guess, true
}

func (g *Guesser) definition(name string) (*dbenum.Definition, bool) {
	if g.types != nil {
		def, ok := g.types[name]
		return def, ok
	}

	def, err := g.reg.Lookup(name)
	return def, err == nil
}

// isNullable asserts whether the column behind f may hold NULL.
// Only pointers and dbenum.Field types reporting so can represent NULL in Go.
func isNullable(f *schema.Field) bool {
	if f.NotNull || f.PrimaryKey {
		return false
	}

	if f.FieldType.Kind() == reflect.Pointer {
		return true
	}

	if field, ok := reflect.New(f.IndirectFieldType).Elem().Interface().(dbenum.Field); ok {
		return field.Nullable()
	}

	return false
}
