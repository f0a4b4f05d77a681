package form

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestPlaceholderCatalog(t *testing.T) {
	require.ElementsMatch(t, supportedLanguages, placeholders.Languages())

	for _, tag := range supportedLanguages {
		p := message.NewPrinter(tag, message.Catalog(placeholders))
		require.NotEmpty(t, p.Sprintf(placeholderKey), tag.String())
	}
}

func TestMustCatalog(t *testing.T) {
	// Act
	var b interface{ Languages() []language.Tag }
	require.NotPanics(t, func() {
		b = mustCatalog(map[language.Tag]string{language.Dutch: "Maak een keuze"})
	})

	// Assert
	require.Contains(t, b.Languages(), language.Dutch)
}
