package surveys

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLocalizedValue(t *testing.T) {
	values := map[string]string{"fi": "Alue", "EN": "Region", "default": "Default"}

	assert.Equal(t, "Alue", ResolveLocalizedValue(values, "fi-FI", "x"))
	assert.Equal(t, "Region", ResolveLocalizedValue(values, "en", "x"))
	assert.Equal(t, "Default", ResolveLocalizedValue(values, "sv", "x"))
	assert.Equal(t, "x", ResolveLocalizedValue(nil, "fi", "x"))
}

func TestCatalogTranslatesAndFallsBack(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)

	ctx := context.Background()
	fi, err := catalog.Translate(ctx, "survey.actions.add_dimension", "fi", nil)
	require.NoError(t, err)
	assert.Equal(t, "Lisää dimensio", fi)

	regional, err := catalog.Translate(ctx, "survey.actions.add_dimension", "fi_FI", nil)
	require.NoError(t, err)
	assert.Equal(t, fi, regional)

	fallback, err := catalog.Translate(ctx, "survey.actions.add_dimension", "sv", nil)
	require.NoError(t, err)
	assert.Equal(t, "Add dimension", fallback)

	_, err = catalog.Translate(ctx, "survey.unknown", "en", nil)
	assert.Error(t, err)
}

func TestCatalogLocalesAreComplete(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)

	assert.Equal(t, []string{"en", "fi"}, catalog.Locales())
	assert.Empty(t, catalog.MissingKeys())
}

func TestCatalogMissingKeys(t *testing.T) {
	catalog := NewCatalog("en")
	require.NoError(t, catalog.LoadLocale("en", strings.NewReader("a: one\nnested:\n  b: two\n")))
	require.NoError(t, catalog.LoadLocale("fi", strings.NewReader("a: yksi\n")))

	assert.Equal(t, map[string][]string{"fi": {"nested.b"}}, catalog.MissingKeys())
}

func TestMessagesInterpolateAndFallBackToKey(t *testing.T) {
	messages := testMessages(t, "EN")
	assert.Equal(t, "en", messages.Locale())
	assert.Equal(t, "2 dimensions, 5 values.", messages.Format("survey.dimension_table_footer", map[string]any{
		"dimensions": 2,
		"values":     5,
	}))
	assert.Equal(t, "survey.nope", messages.Get("survey.nope"))

	bare := NewMessages(context.Background(), nil, "fi")
	assert.Equal(t, "survey.actions.add_dimension", bare.Get("survey.actions.add_dimension"))
}

func TestCatalogSetMessageOverridesEveryLocale(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	catalog.SetMessage("common.app_name", "Survey Admin")

	for _, locale := range catalog.Locales() {
		value, err := catalog.Translate(context.Background(), "common.app_name", locale, nil)
		require.NoError(t, err)
		assert.Equal(t, "Survey Admin", value)
	}
	assert.Empty(t, catalog.MissingKeys())
}
