package surveys

import (
	"errors"
	"testing"
	"time"

	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ratingField = Field{
	Slug:    "rating",
	Type:    FieldSingleSelect,
	Choices: []Choice{{Slug: "good", Title: "Good"}, {Slug: "bad", Title: "Bad"}},
}

func TestOptionBars(t *testing.T) {
	bars := OptionBars(ratingField, OptionFieldSummary{Choices: map[string]int{"zeta": 1, "bad": 2, "alpha": 4}})
	assert.Equal(t, []ChartBar{
		{Slug: "good", Label: "Good", Count: 0},
		{Slug: "bad", Label: "Bad", Count: 2},
		{Slug: "alpha", Label: "alpha", Count: 4},
		{Slug: "zeta", Label: "zeta", Count: 1},
	}, bars)
}

func TestRenderOptionChartUsesCache(t *testing.T) {
	cache := NewChartCache(time.Minute)
	renderer := NewChartRenderer(WithChartCache(cache), WithChartTheme(types.ThemeWesteros), WithChartAssetsHost("https://assets.example.com"))
	summary := OptionFieldSummary{Choices: map[string]int{"good": 3, "bad": 1}}

	first, err := renderer.RenderOptionChart(ratingField, summary)
	require.NoError(t, err)
	assert.Contains(t, first, "https://assets.example.com/")
	assert.Equal(t, 1, cache.Len())

	second, err := renderer.RenderOptionChart(ratingField, summary)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.Len())

	_, err = renderer.RenderOptionChart(ratingField, OptionFieldSummary{Choices: map[string]int{"good": 4}})
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())
}

func TestRenderOptionChartWithoutBars(t *testing.T) {
	html, err := NewChartRenderer().RenderOptionChart(Field{Slug: "empty"}, OptionFieldSummary{})
	require.NoError(t, err)
	assert.Empty(t, html)
}

func TestChartCacheExpiresEntries(t *testing.T) {
	cache := NewChartCache(time.Minute)
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	renders := 0
	render := func() (string, error) {
		renders++
		return "<div></div>", nil
	}
	_, err := cache.GetOrRender("k", render)
	require.NoError(t, err)
	_, err = cache.GetOrRender("k", render)
	require.NoError(t, err)
	assert.Equal(t, 1, renders)

	now = now.Add(2 * time.Minute)
	_, err = cache.GetOrRender("k", render)
	require.NoError(t, err)
	assert.Equal(t, 2, renders)
}

func TestChartCacheDoesNotStoreErrors(t *testing.T) {
	cache := NewChartCache(time.Minute)
	_, err := cache.GetOrRender("k", func() (string, error) { return "", errors.New("boom") })
	assert.Error(t, err)
	assert.Zero(t, cache.Len())
}

func TestChartCacheZeroTTLDisablesCaching(t *testing.T) {
	cache := NewChartCache(0)
	renders := 0
	for range 2 {
		_, err := cache.GetOrRender("k", func() (string, error) {
			renders++
			return "x", nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, renders)
}
