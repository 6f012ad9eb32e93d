package surveys

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartCacheReusesRenderedChart(t *testing.T) {
	cache := NewChartCache(time.Minute)
	calls := 0
	render := func() (string, error) {
		calls++
		return "<div>chart</div>", nil
	}

	first, err := cache.GetOrRender("rating", render)
	require.NoError(t, err)
	second, err := cache.GetOrRender("rating", render)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, cache.Len())
}

func TestChartCacheDropsExpiredEntries(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	cache := NewChartCache(time.Minute)
	cache.now = func() time.Time { return now }
	calls := 0
	render := func() (string, error) {
		calls++
		return "fresh", nil
	}

	_, err := cache.GetOrRender("rating", render)
	require.NoError(t, err)
	now = now.Add(2 * time.Minute)
	_, err = cache.GetOrRender("rating", render)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestChartCacheSkipsErrorsAndZeroTTL(t *testing.T) {
	cache := NewChartCache(time.Minute)
	_, err := cache.GetOrRender("broken", func() (string, error) { return "", errors.New("boom") })
	require.Error(t, err)
	assert.Equal(t, 0, cache.Len())

	disabled := NewChartCache(0)
	calls := 0
	for i := 0; i < 2; i++ {
		_, err := disabled.GetOrRender("rating", func() (string, error) {
			calls++
			return "x", nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)

	var nilCache *ChartCache
	html, err := nilCache.GetOrRender("rating", func() (string, error) { return "y", nil })
	require.NoError(t, err)
	assert.Equal(t, "y", html)
}

func TestContentHashIsDeterministic(t *testing.T) {
	a := contentHash(map[string]int{"good": 3, "bad": 1})
	b := contentHash(map[string]int{"bad": 1, "good": 3})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, contentHash(map[string]int{"good": 4}))
}
