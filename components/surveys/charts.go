package surveys

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const (
	defaultChartHeight   = "280px"
	defaultChartCacheTTL = 5 * time.Minute
	// DefaultChartAssetsHost serves the ECharts runtime when no host is configured.
	DefaultChartAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"
)

// ChartRenderer turns option summaries into server-rendered bar charts.
type ChartRenderer struct {
	cache      RenderCache
	theme      string
	assetsHost string
}

// ChartOption customizes a ChartRenderer.
type ChartOption func(*ChartRenderer)

// WithChartCache injects a render cache. Nil disables caching.
func WithChartCache(cache RenderCache) ChartOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithChartTheme overrides the ECharts theme (defaults to Westeros).
func WithChartTheme(theme string) ChartOption {
	return func(r *ChartRenderer) {
		if theme != "" {
			r.theme = theme
		}
	}
}

// WithChartAssetsHost points the ECharts script tags at host.
func WithChartAssetsHost(host string) ChartOption {
	return func(r *ChartRenderer) {
		if host != "" {
			if !strings.HasSuffix(host, "/") {
				host += "/"
			}
			r.assetsHost = host
		}
	}
}

// NewChartRenderer builds a renderer with a private TTL cache.
func NewChartRenderer(options ...ChartOption) *ChartRenderer {
	r := &ChartRenderer{
		cache:      NewChartCache(defaultChartCacheTTL),
		theme:      types.ThemeWesteros,
		assetsHost: DefaultChartAssetsHost,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// ChartBar is one bar of an option chart.
type ChartBar struct {
	Slug  string
	Label string
	Count int
}

// OptionBars orders the summary counts by the field's declared choices,
// appending undeclared slugs alphabetically.
func OptionBars(field Field, summary OptionFieldSummary) []ChartBar {
	bars := make([]ChartBar, 0, len(summary.Choices))
	seen := make(map[string]struct{}, len(field.Choices))
	for _, choice := range field.Choices {
		seen[choice.Slug] = struct{}{}
		bars = append(bars, ChartBar{Slug: choice.Slug, Label: field.ChoiceTitle(choice.Slug), Count: summary.Choices[choice.Slug]})
	}
	for _, slug := range sortedKeys(summary.Choices) {
		if _, ok := seen[slug]; ok {
			continue
		}
		bars = append(bars, ChartBar{Slug: slug, Label: slug, Count: summary.Choices[slug]})
	}
	return bars
}

// RenderOptionChart renders the option summary of field as chart HTML.
func (r *ChartRenderer) RenderOptionChart(field Field, summary OptionFieldSummary) (string, error) {
	bars := OptionBars(field, summary)
	if len(bars) == 0 {
		return "", nil
	}
	render := func() (string, error) {
		return r.renderBar(field, bars)
	}
	if r.cache == nil {
		return render()
	}
	key := fmt.Sprintf("%s:%s:%s", field.Slug, r.theme, contentHash(bars))
	return r.cache.GetOrRender(key, render)
}

func (r *ChartRenderer) renderBar(field Field, bars []ChartBar) (string, error) {
	labels := make([]string, len(bars))
	data := make([]opts.BarData, len(bars))
	for i, bar := range bars {
		labels[i] = bar.Label
		data[i] = opts.BarData{Name: bar.Label, Value: bar.Count}
	}

	chart := charts.NewBar()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:      r.theme,
			Width:      "100%",
			Height:     defaultChartHeight,
			AssetsHost: r.assetsHost,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	chart.SetXAxis(labels)
	chart.AddSeries(field.Slug, data)

	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		return "", fmt.Errorf("surveys: render chart %s: %w", field.Slug, err)
	}
	return buf.String(), nil
}
