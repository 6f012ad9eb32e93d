package surveys

import (
	"net/url"
	"strings"
)

// ReservedFilterKey is a query parameter that never becomes a dimension filter.
const ReservedFilterKey = "from"

// DimensionFilter restricts a summary to responses tagged with any of Values.
type DimensionFilter struct {
	Dimension string   `json:"dimension"`
	Values    []string `json:"values"`
}

// BuildDimensionFilters turns summary page query parameters into filters,
// ordered by dimension slug. Values are comma separated and may repeat; empty
// tokens are ignored and a key without any token yields no filter.
func BuildDimensionFilters(params url.Values) []DimensionFilter {
	filters := make([]DimensionFilter, 0, len(params))
	for _, key := range sortedKeys(params) {
		dimension := strings.TrimSpace(key)
		if dimension == "" || dimension == ReservedFilterKey {
			continue
		}
		var values []string
		for _, raw := range params[key] {
			for _, token := range strings.Split(raw, ",") {
				if token = strings.TrimSpace(token); token != "" {
					values = append(values, token)
				}
			}
		}
		if len(values) == 0 {
			continue
		}
		filters = append(filters, DimensionFilter{Dimension: dimension, Values: values})
	}
	return filters
}

// FilterBar is the dimension filter UI of the summary page.
type FilterBar struct {
	Heading    string
	Dimensions []FilterDimension
}

// FilterDimension is one dimension selector.
type FilterDimension struct {
	Slug     string
	Title    string
	AllLabel string
	AllURL   string
	Active   bool
	Options  []FilterOption
}

// FilterOption is one selectable value; URL applies it.
type FilterOption struct {
	Slug     string
	Title    string
	URL      string
	Selected bool
}

// BuildFilterBar lists the survey dimensions with links that replace the
// selection of one dimension while keeping the others.
func BuildFilterBar(messages Messages, pagePath string, dimensions []Dimension, filters []DimensionFilter) FilterBar {
	active := make(map[string]map[string]struct{}, len(filters))
	for _, filter := range filters {
		selected := make(map[string]struct{}, len(filter.Values))
		for _, value := range filter.Values {
			selected[value] = struct{}{}
		}
		active[filter.Dimension] = selected
	}

	bar := FilterBar{
		Heading:    messages.Get("survey.filters.heading"),
		Dimensions: make([]FilterDimension, 0, len(dimensions)),
	}
	for _, dimension := range dimensions {
		selected := active[dimension.Slug]
		item := FilterDimension{
			Slug:     dimension.Slug,
			Title:    dimension.DisplayTitle(),
			AllLabel: messages.Get("survey.filters.all"),
			AllURL:   filterURL(pagePath, filters, dimension.Slug, ""),
			Active:   len(selected) > 0,
			Options:  make([]FilterOption, 0, len(dimension.Values)),
		}
		for _, value := range dimension.Values {
			_, isSelected := selected[value.Slug]
			item.Options = append(item.Options, FilterOption{
				Slug:     value.Slug,
				Title:    value.DisplayTitle(),
				URL:      filterURL(pagePath, filters, dimension.Slug, value.Slug),
				Selected: isSelected,
			})
		}
		bar.Dimensions = append(bar.Dimensions, item)
	}
	return bar
}

// filterURL builds pagePath with filters, replacing the selection of
// dimension by value. An empty value clears the dimension.
func filterURL(pagePath string, filters []DimensionFilter, dimension, value string) string {
	query := url.Values{}
	for _, filter := range filters {
		if filter.Dimension == dimension {
			continue
		}
		query.Set(filter.Dimension, strings.Join(filter.Values, ","))
	}
	if value != "" {
		query.Set(dimension, value)
	}
	if len(query) == 0 {
		return pagePath
	}
	return pagePath + "?" + query.Encode()
}

// FilterQuery encodes filters back into query parameters.
func FilterQuery(filters []DimensionFilter) url.Values {
	query := url.Values{}
	for _, filter := range filters {
		query.Set(filter.Dimension, strings.Join(filter.Values, ","))
	}
	return query
}
