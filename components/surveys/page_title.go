package surveys

import "strings"

// PageTitle joins the non-empty parts with the localized separator and
// appends the application name.
func PageTitle(messages Messages, parts ...string) string {
	separator := messages.Get("common.title_separator")
	if separator == "common.title_separator" {
		separator = " – "
	}
	segments := make([]string, 0, len(parts)+1)
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			segments = append(segments, part)
		}
	}
	if appName := messages.Get("common.app_name"); appName != "common.app_name" {
		segments = append(segments, appName)
	}
	return strings.Join(segments, separator)
}
