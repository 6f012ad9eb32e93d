package surveys

import (
	"fmt"
	"strconv"
	"strings"
)

// translucentAlpha keeps tinted cells legible behind dark text.
const translucentAlpha = 0.2

// MakeColorTranslucent derives a translucent rgba() background from a stored
// value color. It never returns the input verbatim; colors it cannot parse
// yield "" so the cell renders untinted.
func MakeColorTranslucent(color string) string {
	r, g, b, ok := parseColor(color)
	if !ok {
		return ""
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(translucentAlpha, 'f', -1, 64))
}

func parseColor(color string) (r, g, b uint8, ok bool) {
	color = strings.TrimSpace(strings.ToLower(color))
	switch {
	case strings.HasPrefix(color, "#"):
		return parseHexColor(color[1:])
	case strings.HasPrefix(color, "rgb(") && strings.HasSuffix(color, ")"):
		return parseRGBFunc(color[len("rgb(") : len(color)-1])
	}
	return 0, 0, 0, false
}

func parseHexColor(hex string) (r, g, b uint8, ok bool) {
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	case 8:
		// alpha channel is replaced by translucentAlpha
		hex = hex[:6]
	default:
		return 0, 0, 0, false
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(value >> 16), uint8(value >> 8), uint8(value), true
}

func parseRGBFunc(body string) (r, g, b uint8, ok bool) {
	parts := strings.Split(body, ",")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	var channels [3]uint8
	for i, part := range parts {
		value, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			return 0, 0, 0, false
		}
		channels[i] = uint8(value)
	}
	return channels[0], channels[1], channels[2], true
}
