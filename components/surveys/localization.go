package surveys

import (
	"context"
	"fmt"
	"strings"
)

// TranslationService exposes locale-aware translation helpers. The embedded
// Catalog is the default implementation; applications can plug a CMS-backed
// service as long as it honors the same keys.
type TranslationService interface {
	Translate(ctx context.Context, key, locale string, args map[string]any) (string, error)
}

// ResolveLocalizedValue selects the best translation for the provided locale and falls back to the supplied value.
// Keys are matched case-insensitively, and language-region pairs (`fi-fi`) automatically fall back to their
// base language (`fi`) when present.
func ResolveLocalizedValue(values map[string]string, locale, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	for _, candidate := range localeCandidates(locale) {
		for key, value := range values {
			if strings.EqualFold(key, candidate) && value != "" {
				return value
			}
		}
	}
	return fallback
}

// Messages binds a translation service to one request locale.
type Messages struct {
	ctx    context.Context
	svc    TranslationService
	locale string
}

// NewMessages builds a Messages helper. A nil service returns keys verbatim.
func NewMessages(ctx context.Context, svc TranslationService, locale string) Messages {
	if ctx == nil {
		ctx = context.Background()
	}
	return Messages{ctx: ctx, svc: svc, locale: normalizeLocale(locale)}
}

// Locale returns the normalized locale.
func (m Messages) Locale() string {
	return m.locale
}

// Get translates key without arguments.
func (m Messages) Get(key string) string {
	return translateOrFallback(m.ctx, m.svc, key, m.locale, "", nil)
}

// Format translates key, interpolating args.
func (m Messages) Format(key string, args map[string]any) string {
	return translateOrFallback(m.ctx, m.svc, key, m.locale, "", args)
}

func localeCandidates(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return []string{"default"}
	}
	candidates := []string{locale}
	if idx := strings.IndexAny(locale, "-_"); idx > 0 {
		candidates = append(candidates, locale[:idx])
	}
	return append(candidates, "default")
}

func normalizeLocale(locale string) string {
	return strings.TrimSpace(strings.ToLower(locale))
}

func translateOrFallback(ctx context.Context, svc TranslationService, key, locale, fallback string, params map[string]any) string {
	if svc != nil {
		if translated, err := svc.Translate(ctx, key, locale, params); err == nil && translated != "" {
			return translated
		}
	}
	if fallback != "" {
		return interpolate(fallback, params)
	}
	return key
}

// interpolate replaces {name} placeholders with fmt.Sprint(args[name]).
func interpolate(message string, args map[string]any) string {
	if len(args) == 0 || !strings.Contains(message, "{") {
		return message
	}
	pairs := make([]string, 0, len(args)*2)
	for name, value := range args {
		pairs = append(pairs, "{"+name+"}", fmt.Sprint(value))
	}
	return strings.NewReplacer(pairs...).Replace(message)
}
