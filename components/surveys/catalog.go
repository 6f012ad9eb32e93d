package surveys

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed translations/*.yaml
var embeddedTranslations embed.FS

// DefaultLocale is used when a request locale has no catalog.
const DefaultLocale = "en"

// Catalog is a YAML-backed TranslationService. Nested YAML maps are flattened
// into dotted keys (`survey.actions.add_dimension`).
type Catalog struct {
	mu            sync.RWMutex
	defaultLocale string
	messages      map[string]map[string]string
}

// NewCatalog builds an empty catalog.
func NewCatalog(defaultLocale string) *Catalog {
	if defaultLocale == "" {
		defaultLocale = DefaultLocale
	}
	return &Catalog{
		defaultLocale: normalizeLocale(defaultLocale),
		messages:      map[string]map[string]string{},
	}
}

// DefaultCatalog loads the embedded en/fi catalogs.
func DefaultCatalog() (*Catalog, error) {
	catalog := NewCatalog(DefaultLocale)
	if err := catalog.LoadFS(embeddedTranslations, "translations"); err != nil {
		return nil, err
	}
	return catalog, nil
}

// LoadFS reads every `<locale>.yaml` file in dir. Later loads override earlier keys.
func (c *Catalog) LoadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("surveys: read translations %s: %w", dir, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".yaml" {
			continue
		}
		f, err := fsys.Open(path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("surveys: open translations %s: %w", name, err)
		}
		err = c.LoadLocale(strings.TrimSuffix(name, ".yaml"), f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// LoadLocale merges one YAML document into the catalog for locale.
func (c *Catalog) LoadLocale(locale string, r io.Reader) error {
	locale = normalizeLocale(locale)
	if locale == "" {
		return fmt.Errorf("surveys: translations locale is required")
	}
	var doc map[string]any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("surveys: parse translations %s: %w", locale, err)
	}
	flat := map[string]string{}
	flatten("", doc, flat)

	c.mu.Lock()
	defer c.mu.Unlock()
	existing := c.messages[locale]
	if existing == nil {
		existing = map[string]string{}
		c.messages[locale] = existing
	}
	for key, value := range flat {
		existing[key] = value
	}
	return nil
}

// SetMessage overrides one key in every loaded locale.
func (c *Catalog) SetMessage(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, messages := range c.messages {
		messages[key] = value
	}
}

// Translate implements TranslationService.
func (c *Catalog) Translate(_ context.Context, key, locale string, args map[string]any) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, candidate := range localeCandidates(locale) {
		if candidate == "default" {
			candidate = c.defaultLocale
		}
		if message, ok := c.messages[candidate][key]; ok {
			return interpolate(message, args), nil
		}
	}
	return "", fmt.Errorf("surveys: missing translation %q for locale %q", key, locale)
}

// Locales lists the loaded locales in sorted order.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	locales := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

// MissingKeys reports, per locale, keys that some other locale defines but it does not.
func (c *Catalog) MissingKeys() map[string][]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	all := map[string]struct{}{}
	for _, messages := range c.messages {
		for key := range messages {
			all[key] = struct{}{}
		}
	}
	missing := map[string][]string{}
	for locale, messages := range c.messages {
		for key := range all {
			if _, ok := messages[key]; !ok {
				missing[locale] = append(missing[locale], key)
			}
		}
		sort.Strings(missing[locale])
	}
	for locale, keys := range missing {
		if len(keys) == 0 {
			delete(missing, locale)
		}
	}
	return missing
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for key, value := range node {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch typed := value.(type) {
		case map[string]any:
			flatten(full, typed, out)
		case nil:
			continue
		default:
			out[full] = fmt.Sprint(typed)
		}
	}
}
