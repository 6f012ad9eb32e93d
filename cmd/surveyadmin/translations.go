package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/goliatone/go-survey-admin/pkg/config"
)

type translationsCmd struct {
	Check translationsCheckCmd `cmd:"" help:"Report keys missing from any locale."`
}

type translationsCheckCmd struct {
	Dir string `type:"path" help:"Directory of <locale>.yaml overrides layered over the embedded catalogs."`
}

func (cmd *translationsCheckCmd) Run() error {
	cfg := config.Default()
	cfg.Translations = cmd.Dir
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	return reportMissing(os.Stdout, catalog.Locales(), catalog.MissingKeys())
}

func reportMissing(w io.Writer, locales []string, missing map[string][]string) error {
	if len(missing) == 0 {
		fmt.Fprintf(w, "✓ %d locales, no missing keys\n", len(locales))
		return nil
	}
	names := make([]string, 0, len(missing))
	total := 0
	for locale, keys := range missing {
		names = append(names, locale)
		total += len(keys)
	}
	sort.Strings(names)
	for _, locale := range names {
		for _, key := range missing[locale] {
			fmt.Fprintf(w, "%s: %s\n", locale, key)
		}
	}
	return fmt.Errorf("surveyadmin: %d missing translation keys", total)
}
