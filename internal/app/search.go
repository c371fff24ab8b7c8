package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/ayalane/mdshelf/internal/config"
)

// RunSearchWithFlags performs a one-shot CLI search: settings are
// resolved from flags/env, the store is queried once, and matching
// articles are printed to out as "name\turl" lines.
func RunSearchWithFlags(ctx context.Context, flags *pflag.FlagSet, query string, out io.Writer) error {
	settings, err := config.LoadSettingsWithFlags(flags)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if err := config.ValidateSettings(settings); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Results go to stdout, diagnostics to stderr
	handler := slog.NewTextHandler(os.Stderr, nil)
	slog.SetDefault(slog.New(handler))

	return RunSearch(ctx, settings, query, out)
}

// RunSearch executes one search against the configured store and writes
// the results. No partial output is produced on failure.
func RunSearch(ctx context.Context, settings *config.Settings, query string, out io.Writer) error {
	searcher, err := NewSearcher(ctx, settings)
	if err != nil {
		return err
	}

	matches, err := searcher.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(matches) == 0 {
		_, err := fmt.Fprintf(out, "No articles found for %q\n", query)
		return err
	}

	for _, m := range matches {
		if _, err := fmt.Fprintf(out, "%s\t%s\n", m.Name, m.URL); err != nil {
			return err
		}
	}
	return nil
}
