package usecase

import (
	"fmt"

	"github.com/bookmatch/bookmatch/internal/config"
	"github.com/bookmatch/bookmatch/internal/recommend"
	"github.com/bookmatch/bookmatch/internal/search"
)

// SearchOptions carries CLI/MCP-level overrides. Nil fields use the configured
// defaults.
type SearchOptions struct {
	Limit     *int
	Threshold *float64
}

// ResolveSearchOptions merges overrides with defaults and validates the result.
func ResolveSearchOptions(opts SearchOptions, defaults config.SearchSettings) (search.Options, error) {
	resolved := search.Options{Limit: defaults.Limit, Threshold: defaults.Threshold}
	if opts.Limit != nil {
		resolved.Limit = *opts.Limit
	}
	if opts.Threshold != nil {
		resolved.Threshold = *opts.Threshold
	}

	if resolved.Limit < 0 {
		return search.Options{}, fmt.Errorf("limit must not be negative: %d", resolved.Limit)
	}
	if resolved.Threshold < 0 || resolved.Threshold >= 1 {
		return search.Options{}, fmt.Errorf("threshold must be in [0, 1): %g", resolved.Threshold)
	}
	return resolved, nil
}

// ResolveRecommendOptions converts configured settings into engine options.
func ResolveRecommendOptions(settings config.RecommendSettings) recommend.Options {
	return recommend.Options{Count: settings.Count, Window: settings.Window}
}
