package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bookmatch/bookmatch/internal/search"
	"github.com/bookmatch/bookmatch/internal/usecase"
)

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var (
		limit     int
		threshold float64
		format    string
	)

	cmd := &cobra.Command{
		Use:   "search <title...>",
		Short: "Find books by approximate title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			lib, err := opts.openLibrary()
			if err != nil {
				return err
			}

			var searchOpts usecase.SearchOptions
			if cmd.Flags().Changed("limit") {
				searchOpts.Limit = &limit
			}
			if cmd.Flags().Changed("threshold") {
				searchOpts.Threshold = &threshold
			}

			query := strings.Join(args, " ")
			results, err := lib.Search(query, searchOpts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == formatJSON {
				return outputJSON(out, results)
			}

			switch {
			case len(lib.Books()) == 0:
				fmt.Fprintln(out, "No books in the catalog.")
			case len(results) == 0:
				fmt.Fprintf(out, "No results for '%s'.\n", query)
			default:
				renderSearchResults(out, results)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", search.DefaultLimit, "Maximum number of results, 0 for no limit")
	cmd.Flags().Float64VarP(&threshold, "threshold", "t", search.DefaultThreshold, "Minimum similarity, exclusive")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format (table, json)")

	return cmd
}
