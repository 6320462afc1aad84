package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bookmatch/bookmatch/internal/application"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	var (
		overwrite bool
		format    string
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Merge a books document into the catalog",
		Long: `Merge a books document into the catalog.

The file uses the books.json layout, such as the output of the catalog
scraper. Books already in the catalog are kept unless --overwrite is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			dbCtx, err := opts.openDatabase()
			if err != nil {
				return err
			}

			result, err := application.ImportCatalog(cmd.Context(), dbCtx, application.ImportInput{
				Path:      args[0],
				Overwrite: overwrite,
			})
			if err != nil {
				return fmt.Errorf("failed to import: %w", err)
			}

			out := cmd.OutOrStdout()
			if format == formatJSON {
				return outputJSON(out, result)
			}

			fmt.Fprintf(out, "Added:   %d\n", result.Added)
			fmt.Fprintf(out, "Updated: %d\n", result.Updated)
			fmt.Fprintf(out, "Skipped: %d\n", result.Skipped)
			if len(result.Invalid) > 0 {
				fmt.Fprintf(out, "Invalid: %d\n", len(result.Invalid))
				for _, isbn := range result.Invalid {
					fmt.Fprintf(out, "  %s\n", isbn)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace books that are already in the catalog")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format (table, json)")

	return cmd
}
