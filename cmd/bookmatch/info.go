package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bookmatch/bookmatch/internal/database"
)

func newInfoCmd(opts *rootOptions) *cobra.Command {
	var (
		username string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "info <isbn>",
		Short: "Show a book and record the view",
		Long:  "Show the details of a book. With --user the view is added to that user's history.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			lib, err := opts.openLibrary()
			if err != nil {
				return err
			}
			if username != "" {
				if err := lib.RequireUser(username); err != nil {
					return err
				}
			}

			isbn := args[0]
			book, err := lib.ViewBook(cmd.Context(), username, isbn)
			if err != nil {
				if errors.Is(err, database.ErrNotFound) {
					return fmt.Errorf("book not found: %s", isbn)
				}
				return err
			}

			if format == formatJSON {
				return outputJSON(cmd.OutOrStdout(), book)
			}
			renderBook(cmd.OutOrStdout(), book)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "", "Record the view in this user's history")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format (table, json)")

	return cmd
}
