package main

import (
	"github.com/spf13/cobra"
)

func newRecommendCmd(opts *rootOptions) *cobra.Command {
	var (
		username string
		format   string
	)

	cmd := &cobra.Command{
		Use:     "recommend",
		Aliases: []string{"home", "homepage"},
		Short:   "Recommend books from a user's history",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			lib, err := opts.openLibrary()
			if err != nil {
				return err
			}

			result, err := lib.Recommend(username)
			if err != nil {
				return err
			}

			if format == formatJSON {
				return outputJSON(cmd.OutOrStdout(), result)
			}
			renderRecommendations(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "", "User to recommend for (required)")
	_ = cmd.MarkFlagRequired("user")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format (table, json)")

	return cmd
}
