package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var (
		username string
		format   string
		clearAll bool
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the books a user has viewed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			lib, err := opts.openLibrary()
			if err != nil {
				return err
			}
			if err := lib.RequireUser(username); err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if clearAll {
				if !force {
					ok, err := confirm(cmd, opts, fmt.Sprintf("Clear the history of %s?", username))
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(out, "Cancelled")
						return nil
					}
				}
				if err := lib.ClearHistory(cmd.Context(), username); err != nil {
					return err
				}
				fmt.Fprintln(out, "History cleared.")
				return nil
			}

			items, err := lib.History(username)
			if err != nil {
				return err
			}
			if format == formatJSON {
				return outputJSON(out, items)
			}
			renderHistory(out, items)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&username, "user", "u", "", "User whose history to show (required)")
	_ = cmd.MarkPersistentFlagRequired("user")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format (table, json)")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Remove every entry")
	cmd.Flags().BoolVar(&force, "force", false, "Clear without confirmation")

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <isbn>",
		Short: "Remove a book from the history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := opts.openLibrary()
			if err != nil {
				return err
			}

			removed, err := lib.RemoveFromHistory(cmd.Context(), username, args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("%s is not in the history of %s", args[0], username)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from the history\n", args[0])
			return nil
		},
	})

	return cmd
}
