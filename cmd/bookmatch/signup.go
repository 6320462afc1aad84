package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSignupCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "signup <username>",
		Short: "Register a new user",
		Long:  "Register a new user. The password is read from the terminal, or from stdin when it is redirected.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := opts.openLibrary()
			if err != nil {
				return err
			}

			password, err := readNewPassword(cmd, opts)
			if err != nil {
				return err
			}

			user, err := lib.Signup(cmd.Context(), args[0], password)
			if err != nil {
				return fmt.Errorf("failed to register user: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "User %s registered successfully!\n", user.Username)
			return nil
		},
	}
}
