package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bookmatch/bookmatch/internal/services"
	"github.com/bookmatch/bookmatch/internal/usecase"
)

const maxLoginAttempts = 3

func newLoginCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and show recommendations",
		Long: `Log in as username and show recommendations from the view history.

A username that is not registered yet is offered a signup instead. A wrong
password is asked again up to three times.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := opts.openLibrary()
			if err != nil {
				return err
			}

			username := strings.TrimSpace(args[0])
			out := cmd.OutOrStdout()

			if lib.UserExists(username) {
				if err := authenticate(cmd, opts, lib, username); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s, you are not registered yet.\n", username)
				password, err := readNewPassword(cmd, opts)
				if err != nil {
					return err
				}
				if _, err := lib.Signup(cmd.Context(), username, password); err != nil {
					return fmt.Errorf("failed to register user: %w", err)
				}
				fmt.Fprintln(out, "User registered successfully!")
			}

			fmt.Fprintf(out, "Welcome, %s!\n", username)

			result, err := lib.Recommend(username)
			if err != nil {
				return err
			}
			renderRecommendations(out, result)
			return nil
		},
	}
}

func authenticate(cmd *cobra.Command, opts *rootOptions, lib *usecase.Library, username string) error {
	for attempt := 1; ; attempt++ {
		password, err := readPassword(cmd, opts, "Password: ")
		if err != nil {
			return err
		}

		_, err = lib.Login(cmd.Context(), username, password)
		if err == nil {
			return nil
		}
		if !errors.Is(err, services.ErrInvalidCredentials) || attempt == maxLoginAttempts {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Incorrect password, try again.")
	}
}
