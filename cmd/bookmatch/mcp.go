package main

import (
	"github.com/spf13/cobra"

	"github.com/bookmatch/bookmatch/internal/mcp"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server",
		Long:  "Start the Model Context Protocol server for bookmatch. History and recommendations act on behalf of --user.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := opts.openLibrary()
			if err != nil {
				return err
			}
			if err := lib.RequireUser(username); err != nil {
				return err
			}

			server := mcp.NewServer(lib, username, version)
			return server.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "", "User the server acts for (required)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
