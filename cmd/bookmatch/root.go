package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bookmatch/bookmatch/internal/config"
	"github.com/bookmatch/bookmatch/internal/database"
	"github.com/bookmatch/bookmatch/internal/logging"
	"github.com/bookmatch/bookmatch/internal/usecase"
)

// rootOptions holds the global flags and the state shared by subcommands.
type rootOptions struct {
	dataDir    string
	configPath string
	logLevel   string

	settings *config.Settings
	in       *bufio.Reader
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "bookmatch",
		Short:         "bookmatch - an offline book catalog and recommender",
		Long:          "bookmatch keeps a local book catalog, finds titles by approximate match and recommends books from your view history.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return opts.load()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Directory holding books.json, users.json and history.json")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Settings file (default $XDG_CONFIG_HOME/bookmatch/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: trace, debug, info, warn or error")

	cmd.AddCommand(newSignupCmd(opts))
	cmd.AddCommand(newLoginCmd(opts))
	cmd.AddCommand(newBookCmd(opts))
	cmd.AddCommand(newInfoCmd(opts))
	cmd.AddCommand(newSearchCmd(opts))
	cmd.AddCommand(newHistoryCmd(opts))
	cmd.AddCommand(newRecommendCmd(opts))
	cmd.AddCommand(newImportCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))

	return cmd
}

// load reads settings, applies flag overrides and configures logging.
func (o *rootOptions) load() error {
	settings, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.dataDir != "" {
		settings.DataDir = o.dataDir
	}
	if o.logLevel != "" {
		settings.Log.Level = o.logLevel
	}

	logging.Init(logging.Config{
		Level:  settings.Log.Level,
		Format: settings.Log.Format,
	})
	logging.Debug().Str("data_dir", settings.DataDir).Msg("settings loaded")

	o.settings = settings
	return nil
}

func (o *rootOptions) openDatabase() (*database.Context, error) {
	if o.settings == nil {
		if err := o.load(); err != nil {
			return nil, err
		}
	}
	dbCtx, err := database.OpenDatabase(o.settings.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}
	return dbCtx, nil
}

func (o *rootOptions) openLibrary() (*usecase.Library, error) {
	dbCtx, err := o.openDatabase()
	if err != nil {
		return nil, err
	}
	return usecase.NewLibrary(dbCtx, o.settings)
}

// reader returns the buffered stdin shared by every prompt of one command.
func (o *rootOptions) reader(cmd *cobra.Command) *bufio.Reader {
	if o.in == nil {
		o.in = bufio.NewReader(cmd.InOrStdin())
	}
	return o.in
}
