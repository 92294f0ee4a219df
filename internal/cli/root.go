// Package cli holds the cobra commands of the slokas binary.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/mrlokans/slokas/internal/config"
	"github.com/mrlokans/slokas/internal/entrypoint"
)

// ConfigLoader builds the configuration for a command invocation.
type ConfigLoader func() *config.Config

type options struct {
	logLevel string
	jsonOut  bool
}

// NewRootCommand returns the root command. Without a subcommand it serves
// the HTTP API.
func NewRootCommand(version string, load ConfigLoader) *cobra.Command {
	if load == nil {
		load = config.NewConfig
	}
	opts := &options{}

	loadConfig := func() *config.Config {
		cfg := load()
		if opts.logLevel != "" {
			cfg.Global.LogLevel = opts.logLevel
		}
		return cfg
	}

	root := &cobra.Command{
		Use:     "slokas",
		Short:   "Daily sloka and reading tracker",
		Long:    "slokas serves Bhagavad Gita verses by chapter, rotates a daily sloka without repeats and tracks favourites and reads.",
		Version: version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return entrypoint.Run(loadConfig(), version)
		},
	}

	root.PersistentFlags().StringVarP(&opts.logLevel, "loglevel", "l", "", "Set log level. Available: debug, info, warn, error (default from LOG_LEVEL)")
	root.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "Print results as JSON")

	root.AddCommand(
		newServeCommand(version, loadConfig),
		newDailyCommand(loadConfig, opts),
		newRandomCommand(loadConfig, opts),
		newChapterCommand(loadConfig, opts),
		newFavouriteCommand(loadConfig, opts),
		newReadCommand(loadConfig, opts),
		newStatsCommand(loadConfig, opts),
		newUsernameCommand(loadConfig, opts),
	)

	return root
}

// Execute runs the root command with the environment configuration.
func Execute(version string) error {
	return NewRootCommand(version, nil).Execute()
}

// withApp builds the application for one command and closes it afterwards.
// A close failure is joined into the returned error.
func withApp(ctx context.Context, load ConfigLoader, fn func(*entrypoint.App) error) (err error) {
	app, err := entrypoint.NewApp(ctx, load())
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, app.Close())
	}()
	return fn(app)
}
