// Package cli contains the sitesearch commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hypergopher/sitesearch/config"
)

const defaultConfigFile = "sitesearch.toml"

type app struct {
	cfgFile string
	verbose bool
	cfg     *config.Config
	logger  *slog.Logger
}

// NewRootCommand builds the sitesearch command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "sitesearch",
		Short: "Search index and post filters for static sites",
		Long: `sitesearch builds the /index.json search index of a markdown site,
queries it the way the site's search box does, filters rendered post
listings by month and tag, and serves a local preview.

Example usage:
  sitesearch build                        # Write public/index.json
  sitesearch search "go channels"         # Query the built index
  sitesearch filter public/posts/index.html --tag go
  sitesearch tags                         # Tag vocabulary with counts
  sitesearch serve                        # Preview on 127.0.0.1:1414`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", defaultConfigFile, "config file path (.toml, .yaml or .yml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		a.newBuildCommand(),
		a.newSearchCommand(),
		a.newFilterCommand(),
		a.newTagsCommand(),
		a.newServeCommand(),
	)

	return rootCmd
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) initConfig() error {
	logLevel := slog.LevelInfo
	if a.verbose {
		logLevel = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	a.logger.Debug("configuration loaded",
		"content_dir", cfg.Site.ContentDir,
		"output_dir", cfg.Site.OutputDir,
		"data_dir", cfg.Site.DataDir,
	)

	return nil
}
