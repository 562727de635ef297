package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lexcloud/lexcloud/pkg/buildinfo"
)

// Execute runs the lexcloud CLI with the given base context and returns
// an error if any command fails. Cancelling the context (e.g. on
// SIGINT) aborts the running command.
//
// The function sets up the root command with all subcommands (cloud,
// compare, counts, browse, serve, cache), loads the TOML config file,
// and configures logging based on the --verbose flag.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands
// via loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)
	cfg := NewDefaultConfig()

	root := &cobra.Command{
		Use:          "lexcloud",
		Short:        "Lexcloud builds word-cloud visualizations from text corpora",
		Long:         `Lexcloud is a CLI tool for building word-cloud visualizations over literary corpora: tokenize, weigh (counts or TF-IDF), lay out, and render to SVG, PNG, PDF, JSON or HTML.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)

			path := configPath
			if path == "" {
				path = defaultConfigPath()
			}
			loaded, err := LoadConfigFromFile(path)
			if err != nil {
				return err
			}
			*cfg = *loaded
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/lexcloud/config.toml)")

	root.AddCommand(newCloudCmd(cfg))
	root.AddCommand(newCompareCmd(cfg))
	root.AddCommand(newCountsCmd(cfg))
	root.AddCommand(newBrowseCmd())
	root.AddCommand(newServeCmd(cfg))
	root.AddCommand(newCacheCmd(cfg))

	return root.ExecuteContext(ctx)
}
