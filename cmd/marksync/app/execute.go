package app

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/marksync/cmd/marksync/cmd/migrate"
	"github.com/agentstation/marksync/cmd/marksync/cmd/rules"
	"github.com/agentstation/marksync/cmd/marksync/cmd/suggest"
	"github.com/agentstation/marksync/cmd/marksync/cmd/version"
	"github.com/agentstation/marksync/internal/cmd/output"
	"github.com/agentstation/marksync/pkg/errors"
)

// globalFlags holds the values of the persistent root flags.
type globalFlags struct {
	configFile string
	verbose    bool
	quiet      bool
	noColor    bool
	format     string
	logLevel   string
	logFile    string
	timeout    time.Duration
	lockFile   string
}

// Execute runs the marksync CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "marksync",
		Short:   "Migrate Pinboard bookmarks into Raindrop.io",
		Version: a.version,
		Long: `marksync copies Pinboard bookmarks into Raindrop.io collections.

Tags are matched against an ordered set of rules to pick the target
collection. Runs are idempotent: bookmarks already present are skipped, or
merged with --merge-tags, so an interrupted migration can simply be run
again. The suggest command applies the same rules to bookmarks already
sitting in Raindrop's Unsorted collection.

Tokens are read from PINBOARD_TOKEN and RAINDROP_TOKEN, from .env files,
or from ~/.marksync.yaml.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setupCommand(cmd, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "management", Title: "Management Commands:"})

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "config file (default is $HOME/.marksync.yaml)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	pf.StringVarP(&flags.format, "format", "o", "", "output format: table, json, yaml")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	pf.StringVar(&flags.logFile, "log-file", "", "also append JSON log lines to this file")
	pf.DurationVar(&flags.timeout, "timeout", a.config.Timeout, "HTTP timeout for each service call")
	pf.StringVar(&flags.lockFile, "lock-file", "", "run lock path (default is in the user cache directory)")

	rootCmd.SetVersionTemplate("marksync {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. It reloads the config
// when --config is given and lets explicitly set flags win.
func (a *App) setupCommand(cmd *cobra.Command, flags *globalFlags) error {
	if flags.configFile != "" {
		config, err := LoadConfigFile(flags.configFile)
		if err != nil {
			return errors.NewConfigError("config", "cannot load "+flags.configFile, err)
		}
		a.config = config
	}

	if _, err := output.ParseFormat(flags.format); err != nil {
		return errors.NewConfigError("flags", err.Error(), err)
	}
	a.config.UpdateFromFlags(flags.verbose, flags.quiet, flags.noColor, flags.format, flags.logLevel)

	changed := cmd.Flags().Changed
	if changed("log-file") {
		a.config.LogFile = flags.logFile
	}
	if changed("timeout") {
		if flags.timeout <= 0 {
			return errors.NewConfigError("flags", "--timeout must be positive", nil)
		}
		a.config.Timeout = flags.timeout
	}
	if changed("lock-file") {
		a.config.LockFile = flags.lockFile
	}
	if a.config.Format == "" {
		a.config.Format = string(output.DetectFormat(""))
	}

	a.resetLogger()
	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(migrate.NewCommand(a))
	rootCmd.AddCommand(suggest.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(rules.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(version.NewCommand(a))
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
