package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/getver/internal/config"
	"github.com/oshokin/getver/internal/service/query"
	"github.com/oshokin/getver/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// referencePath is where the checkout search starts.
	referencePath string
	// includeHead appends the checkout-derived version.
	includeHead bool
	// extractor selects the tag extractor backend.
	extractor string
	// remote is the getver-server address to query instead of resolving locally.
	remote string
	// logLevel overrides the configured log level.
	logLevel string

	// rootCmd represents the base command for resolving a version.
	rootCmd = &cobra.Command{
		Use:   "getver [package]",
		Short: "Print the version of a Go module.",
		Long: `Prints the version of a Go module as recorded in the build of this binary.

The package defaults to the one named in the configuration file, then to getver itself.
A module missing from the build prints <none!?>.

With --head, the nearest git checkout above the reference path is described
(nearest tag, commits since, abbreviated hash) and appended in parentheses.
A .git marker that is not a usable checkout prints <none?!> instead.
Without git installed, the suffix is silently left out.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &query.Options{
				ConfigPath:    configPath,
				ReferencePath: referencePath,
				Extractor:     extractor,
				Remote:        remote,
				LogLevel:      logLevel,
			}

			if len(args) > 0 {
				options.Package = args[0]
			}

			// Only an explicit flag overrides the configured head setting.
			if cmd.Flags().Changed("head") {
				options.IncludeHead = &includeHead
			}

			return query.Run(ctx, options, cmd.OutOrStdout())
		},
	}
)

// Execute runs the getver CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&referencePath, "reference-path", "r", "", "where to start searching for a git checkout")
	rootCmd.Flags().BoolVarP(&includeHead, "head", "H", false, "append the version described by the git checkout")
	rootCmd.Flags().StringVarP(&extractor, "extractor", "e", "", "tag extractor backend: git or go-git")
	rootCmd.Flags().StringVarP(&remote, "remote", "R", "", "ask the getver-server at this address instead")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "log level: debug, info, warn, error")
}
