package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/getver/internal/config"
	"github.com/oshokin/getver/internal/service/server"
	"github.com/oshokin/getver/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// defaultPackage is resolved for requests that name no package.
	defaultPackage string
	// extractor selects the tag extractor backend.
	extractor string

	// rootCmd represents the base command for running the gRPC server.
	rootCmd = &cobra.Command{
		Use:   "getver-server [listen-address]",
		Short: "Serve version queries over gRPC.",
		Long: `Starts the getver.v1.VersionService gRPC server.

Each request names a package, an optional reference path and whether to append
the checkout-derived version; the reply is the same string getver would print.
The listen address comes from the configuration file unless given as argument
(e.g., :50151, 127.0.0.1:9090).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use listen address argument if provided, otherwise rely on config.
			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			options := &server.Options{
				ConfigPath:    configPath,
				ListenAddress: listenAddress,
				Package:       defaultPackage,
				Extractor:     extractor,
			}

			return server.Run(ctx, options)
		},
	}
)

// Execute runs the getver-server CLI and exits with non-zero status on error.
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
	rootCmd.Flags().StringVarP(&defaultPackage, "package", "p", "", "package resolved when a request names none")
	rootCmd.Flags().StringVarP(&extractor, "extractor", "e", "", "tag extractor backend: git or go-git")
}
