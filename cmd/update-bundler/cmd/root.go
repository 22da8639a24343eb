package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/update-bundler/internal/config"
	"github.com/oshokin/update-bundler/internal/logger"
	"github.com/oshokin/update-bundler/internal/service/packager"
	"github.com/oshokin/update-bundler/internal/version"
)

var (
	// configPath to the settings YAML file.
	configPath string
	// target overrides the target triple of the settings.
	target string
	// reportPath is where the produced archive list is written.
	reportPath string
	// logLevel overrides the log level of the settings.
	logLevel string

	// rootCmd packages produced installers into update archives.
	rootCmd = &cobra.Command{
		Use:          "update-bundler [bundles-manifest]",
		Short:        "Package built installers into self-update archives",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()
			defer logger.Sync()

			options := &packager.Options{
				ConfigPath:   configPath,
				ManifestPath: args[0],
				Target:       target,
				LogLevel:     logLevel,
				ReportPath:   reportPath,
				Output:       cmd.OutOrStdout(),
			}

			err := packager.Run(ctx, options)
			if err != nil {
				logger.ErrorKV(ctx, "Update packaging failed", "error", err)
			}

			return err
		},
	}
)

// Execute runs the update-bundler CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to settings file")
	rootCmd.Flags().StringVarP(&target, "target", "t", "", "target triple, overrides the settings file")
	rootCmd.Flags().StringVarP(&reportPath, "output", "o", "", "write the produced archive list to this YAML file")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "log level: debug, info, warn or error")
}
