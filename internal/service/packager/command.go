package packager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/oshokin/update-bundler/internal/config"
	"github.com/oshokin/update-bundler/internal/installer"
	"github.com/oshokin/update-bundler/internal/logger"
	"github.com/oshokin/update-bundler/internal/repository/manifest"
	"github.com/oshokin/update-bundler/internal/service/bundler"
)

// Options contains inputs for the packaging entry point.
type Options struct {
	// ConfigPath is the settings file; a missing default file means default settings.
	ConfigPath string
	// ManifestPath is the YAML list of bundles produced by the packaging stage.
	ManifestPath string
	// Target overrides the target triple of the settings.
	Target string
	// LogLevel overrides the log level of the settings.
	LogLevel string
	// ReportPath is where the archive list is written; empty disables the report.
	ReportPath string
	// Output receives one archive path per line; nil means stdout.
	Output io.Writer
}

var errManifestRequired = errors.New("bundle manifest path must be provided")

// Run packages the bundles listed in the manifest into update archives.
func Run(ctx context.Context, opts *Options) error {
	// Name the logger after the command for every message below.
	ctx = logger.WithName(ctx, "update-bundler")

	if opts.ManifestPath == "" {
		return errManifestRequired
	}

	cfg, err := loadConfig(ctx, opts)
	if err != nil {
		return err
	}

	// Bundles come from the packaging stage that ran before us.
	bundles, err := manifest.Load(ctx, opts.ManifestPath)
	if err != nil {
		return err
	}

	logger.DebugKV(ctx, "Loaded bundle manifest", "path", opts.ManifestPath, "bundles", len(bundles))

	logger.Info(ctx, "Packaging update archives")

	settings := cfg.Settings()
	b := bundler.New(installer.NewCommandRebuilder(cfg.Installers))

	archives, err := b.Package(ctx, settings, bundles)
	if err != nil {
		return fmt.Errorf("package update archives: %w", err)
	}

	// Stdout carries only archive paths so the next stage can read them.
	if err = printArchives(opts.Output, archives); err != nil {
		return err
	}

	if opts.ReportPath != "" {
		report := &manifest.Report{Target: settings.Target, Archives: archives}

		// Best effort.
		if report.BuiltBy, err = detectActor(); err != nil {
			logger.DebugKV(ctx, "Unable to detect build host", "error", err)
		}

		if err = manifest.SaveReport(ctx, opts.ReportPath, report); err != nil {
			return err
		}

		logger.InfoKV(ctx, "Saved update archive report", "path", opts.ReportPath)
	}

	logger.InfoKV(ctx, "Update packaging finished", "archives", len(archives))

	return nil
}

// loadConfig reads the settings, falls back to defaults when the default file
// is absent and applies command-line overrides.
func loadConfig(ctx context.Context, opts *Options) (*config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultConfigFilename
	}

	cfg, err := config.Load(path)

	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist) && path == config.DefaultConfigFilename:
		logger.DebugKV(ctx, "Settings file not found, using defaults", "path", path)

		cfg = config.Default()
	default:
		return nil, err
	}

	// Flags win over the settings file.
	if opts.Target != "" {
		cfg.Target = opts.Target
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	if err = config.Validate(cfg); err != nil {
		return nil, err
	}

	level, _ := logger.ParseLogLevel(cfg.LogLevel)
	logger.SetLevel(level)

	return cfg, nil
}

func printArchives(w io.Writer, archives []string) error {
	if w == nil {
		w = os.Stdout
	}

	for _, a := range archives {
		if _, err := fmt.Fprintln(w, a); err != nil {
			return fmt.Errorf("print archive path: %w", err)
		}
	}

	return nil
}
