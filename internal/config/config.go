package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/update-bundler/internal/domain/bundle"
	"github.com/oshokin/update-bundler/internal/installer"
	"github.com/oshokin/update-bundler/internal/logger"
)

// Config holds the settings of a packaging run.
type Config struct {
	// Target is the build target triple; empty means the host OS.
	Target string `yaml:"target,omitempty"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level,omitempty"`
	// Windows holds Windows installer settings.
	Windows bundle.WindowsSettings `yaml:"windows"`
	// Installers maps a Windows installer family to its rebuild command.
	Installers map[bundle.PackageType]installer.Command `yaml:"installers,omitempty"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "update-bundler-settings.yaml"

	// DefaultLogLevel is used when LogLevel is empty.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the permission of saved settings.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errInvalidLogLevel is returned for unknown log levels.
	errInvalidLogLevel = errors.New("invalid log level")
	// errNotAnInstaller is returned when a rebuild command targets a non-Windows package type.
	errNotAnInstaller = errors.New("rebuild commands are only supported for Windows installers")
	// errCommandPathRequired is returned when a rebuild command has no executable.
	errCommandPathRequired = errors.New("rebuild command path must be provided")
)

// Default returns the settings used when no file exists.
func Default() *Config {
	cfg := new(Config)
	_ = Validate(cfg) //nolint:errcheck // Zero settings are always valid.

	return cfg
}

// Load reads settings from path and validates them.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err = yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err = os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks settings and fills defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.LogLevel)
	}

	if cfg.Windows.WebviewInstallMode.Type == "" {
		cfg.Windows.WebviewInstallMode.Type = bundle.WebviewDownloadBootstrapper
	}

	for packageType, command := range cfg.Installers {
		if !packageType.IsWindowsInstaller() {
			return fmt.Errorf("%w: %s", errNotAnInstaller, packageType)
		}

		if command.Path == "" {
			return fmt.Errorf("installer %s: %w", packageType, errCommandPathRequired)
		}
	}

	return nil
}

// Settings returns the values update packaging reads.
func (c *Config) Settings() bundle.Settings {
	return bundle.Settings{
		Target:  c.Target,
		Windows: c.Windows,
	}
}
