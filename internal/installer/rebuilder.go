package installer

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/oshokin/update-bundler/internal/domain/bundle"
	"github.com/oshokin/update-bundler/internal/logger"
)

// Environment passed to rebuild commands.
const (
	EnvTarget        = "UPDATE_BUNDLER_TARGET"
	EnvPackageType   = "UPDATE_BUNDLER_PACKAGE_TYPE"
	EnvOutputFolder  = "UPDATE_BUNDLER_OUTPUT_FOLDER"
	EnvWebviewMode   = "UPDATE_BUNDLER_WEBVIEW_INSTALL_MODE"
	EnvUpdaterBundle = "UPDATE_BUNDLER_UPDATER"
)

var errEmptyCommand = errors.New("rebuild command has no executable")

// Command is an external toolchain invocation.
type Command struct {
	// Path is the executable, looked up in PATH when relative.
	Path string `yaml:"path"`
	// Args are passed verbatim.
	Args []string `yaml:"args,omitempty"`
	// Dir is the working directory; empty means the current one.
	Dir string `yaml:"dir,omitempty"`
}

// CommandRebuilder runs one configured Command per installer family.
type CommandRebuilder struct {
	commands map[bundle.PackageType]Command
}

// NewCommandRebuilder creates a rebuilder from family commands.
func NewCommandRebuilder(commands map[bundle.PackageType]Command) *CommandRebuilder {
	return &CommandRebuilder{commands: commands}
}

// Rebuild builds family again into its updater folder and returns the produced paths.
// A family without a configured command is skipped and yields no paths.
func (r *CommandRebuilder) Rebuild(ctx context.Context, settings bundle.Settings, family bundle.InstallerFamily) ([]string, error) {
	command, ok := r.commands[family.PackageType]
	if !ok {
		logger.WarnKV(ctx, "No rebuild command configured, skipping", "package_type", family.PackageType)
		return nil, nil
	}

	if command.Path == "" {
		return nil, fmt.Errorf("%s: %w", family.PackageType, errEmptyCommand)
	}

	//nolint:gosec // The command comes from the operator's own settings file.
	cmd := exec.CommandContext(ctx, command.Path, command.Args...)
	cmd.Dir = command.Dir
	cmd.Env = append(os.Environ(),
		EnvTarget+"="+settings.Target,
		EnvPackageType+"="+string(family.PackageType),
		EnvOutputFolder+"="+family.UpdaterFolder,
		EnvWebviewMode+"="+string(settings.Windows.WebviewInstallMode.Type),
		EnvUpdaterBundle+"=1",
	)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.InfoKV(ctx, "Rebuilding installer for updater", "package_type", family.PackageType, "command", command.Path)

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rebuild %s installer: %w: %s", family.PackageType, err, strings.TrimSpace(stderr.String()))
	}

	paths, err := parsePaths(&stdout, command.Dir)
	if err != nil {
		return nil, err
	}

	logger.Debugf(ctx, "Rebuild of %s produced %d installer(s)", family.PackageType, len(paths))

	return paths, nil
}

// parsePaths returns the non-empty trimmed lines of out.
// Relative lines are resolved against dir, the toolchain's working directory.
func parsePaths(out *bytes.Buffer, dir string) ([]string, error) {
	var paths []string

	scanner := bufio.NewScanner(out)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if dir != "" && !filepath.IsAbs(line) {
			line = filepath.Join(dir, line)
		}

		paths = append(paths, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read rebuild output: %w", err)
	}

	return paths, nil
}
