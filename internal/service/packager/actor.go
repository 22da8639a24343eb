package packager

import (
	"fmt"
	"os"
	"os/user"

	"github.com/oshokin/update-bundler/internal/repository/manifest"
)

// detectActor gathers host and user information for the archive report.
func detectActor() (*manifest.Actor, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}

	currentUser, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	return &manifest.Actor{
		Hostname: hostname,
		Username: currentUser.Username,
	}, nil
}
