package cli

import (
	"fmt"
	"os"

	"github.com/roster-dev/roster/internal/branding"
	"github.com/roster-dev/roster/internal/config"
	"github.com/roster-dev/roster/internal/registry"
)

// resolveRegistryDir locates the registry directory for the current run.
// Lookup order: --dir flag, ROSTER_DIR env, user config, then upward search
// from the working directory.
func resolveRegistryDir() (string, error) {
	if flagDir != "" {
		return checkRegistryDir(flagDir)
	}
	if env := os.Getenv(branding.EnvVar("DIR")); env != "" {
		return checkRegistryDir(env)
	}

	config.Load()
	if configured := config.Get(config.KeyRegistryDir); configured != "" {
		return checkRegistryDir(configured)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return registry.FindUp(cwd)
}

func checkRegistryDir(dir string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("registry directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("registry path %s is not a directory", dir)
	}
	return dir, nil
}
