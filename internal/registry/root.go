package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/roster-dev/roster/internal/branding"
)

// Well-known entity directories inside the registry.
const (
	SkillsDir   = "skills"
	AgentsDir   = "agents"
	CommandsDir = "commands"
	BundlesDir  = "bundles"
)

// SkillFileName is the entity file inside each skill directory.
const SkillFileName = "SKILL.md"

// FindUp walks upward from start looking for a registry directory
// (e.g. ".roster"). It returns the registry directory path itself.
func FindUp(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}

	for {
		candidate := filepath.Join(dir, branding.RegistryDir())
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s directory found from %s upward (run %q to create one)",
				branding.RegistryDir(), start, branding.CLIName()+" init")
		}
		dir = parent
	}
}
