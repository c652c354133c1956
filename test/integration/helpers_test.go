//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupRegistry creates an isolated registry directory with a manifest and
// entity sources, and points ROSTER_DIR at it so the run is sandboxed.
func setupRegistry(t *testing.T, manifest string) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("ROSTER_DIR", dir)
	t.Setenv("HOME", t.TempDir()) // keep ~/.roster/config.yaml out of the picture

	writeFile(t, filepath.Join(dir, "manifest.yaml"), manifest)
	return dir
}

// writeSkill creates skills/<name>/SKILL.md under the registry directory.
func writeSkill(t *testing.T, dir, name, content string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, "skills", name, "SKILL.md"), content)
}

// writeAgent creates agents/<name>.md under the registry directory.
func writeAgent(t *testing.T, dir, name, content string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, "agents", name+".md"), content)
}

// writeCommand creates commands/<name>.md under the registry directory.
func writeCommand(t *testing.T, dir, name, content string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, "commands", name+".md"), content)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
