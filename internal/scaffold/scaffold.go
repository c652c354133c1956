package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/roster-dev/roster/internal/manifest"
	"github.com/roster-dev/roster/internal/registry"
)

//go:embed templates
var templateFS embed.FS

// NewEntityVersion is the starting version for scaffolded entities.
const NewEntityVersion = "0.1.0"

// entityData holds the variables available to entity templates.
type entityData struct {
	Name    string
	Version string
}

// InitRegistry creates the registry skeleton at dir: the default manifest and
// the empty entity directories. It refuses to touch a registry that already
// has a manifest. The returned paths are relative to dir.
func InitRegistry(dir string) ([]string, error) {
	if path, err := manifest.Find(dir); err == nil {
		return nil, fmt.Errorf("registry already initialized: %s exists", path)
	}

	var created []string
	for _, sub := range []string{registry.SkillsDir, registry.AgentsDir, registry.CommandsDir, registry.BundlesDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", sub, err)
		}
		created = append(created, sub+string(os.PathSeparator))
	}

	data, err := templateFS.ReadFile("templates/manifest.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading manifest template: %w", err)
	}
	name := manifest.FileNames[0]
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", name, err)
	}
	return append(created, name), nil
}

// NewEntity writes a frontmatter template for the kind at its conventional
// path under dir, refusing to clobber an existing file. It returns the
// written path relative to dir.
func NewEntity(dir string, kind manifest.Kind, name string) (string, error) {
	var relPath string
	switch kind {
	case manifest.KindSkill:
		relPath = filepath.Join(registry.SkillsDir, name, registry.SkillFileName)
	case manifest.KindAgent:
		relPath = filepath.Join(registry.AgentsDir, name+".md")
	case manifest.KindCommand:
		relPath = filepath.Join(registry.CommandsDir, name+".md")
	default:
		return "", fmt.Errorf("unknown entity kind %v", kind)
	}

	path := filepath.Join(dir, relPath)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s %q already exists at %s", kind, name, relPath)
	}

	content, err := render(kind.String()+".md.tmpl", entityData{Name: name, Version: NewEntityVersion})
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating directory for %s: %w", relPath, err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", relPath, err)
	}
	return relPath, nil
}

func render(name string, data entityData) ([]byte, error) {
	raw, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", name, err)
	}
	tmpl, err := template.New(name).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
