// Package bundle composes per-agent context bundles from the manifest's
// dependency declarations and the skill sources on disk. Each agent gets a
// full bundle (skill bodies plus layer files) and a compact bundle (Quick
// Reference sections only). Missing skills or layer files produce warnings,
// never failures.
package bundle

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/roster-dev/roster/internal/manifest"
	"github.com/roster-dev/roster/internal/registry"
)

const quickReferenceHeading = "## Quick Reference"

// Bundle is one rendered output file, not yet written.
type Bundle struct {
	Path    string // target path, relative to the registry dir
	Content string
}

// skillContent is a skill's markdown body plus its layer files.
type skillContent struct {
	body   string
	layers map[string]string
}

// Compose renders the bundles for every agent in the document, or for one
// agent when filter is non-empty. The timestamp goes into each header, so
// callers pass a fixed clock in tests.
func Compose(doc *manifest.Document, dir, filter string, now time.Time) ([]Bundle, []string, error) {
	descriptions := skillDescriptions(doc)

	var bundles []Bundle
	var warnings []string
	matched := false

	for _, agent := range doc.Agents {
		name, ok := agent.Name()
		if !ok {
			continue
		}
		if filter != "" && name != filter {
			continue
		}
		matched = true

		deps, _, _ := agent.StringsField("depends_on_skills")
		full, compact, w := renderAgent(name, deps, descriptions, dir, now)
		warnings = append(warnings, w...)

		bundles = append(bundles,
			Bundle{Path: filepath.Join(registry.BundlesDir, name+".md"), Content: full},
			Bundle{Path: filepath.Join(registry.BundlesDir, name+"-compact.md"), Content: compact},
		)
	}

	if filter != "" && !matched {
		return nil, nil, fmt.Errorf("no agent named %q in the manifest", filter)
	}
	return bundles, warnings, nil
}

// Write stores rendered bundles under the registry directory, creating the
// bundles directory on first use.
func Write(dir string, bundles []Bundle) error {
	if len(bundles) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Join(dir, registry.BundlesDir), 0755); err != nil {
		return fmt.Errorf("creating bundles directory: %w", err)
	}
	for _, b := range bundles {
		path := filepath.Join(dir, b.Path)
		if err := os.WriteFile(path, []byte(b.Content), 0644); err != nil {
			return fmt.Errorf("writing bundle %s: %w", b.Path, err)
		}
	}
	return nil
}

func renderAgent(agent string, deps []string, descriptions map[string]string, dir string, now time.Time) (full, compact string, warnings []string) {
	timestamp := now.UTC().Format("2006-01-02T15:04:05Z")

	var fb, cb strings.Builder
	writeHeader(&fb, agent, timestamp, deps, descriptions)
	writeHeader(&cb, agent, timestamp, deps, descriptions)

	for _, dep := range deps {
		skill, w := loadSkill(dir, dep)
		warnings = append(warnings, w...)
		if skill == nil {
			continue
		}
		writeFullSection(&fb, dep, skill)
		writeCompactSection(&cb, dep, skill)
	}

	return fb.String(), cb.String(), warnings
}

// writeHeader emits the bundle title, generation note, and the table of
// contents listing each dependency with its manifest description.
func writeHeader(b *strings.Builder, agent, timestamp string, deps []string, descriptions map[string]string) {
	fmt.Fprintf(b, "# %s Context Bundle\n\n", agent)
	b.WriteString("Auto-generated from the registry manifest dependencies.\n")
	fmt.Fprintf(b, "Generated: %s\n\n---\n\n", timestamp)

	b.WriteString("## Included Skills\n\n")
	for _, dep := range deps {
		fmt.Fprintf(b, "- **%s**: %s\n", dep, descriptions[dep])
	}
	b.WriteString("\n---\n\n")
}

// writeFullSection emits the skill body under a marker comment, followed by
// its layer files in priority order.
func writeFullSection(b *strings.Builder, name string, skill *skillContent) {
	fmt.Fprintf(b, "<!-- skill: %s -->\n\n%s\n\n", name, skill.body)
	for _, layer := range orderLayers(skill.layers) {
		fmt.Fprintf(b, "<!-- %s/%s -->\n\n%s\n\n", name, layer, skill.layers[layer])
	}
	b.WriteString("---\n\n")
}

// writeCompactSection emits just the skill's Quick Reference section, falling
// back to the full body when the skill has none.
func writeCompactSection(b *strings.Builder, name string, skill *skillContent) {
	if quickRef, ok := extractQuickReference(skill.body); ok {
		fmt.Fprintf(b, "## %s\n\n%s\n\n---\n\n", name, quickRef)
		return
	}
	fmt.Fprintf(b, "%s\n\n---\n\n", skill.body)
}

// loadSkill reads a skill's SKILL.md and any layer files its frontmatter
// declares. A missing skill or layer file yields a warning.
func loadSkill(dir, name string) (*skillContent, []string) {
	skillDir := filepath.Join(dir, registry.SkillsDir, name)
	data, err := os.ReadFile(filepath.Join(skillDir, registry.SkillFileName))
	if err != nil {
		return nil, []string{fmt.Sprintf("skill %q: %v", name, err)}
	}

	front, body := registry.SplitFrontmatter(string(data))
	skill := &skillContent{body: strings.TrimSpace(body), layers: map[string]string{}}

	var warnings []string
	layersConfig, _ := front["layers"].(map[string]any)
	for layer, rawFile := range layersConfig {
		file, ok := rawFile.(string)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("skill %q: layer %q is not a file name", name, layer))
			continue
		}
		content, err := os.ReadFile(filepath.Join(skillDir, file))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skill %q: layer %q: %v", name, layer, err))
			continue
		}
		skill.layers[layer] = strings.TrimSpace(string(content))
	}
	return skill, warnings
}

// orderLayers returns layer names with rules first, examples second, and the
// rest alphabetically.
func orderLayers(layers map[string]string) []string {
	var ordered []string
	for _, name := range []string{"rules", "examples"} {
		if _, ok := layers[name]; ok {
			ordered = append(ordered, name)
		}
	}
	var rest []string
	for name := range layers {
		if name != "rules" && name != "examples" {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}

// extractQuickReference returns the text from the Quick Reference heading up
// to the next top-level section.
func extractQuickReference(body string) (string, bool) {
	start := strings.Index(body, quickReferenceHeading)
	if start == -1 {
		return "", false
	}
	section := body[start:]
	if end := strings.Index(section[len(quickReferenceHeading):], "\n## "); end != -1 {
		section = section[:len(quickReferenceHeading)+end]
	}
	return strings.TrimSpace(section), true
}

// skillDescriptions maps each declared skill name to its manifest
// description, for the bundle table of contents.
func skillDescriptions(doc *manifest.Document) map[string]string {
	m := make(map[string]string, len(doc.Skills))
	for _, e := range doc.Skills {
		name, ok := e.Name()
		if !ok {
			continue
		}
		desc, _ := e.StringField("description")
		m[name] = desc
	}
	return m
}
