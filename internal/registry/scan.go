package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roster-dev/roster/internal/manifest"
)

// Defaults applied when an entity's frontmatter omits a field.
const (
	DefaultVersion  = "1.0.0"
	DefaultCategory = "conventions"
	DefaultModel    = "opus"
)

// Source is one entity discovered on disk, with a manifest-shaped record
// built from its frontmatter plus defaults.
type Source struct {
	Kind   manifest.Kind
	Name   string
	Path   string // path of the entity file, relative to the registry dir
	Fields map[string]any
}

// Scanned holds every entity source found in a registry directory, per kind,
// in scan order (lexical directory listing).
type Scanned struct {
	Skills   []Source
	Agents   []Source
	Commands []Source
}

// Collection returns the sources of one kind.
func (s *Scanned) Collection(k manifest.Kind) []Source {
	switch k {
	case manifest.KindSkill:
		return s.Skills
	case manifest.KindAgent:
		return s.Agents
	case manifest.KindCommand:
		return s.Commands
	}
	return nil
}

// Scan discovers entity sources under dir: skills/<name>/SKILL.md,
// agents/<name>.md, commands/<name>.md. Missing entity directories are not
// an error; they scan as empty.
func Scan(dir string) (*Scanned, error) {
	skills, err := scanSkills(dir)
	if err != nil {
		return nil, err
	}
	agents, err := scanFlat(dir, AgentsDir, manifest.KindAgent, buildAgentRecord)
	if err != nil {
		return nil, err
	}
	commands, err := scanFlat(dir, CommandsDir, manifest.KindCommand, buildCommandRecord)
	if err != nil {
		return nil, err
	}
	return &Scanned{Skills: skills, Agents: agents, Commands: commands}, nil
}

func scanSkills(dir string) ([]Source, error) {
	root := filepath.Join(dir, SkillsDir)
	entries, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}

	var sources []Source
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		relPath := filepath.Join(SkillsDir, entry.Name(), SkillFileName)
		data, err := os.ReadFile(filepath.Join(dir, relPath))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", relPath, err)
		}

		front, body := SplitFrontmatter(string(data))
		name := stringOr(front, "name", entry.Name())
		sources = append(sources, Source{
			Kind:   manifest.KindSkill,
			Name:   name,
			Path:   relPath,
			Fields: buildSkillRecord(name, front, body),
		})
	}
	return sources, nil
}

// scanFlat handles the agents/ and commands/ layout: one markdown file per
// entity, named after it.
func scanFlat(dir, sub string, kind manifest.Kind, build func(string, map[string]any) map[string]any) ([]Source, error) {
	root := filepath.Join(dir, sub)
	entries, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}

	var sources []Source
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		relPath := filepath.Join(sub, entry.Name())
		data, err := os.ReadFile(filepath.Join(dir, relPath))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", relPath, err)
		}

		front, _ := SplitFrontmatter(string(data))
		name := stringOr(front, "name", strings.TrimSuffix(entry.Name(), ".md"))
		sources = append(sources, Source{
			Kind:   kind,
			Name:   name,
			Path:   relPath,
			Fields: build(name, front),
		})
	}
	return sources, nil
}

func buildSkillRecord(name string, front map[string]any, body string) map[string]any {
	description := stringOr(front, "description", "")
	if description == "" {
		description = firstBodyLine(body)
	}
	return map[string]any{
		"name":           name,
		"category":       stringOr(front, "category", DefaultCategory),
		"description":    description,
		"user_invocable": boolOr(front, "user_invocable", true),
		"version":        stringOr(front, "version", DefaultVersion),
	}
}

func buildAgentRecord(name string, front map[string]any) map[string]any {
	deps := stringList(front, "depends_on_skills")
	if deps == nil {
		deps = []string{}
	}
	return map[string]any{
		"name":              name,
		"description":       stringOr(front, "description", ""),
		"model":             stringOr(front, "model", DefaultModel),
		"version":           stringOr(front, "version", DefaultVersion),
		"depends_on_skills": deps,
	}
}

func buildCommandRecord(name string, front map[string]any) map[string]any {
	record := map[string]any{
		"name":        name,
		"description": stringOr(front, "description", ""),
		"version":     stringOr(front, "version", DefaultVersion),
	}
	// Dependency lists are optional on commands; only carry non-empty ones.
	if deps := stringList(front, "depends_on_skills"); len(deps) > 0 {
		record["depends_on_skills"] = deps
	}
	if deps := stringList(front, "depends_on_agents"); len(deps) > 0 {
		record["depends_on_agents"] = deps
	}
	return record
}

func stringOr(front map[string]any, key, fallback string) string {
	if s, ok := front[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

func boolOr(front map[string]any, key string, fallback bool) bool {
	if b, ok := front[key].(bool); ok {
		return b
	}
	return fallback
}

func stringList(front map[string]any, key string) []string {
	seq, ok := front[key].([]any)
	if !ok {
		return nil
	}
	var vals []string
	for _, el := range seq {
		if s, ok := el.(string); ok {
			vals = append(vals, s)
		}
	}
	return vals
}
