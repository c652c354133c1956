package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/roster-dev/roster/internal/manifest"
	"go.yaml.in/yaml/v3"
)

// Plan describes the manifest updates a sync would make, plus non-blocking
// warnings. It is built without touching any file; Apply performs the write.
type Plan struct {
	Path     string
	JSON     bool // manifest is manifest.json; otherwise YAML
	Document map[string]any
	Changes  []string
	Warnings []string
}

// Dirty reports whether applying the plan would modify the manifest.
func (p *Plan) Dirty() bool {
	return len(p.Changes) > 0
}

// BuildPlan scans the registry directory and reconciles each manifest
// collection with the sources found on disk:
//
//   - a discovered name already in the manifest keeps its entry verbatim;
//   - a discovered name missing from the manifest is appended from
//     frontmatter plus defaults;
//   - a manifest entry with no source on disk is dropped;
//   - version drift between a kept entry and its source is a warning only.
//
// The rebuilt collections follow scan order.
func BuildPlan(dir string) (*Plan, error) {
	path, err := manifest.Find(dir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	scanned, err := Scan(dir)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Path:     path,
		JSON:     strings.HasSuffix(path, ".json"),
		Document: raw,
	}
	for _, kind := range manifest.Kinds {
		plan.syncCollection(kind, scanned.Collection(kind))
	}
	return plan, nil
}

// syncCollection rebuilds one manifest collection in scan order and records
// the resulting changes and drift warnings on the plan.
func (p *Plan) syncCollection(kind manifest.Kind, sources []Source) {
	section := kind.Section()
	rawList, _ := p.Document[section].([]any)

	existing := map[string]map[string]any{}
	var keptOrder []string
	for i, el := range rawList {
		entry, ok := el.(map[string]any)
		if !ok {
			p.Changes = append(p.Changes, fmt.Sprintf("removed %s entry #%d (not a mapping)", kind, i+1))
			continue
		}
		name, ok := entry["name"].(string)
		if !ok {
			p.Changes = append(p.Changes, fmt.Sprintf("removed %s entry #%d (unnamed)", kind, i+1))
			continue
		}
		existing[name] = entry
		keptOrder = append(keptOrder, name)
	}

	onDisk := map[string]struct{}{}
	newList := make([]any, 0, len(sources))
	var newOrder []string
	for _, src := range sources {
		onDisk[src.Name] = struct{}{}
		entry, known := existing[src.Name]
		if !known {
			newList = append(newList, src.Fields)
			newOrder = append(newOrder, src.Name)
			p.Changes = append(p.Changes, fmt.Sprintf("added %s %q (%s)", kind, src.Name, src.Path))
			continue
		}
		newList = append(newList, entry)
		newOrder = append(newOrder, src.Name)
		if warning := versionDrift(kind, src, entry); warning != "" {
			p.Warnings = append(p.Warnings, warning)
		}
	}

	var survivors []string
	for _, name := range keptOrder {
		if _, ok := onDisk[name]; ok {
			survivors = append(survivors, name)
			continue
		}
		p.Changes = append(p.Changes, fmt.Sprintf("removed %s %q (no source on disk)", kind, name))
	}
	if !equalOrder(survivors, keptNames(newOrder, existing)) {
		p.Changes = append(p.Changes, fmt.Sprintf("reordered %s to match scan order", section))
	}

	p.Document[section] = newList
}

// versionDrift compares the manifest entry's version against the source
// frontmatter's version. Both must parse as semver for drift to be reported;
// malformed versions are the validator's concern.
func versionDrift(kind manifest.Kind, src Source, entry map[string]any) string {
	manifestRaw, ok := entry["version"].(string)
	if !ok {
		return ""
	}
	sourceRaw, ok := src.Fields["version"].(string)
	if !ok {
		return ""
	}

	mv, err := semver.NewVersion(manifestRaw)
	if err != nil {
		return ""
	}
	sv, err := semver.NewVersion(sourceRaw)
	if err != nil {
		return ""
	}

	switch mv.Compare(sv) {
	case -1:
		return fmt.Sprintf("%s %q: manifest version %s is behind source %s (%s)",
			kind, src.Name, manifestRaw, sourceRaw, src.Path)
	case 1:
		return fmt.Sprintf("%s %q: manifest version %s is ahead of source %s (%s)",
			kind, src.Name, manifestRaw, sourceRaw, src.Path)
	}
	return ""
}

// keptNames filters order down to the names that already existed in the
// manifest, so reordering is judged on kept entries only.
func keptNames(order []string, existing map[string]map[string]any) []string {
	var kept []string
	for _, name := range order {
		if _, ok := existing[name]; ok {
			kept = append(kept, name)
		}
	}
	return kept
}

func equalOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Apply writes the rebuilt document back to the manifest path, preserving
// the file's format: JSON stays JSON, YAML stays YAML, two-space indent.
func (p *Plan) Apply() error {
	var data []byte
	if p.JSON {
		out, err := json.MarshalIndent(p.Document, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding manifest: %w", err)
		}
		data = append(out, '\n')
	} else {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(p.Document); err != nil {
			return fmt.Errorf("encoding manifest: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding manifest: %w", err)
		}
		data = buf.Bytes()
	}

	if err := os.WriteFile(p.Path, data, 0644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", p.Path, err)
	}
	return nil
}
