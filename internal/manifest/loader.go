package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// FileNames are the recognized manifest file names, tried in order.
var FileNames = []string{"manifest.yaml", "manifest.json"}

// Find returns the path of the manifest file inside dir.
func Find(dir string) (string, error) {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no manifest found in %s", dir)
}

// Load reads and parses the manifest at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	doc.Path = path

	return doc, nil
}

// Parse decodes manifest bytes into a Document. The YAML decoder also
// accepts JSON input. Missing collections default to empty; a collection of
// the wrong shape is a load failure since no entries can be normalized from
// it. Entry contents are kept verbatim for the validators to inspect.
func Parse(data []byte) (*Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	doc := &Document{Categories: map[string]any{}}

	if rawCats, ok := raw["categories"]; ok {
		cats, ok := rawCats.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("section %q must be a mapping", "categories")
		}
		doc.Categories = cats
	}

	for _, kind := range Kinds {
		section := kind.Section()
		rawSeq, ok := raw[section]
		if !ok {
			continue
		}
		seq, ok := rawSeq.([]any)
		if !ok {
			return nil, fmt.Errorf("section %q must be a sequence", section)
		}

		entries := normalizeEntries(kind, seq)
		switch kind {
		case KindSkill:
			doc.Skills = entries
		case KindAgent:
			doc.Agents = entries
		case KindCommand:
			doc.Commands = entries
		}
	}

	return doc, nil
}

// normalizeEntries converts raw sequence elements into kind-tagged entries,
// preserving source order. An element that is not a mapping becomes an entry
// with no fields so the field checks can report it by position.
func normalizeEntries(kind Kind, seq []any) []Entry {
	entries := make([]Entry, 0, len(seq))
	for i, el := range seq {
		fields, _ := el.(map[string]any)
		if fields == nil {
			fields = map[string]any{}
		}
		entries = append(entries, Entry{Kind: kind, Index: i, Fields: fields})
	}
	return entries
}
