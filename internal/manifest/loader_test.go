package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testdataDir = "testdata"

func testPath(name string) string {
	return filepath.Join(testdataDir, name)
}

func TestLoad_Valid(t *testing.T) {
	doc, err := Load(testPath("valid.yaml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if got := len(doc.Skills); got != 2 {
		t.Errorf("len(Skills) = %d, want 2", got)
	}
	if got := len(doc.Agents); got != 1 {
		t.Errorf("len(Agents) = %d, want 1", got)
	}
	if got := len(doc.Commands); got != 2 {
		t.Errorf("len(Commands) = %d, want 2", got)
	}
	if got := len(doc.Categories); got != 4 {
		t.Errorf("len(Categories) = %d, want 4", got)
	}
	if doc.Path != testPath("valid.yaml") {
		t.Errorf("Path = %q, want %q", doc.Path, testPath("valid.yaml"))
	}
}

func TestLoad_PreservesOrderAndFields(t *testing.T) {
	doc, err := Load(testPath("valid.yaml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	first, _ := doc.Skills[0].Name()
	second, _ := doc.Skills[1].Name()
	if first != "run-python-safely" || second != "write-markdown-output" {
		t.Errorf("skill order = %q, %q; want source order", first, second)
	}

	for i, e := range doc.Skills {
		if e.Index != i {
			t.Errorf("Skills[%d].Index = %d, want %d", i, e.Index, i)
		}
		if e.Kind != KindSkill {
			t.Errorf("Skills[%d].Kind = %v, want KindSkill", i, e.Kind)
		}
	}

	// Fields the loader does not know about survive verbatim.
	layers, ok := doc.Skills[1].Fields["layers"].(map[string]any)
	if !ok {
		t.Fatalf("layers field not preserved: %#v", doc.Skills[1].Fields["layers"])
	}
	if layers["rules"] != "rules.md" {
		t.Errorf("layers[rules] = %v, want rules.md", layers["rules"])
	}
}

func TestLoad_JSONManifest(t *testing.T) {
	doc, err := Load(testPath("valid.json"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(doc.Skills) != 1 || len(doc.Agents) != 1 || len(doc.Commands) != 0 {
		t.Errorf("counts = %d/%d/%d, want 1/1/0",
			len(doc.Skills), len(doc.Agents), len(doc.Commands))
	}
	model, ok := doc.Agents[0].StringField("model")
	if !ok || model != "sonnet" {
		t.Errorf("model = %q (ok=%v), want sonnet", model, ok)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(testPath("nonexistent.yaml"))
	if err == nil {
		t.Fatal("expected error for nonexistent file, got nil")
	}
}

func TestLoad_SyntaxError(t *testing.T) {
	_, err := Load(testPath("syntax-error.yaml"))
	if err == nil {
		t.Fatal("expected error for malformed YAML, got nil")
	}
	if !strings.Contains(err.Error(), "parsing manifest") {
		t.Errorf("error %q should mention parsing", err)
	}
}

func TestParse_SectionShapes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"skills scalar", "skills: nope\n", `section "skills" must be a sequence`},
		{"agents mapping", "agents:\n  name: solo\n", `section "agents" must be a sequence`},
		{"commands scalar", "commands: 7\n", `section "commands" must be a sequence`},
		{"categories sequence", "categories:\n  - conventions\n", `section "categories" must be a mapping`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Error() != tt.wantErr {
				t.Errorf("error = %q, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestParse_MissingSectionsDefaultEmpty(t *testing.T) {
	doc, err := Parse([]byte("skills: []\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(doc.Skills) != 0 || len(doc.Agents) != 0 || len(doc.Commands) != 0 {
		t.Errorf("expected all collections empty, got %d/%d/%d",
			len(doc.Skills), len(doc.Agents), len(doc.Commands))
	}
	if doc.Categories == nil {
		t.Error("Categories should default to an empty map, not nil")
	}
}

func TestParse_EmptyInput(t *testing.T) {
	doc, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(doc.Skills) != 0 || len(doc.Categories) != 0 {
		t.Error("empty input should produce an empty document")
	}
}

func TestParse_NonMappingEntry(t *testing.T) {
	doc, err := Parse([]byte("skills:\n  - just-a-string\n  - name: real\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(doc.Skills) != 2 {
		t.Fatalf("len(Skills) = %d, want 2", len(doc.Skills))
	}
	if len(doc.Skills[0].Fields) != 0 {
		t.Errorf("non-mapping entry should normalize to empty fields, got %#v", doc.Skills[0].Fields)
	}
	if doc.Skills[0].Index != 0 || doc.Skills[1].Index != 1 {
		t.Error("entry indexes should track source positions")
	}
	if name, ok := doc.Skills[1].Name(); !ok || name != "real" {
		t.Errorf("second entry name = %q (ok=%v), want real", name, ok)
	}
}

func TestFind(t *testing.T) {
	t.Run("yaml preferred", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"manifest.yaml", "manifest.json"} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
				t.Fatal(err)
			}
		}
		path, err := Find(dir)
		if err != nil {
			t.Fatalf("Find error: %v", err)
		}
		if filepath.Base(path) != "manifest.yaml" {
			t.Errorf("Find = %q, want manifest.yaml first", path)
		}
	})

	t.Run("json fallback", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "manifest.json"), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
		path, err := Find(dir)
		if err != nil {
			t.Fatalf("Find error: %v", err)
		}
		if filepath.Base(path) != "manifest.json" {
			t.Errorf("Find = %q, want manifest.json", path)
		}
	})

	t.Run("none", func(t *testing.T) {
		if _, err := Find(t.TempDir()); err == nil {
			t.Fatal("expected error for empty dir, got nil")
		}
	})
}

func TestEntry_StringsField(t *testing.T) {
	tests := []struct {
		name        string
		fields      map[string]any
		wantVals    []string
		wantPresent bool
		wantClean   bool
	}{
		{"absent", map[string]any{}, nil, false, false},
		{"clean list", map[string]any{"deps": []any{"a", "b"}}, []string{"a", "b"}, true, true},
		{"empty list", map[string]any{"deps": []any{}}, nil, true, true},
		{"mixed list", map[string]any{"deps": []any{"a", 1, "b"}}, []string{"a", "b"}, true, false},
		{"scalar", map[string]any{"deps": "a"}, nil, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Entry{Fields: tt.fields}
			vals, present, clean := e.StringsField("deps")
			if present != tt.wantPresent || clean != tt.wantClean {
				t.Errorf("present/clean = %v/%v, want %v/%v", present, clean, tt.wantPresent, tt.wantClean)
			}
			if len(vals) != len(tt.wantVals) {
				t.Fatalf("vals = %v, want %v", vals, tt.wantVals)
			}
			for i := range vals {
				if vals[i] != tt.wantVals[i] {
					t.Errorf("vals[%d] = %q, want %q", i, vals[i], tt.wantVals[i])
				}
			}
		})
	}
}

func TestDocument_CategoryIDs(t *testing.T) {
	doc := &Document{Categories: map[string]any{"b": nil, "a": nil, "c": nil}}
	got := doc.CategoryIDs()
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("CategoryIDs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CategoryIDs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestValidTier(t *testing.T) {
	for _, tier := range ModelTiers {
		if !ValidTier(tier) {
			t.Errorf("ValidTier(%q) = false, want true", tier)
		}
	}
	for _, bad := range []string{"", "gpt4", "Opus", "opus "} {
		if ValidTier(bad) {
			t.Errorf("ValidTier(%q) = true, want false", bad)
		}
	}
}

func TestKind_Labels(t *testing.T) {
	tests := []struct {
		kind    Kind
		str     string
		section string
	}{
		{KindSkill, "skill", "skills"},
		{KindAgent, "agent", "agents"},
		{KindCommand, "command", "commands"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.str {
			t.Errorf("%v.String() = %q, want %q", tt.kind, got, tt.str)
		}
		if got := tt.kind.Section(); got != tt.section {
			t.Errorf("%v.Section() = %q, want %q", tt.kind, got, tt.section)
		}
	}
}
