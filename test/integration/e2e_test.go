//go:build integration

package integration_test

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/roster-dev/roster/internal/bundle"
	"github.com/roster-dev/roster/internal/manifest"
	"github.com/roster-dev/roster/internal/registry"
	"github.com/roster-dev/roster/internal/scaffold"
	"github.com/roster-dev/roster/internal/validate"
)

// TestFullFlowInitSyncValidateBundle exercises the complete flow:
// init registry -> scaffold entities -> sync manifest -> validate -> bundles.
func TestFullFlowInitSyncValidateBundle(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".roster")

	// Step 1: Initialize the registry skeleton.
	if _, err := scaffold.InitRegistry(dir); err != nil {
		t.Fatalf("InitRegistry: %v", err)
	}
	assertFileExists(t, filepath.Join(dir, "manifest.yaml"))

	// The registry is discoverable from a nested working directory.
	nested := filepath.Join(root, "src", "deep")
	writeFile(t, filepath.Join(nested, "placeholder.txt"), "x")
	found, err := registry.FindUp(nested)
	if err != nil {
		t.Fatalf("FindUp: %v", err)
	}
	if found != dir {
		t.Fatalf("FindUp = %q, want %q", found, dir)
	}

	// Step 2: Scaffold one entity of each kind.
	for kind, name := range map[manifest.Kind]string{
		manifest.KindSkill:   "code-style",
		manifest.KindAgent:   "drafter",
		manifest.KindCommand: "draft",
	} {
		if _, err := scaffold.NewEntity(dir, kind, name); err != nil {
			t.Fatalf("NewEntity(%v): %v", kind, err)
		}
	}

	// Step 3: Sync the manifest with the scaffolded sources.
	plan, err := registry.BuildPlan(dir)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if !plan.Dirty() {
		t.Fatal("expected the scaffolded entities to dirty the plan")
	}
	if err := plan.Apply(); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// Step 4: The synced manifest passes validation.
	doc, err := manifest.Load(filepath.Join(dir, "manifest.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if report := validate.Check(doc); !report.Valid() {
		t.Fatalf("synced manifest has findings:\n%s", strings.Join(report.Lines(), "\n"))
	}

	// Step 5: Bundles are generated for the agent.
	bundles, warnings, err := bundle.Compose(doc, dir, "", time.Now())
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("bundle warnings: %v", warnings)
	}
	if err := bundle.Write(dir, bundles); err != nil {
		t.Fatalf("Write: %v", err)
	}
	assertFileExists(t, filepath.Join(dir, "bundles", "drafter.md"))
	assertFileExists(t, filepath.Join(dir, "bundles", "drafter-compact.md"))

	// Step 6: A second sync is a no-op.
	again, err := registry.BuildPlan(dir)
	if err != nil {
		t.Fatalf("second BuildPlan: %v", err)
	}
	if again.Dirty() {
		t.Errorf("second sync should be clean, got: %v", again.Changes)
	}
}

// TestValidationFlow checks the load -> check -> report path over a manifest
// seeded with one violation of every class.
func TestValidationFlow(t *testing.T) {
	dir := setupRegistry(t, `description: integration fixture
categories:
  conventions: Coding standards
skills:
  - name: testing
    category: conventions
    description: Testing conventions
    user_invocable: true
    version: 1.0.0
  - name: testing
    category: stray-category
    description: Duplicate with a bad category
    user_invocable: true
    version: "1.2"
agents:
  - name: researcher
    description: Researches things
    model: opus
    version: 1.0.0
    depends_on_skills:
      - missing-skill
commands:
  - name: review
    description: no version field
`)

	path, err := manifest.Find(dir)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	doc, err := manifest.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	report := validate.Check(doc)
	want := []string{
		`skill "testing": duplicate name (2 occurrences)`,
		`skill "testing": unknown category "stray-category" (valid: conventions)`,
		`skill "testing": invalid version "1.2" (expected semver like "1.0.0")`,
		`agent "researcher": depends on unknown skill "missing-skill"`,
		`command "review": missing required field "version"`,
	}
	got := report.Lines()
	if len(got) != len(want) {
		t.Fatalf("got %d findings, want %d:\n%s", len(got), len(want), strings.Join(got, "\n"))
	}
	for _, line := range want {
		found := false
		for _, g := range got {
			if g == line {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("report missing line %q:\n%s", line, strings.Join(got, "\n"))
		}
	}

	// Determinism across repeated runs over the same manifest.
	second, err := manifest.Load(path)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if strings.Join(validate.Check(second).Lines(), "\n") != strings.Join(got, "\n") {
		t.Error("repeated validation produced a different report")
	}
}
