package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestIsRelevant(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"manifest write", fsnotify.Event{Name: "manifest.yaml", Op: fsnotify.Write}, true},
		{"skill create", fsnotify.Event{Name: "skills/x/SKILL.md", Op: fsnotify.Create}, true},
		{"json remove", fsnotify.Event{Name: "manifest.json", Op: fsnotify.Remove}, true},
		{"yml rename", fsnotify.Event{Name: "old.yml", Op: fsnotify.Rename}, true},
		{"chmod only", fsnotify.Event{Name: "manifest.yaml", Op: fsnotify.Chmod}, false},
		{"unrelated extension", fsnotify.Event{Name: "notes.txt", Op: fsnotify.Write}, false},
		{"no extension", fsnotify.Event{Name: "skills", Op: fsnotify.Create}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRelevant(tt.event); got != tt.want {
				t.Errorf("isRelevant(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestWatcher_SignalsOnManifestWrite(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "manifest.yaml")
	if err := os.WriteFile(manifestPath, []byte("skills: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New(Config{Dir: dir, Debounce: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer w.Stop()

	changes, err := w.Start()
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}

	if err := os.WriteFile(manifestPath, []byte("skills: []\nagents: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change signal")
	}
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "manifest.yaml")
	if err := os.WriteFile(manifestPath, []byte("a: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New(Config{Dir: dir, Debounce: 200 * time.Millisecond})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer w.Stop()

	changes, err := w.Start()
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(manifestPath, []byte("a: 1\n"), 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for debounced signal")
	}

	// The burst settled; no second signal should follow.
	select {
	case <-changes:
		t.Error("burst should coalesce into a single signal")
	case <-time.After(400 * time.Millisecond):
	}
}
