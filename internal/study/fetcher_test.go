package study

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnabled(t *testing.T) {
	if NewFetcher("", t.TempDir()).Enabled() {
		t.Error("Enabled() = true without an API key, want false")
	}
	if !NewFetcher("sk-test", t.TempDir()).Enabled() {
		t.Error("Enabled() = false with an API key, want true")
	}
}

func TestNotesWithoutKey(t *testing.T) {
	f := NewFetcher("", t.TempDir())

	if _, err := f.Notes(1, 1, "text", "translation"); err == nil {
		t.Error("Notes() error = nil without an API key, want error")
	}
}

func TestNotesServedFromCache(t *testing.T) {
	dir := t.TempDir()
	cached := "cached study notes"
	if err := os.WriteFile(filepath.Join(dir, "notes-2-255.txt"), []byte(cached), 0644); err != nil {
		t.Fatal(err)
	}

	// The key is never used when the cache already has the verse.
	f := NewFetcher("sk-test", dir)
	notes, err := f.Notes(2, 255, "text", "translation")
	if err != nil {
		t.Fatalf("Notes() error = %v", err)
	}
	if notes != cached {
		t.Errorf("Notes() = %q, want %q", notes, cached)
	}
}
