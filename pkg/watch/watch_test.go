package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "catalogues", name))
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestLoad(t *testing.T) {
	r := Load(filepath.Join("..", "..", "testdata", "catalogues", "minimal.yaml"))
	if !r.OK() {
		t.Fatalf("minimal.yaml did not load: %s", r.Summary())
	}

	r = Load(filepath.Join("..", "..", "testdata", "catalogues", "unknown-field.yaml"))
	if r.OK() {
		t.Fatal("unknown-field.yaml should not produce a catalogue")
	}
	if !strings.Contains(r.Summary(), "structural") {
		t.Errorf("summary = %q, want the structural error", r.Summary())
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalogue.yaml")
	if err := os.WriteFile(path, readFixture(t, "minimal.yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	reloads := make(chan Reload, 4)
	w, err := New(path, func(r Reload) { reloads <- r }, nil)
	if err != nil {
		t.Fatal(err)
	}
	w.SetDebounce(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Unrelated files in the directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "otro.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, readFixture(t, "unknown-field.yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-reloads:
		if r.OK() {
			t.Error("broken catalogue reported as OK")
		}
		if r.Path != path {
			t.Errorf("path = %q, want %q", r.Path, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
