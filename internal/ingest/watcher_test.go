package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func collect(t *testing.T, paths <-chan string, want int, timeout time.Duration) []string {
	t.Helper()
	var got []string
	deadline := time.After(timeout)
	for len(got) < want {
		select {
		case p, ok := <-paths:
			if !ok {
				t.Fatalf("paths channel closed after %d of %d", len(got), want)
			}
			got = append(got, p)
		case <-deadline:
			t.Fatalf("timed out after %d of %d paths", len(got), want)
		}
	}
	return got
}

func TestWatch_RequiresRoot(t *testing.T) {
	_, _, err := Watch(context.Background(), WatchConfig{})
	if err == nil {
		t.Fatal("expected error for empty root")
	}
}

func TestWatch_InitialScan(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.pdf", "skip.docx"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	paths, _, err := Watch(ctx, WatchConfig{
		Root:        dir,
		Extensions:  []string{".txt", ".pdf"},
		InitialScan: true,
		Debounce:    20 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	got := collect(t, paths, 2, 2*time.Second)
	seen := map[string]bool{}
	for _, p := range got {
		seen[filepath.Base(p)] = true
	}
	if !seen["a.txt"] || !seen["b.pdf"] {
		t.Errorf("initial scan emitted %v", got)
	}
}

func TestWatch_NewFile(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	paths, _, err := Watch(ctx, WatchConfig{
		Root:       dir,
		Extensions: []string{".txt"},
		Debounce:   20 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	target := filepath.Join(dir, "claim.txt")
	if err := os.WriteFile(target, []byte("POLICY NUMBER: X"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := collect(t, paths, 1, 3*time.Second)
	if got[0] != target {
		t.Errorf("emitted %q, want %q", got[0], target)
	}
}

func TestWatch_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	paths, _, err := Watch(ctx, WatchConfig{
		Root:       dir,
		Extensions: []string{".txt"},
		Debounce:   20 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-paths:
		t.Errorf("unexpected path %q", p)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatch_ClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	paths, _, err := Watch(ctx, WatchConfig{
		Root:       t.TempDir(),
		Extensions: []string{".txt"},
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	cancel()

	select {
	case _, ok := <-paths:
		if ok {
			t.Error("expected channel close, got a path")
		}
	case <-time.After(2 * time.Second):
		t.Error("paths channel did not close after cancel")
	}
}
