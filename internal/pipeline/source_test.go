package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ZenithArcX/Synapx/internal/cache"
)

func TestDocumentSource_Supported(t *testing.T) {
	source := NewDocumentSource([]string{".pdf", ".txt"}, 0, nil, 0)

	tests := []struct {
		path string
		want bool
	}{
		{"claim.pdf", true},
		{"claim.PDF", true},
		{"claim.txt", true},
		{"claim.docx", false},
		{"claim", false},
		{"dir/claim.txt", true},
	}
	for _, tc := range tests {
		if got := source.Supported(tc.path); got != tc.want {
			t.Errorf("Supported(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestDocumentSource_ReadText(t *testing.T) {
	source := NewDocumentSource([]string{".txt"}, 0, nil, 0)

	path := filepath.Join(t.TempDir(), "claim.txt")
	if err := os.WriteFile(path, []byte("POLICY NUMBER: X1"), 0o644); err != nil {
		t.Fatal(err)
	}

	text, err := source.Text(path)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if text != "POLICY NUMBER: X1" {
		t.Errorf("text = %q", text)
	}
}

func TestDocumentSource_UnsupportedExtension(t *testing.T) {
	source := NewDocumentSource([]string{".txt"}, 0, nil, 0)

	path := filepath.Join(t.TempDir(), "claim.docx")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := source.Text(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDocumentSource_MissingFile(t *testing.T) {
	source := NewDocumentSource([]string{".txt"}, 0, nil, 0)

	_, err := source.Text(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDocumentSource_SizeLimit(t *testing.T) {
	source := NewDocumentSource([]string{".txt"}, 8, nil, 0)

	path := filepath.Join(t.TempDir(), "big.txt")
	if err := os.WriteFile(path, []byte("this is over eight bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := source.Text(path)
	if err == nil || !strings.Contains(err.Error(), "too large") {
		t.Errorf("expected size limit error, got %v", err)
	}
}

func TestDocumentSource_CacheHit(t *testing.T) {
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	source := NewDocumentSource([]string{".txt"}, 0, c, time.Minute)

	path := filepath.Join(t.TempDir(), "claim.txt")
	if err := os.WriteFile(path, []byte("first read"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := source.Text(path); err != nil {
		t.Fatalf("first Text: %v", err)
	}

	// Overwrite the bytes but keep the mtime so the cache key is unchanged.
	// The cached text must be served.
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("second read"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, info.ModTime(), info.ModTime()); err != nil {
		t.Fatal(err)
	}

	text, err := source.Text(path)
	if err != nil {
		t.Fatalf("second Text: %v", err)
	}
	if text != "first read" {
		t.Errorf("expected cached text, got %q", text)
	}
}
