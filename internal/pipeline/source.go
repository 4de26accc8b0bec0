package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/ZenithArcX/Synapx/internal/cache"
)

// ErrUnsupportedFormat is returned for documents outside the accepted
// extension set. Such files are rejected before reaching the core.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// DocumentSource produces raw text for claim documents. The extractor and
// fraud scanner never touch the filesystem; everything goes through here.
type DocumentSource struct {
	extensions map[string]struct{}
	maxBytes   int64
	cache      cache.Cache
	cacheTTL   time.Duration
}

// NewDocumentSource creates a document source accepting the given
// extensions (lower-cased, with leading dot). A nil cache disables caching.
func NewDocumentSource(extensions []string, maxBytes int64, c cache.Cache, ttl time.Duration) *DocumentSource {
	exts := make(map[string]struct{}, len(extensions))
	for _, e := range extensions {
		exts[strings.ToLower(e)] = struct{}{}
	}
	return &DocumentSource{
		extensions: exts,
		maxBytes:   maxBytes,
		cache:      c,
		cacheTTL:   ttl,
	}
}

// Supported reports whether the document's extension is accepted
func (s *DocumentSource) Supported(path string) bool {
	_, ok := s.extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Extensions returns the accepted extension set, sorted by registration
func (s *DocumentSource) Extensions() []string {
	out := make([]string, 0, len(s.extensions))
	for e := range s.extensions {
		out = append(out, e)
	}
	return out
}

// Text reads a document and returns its raw text. Failures are not
// retried: an unreadable claim surfaces immediately so it can be forced to
// manual review rather than silently dropped.
func (s *DocumentSource) Text(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("document not found: %w", err)
	}
	if s.maxBytes > 0 && info.Size() > s.maxBytes {
		return "", fmt.Errorf("document too large: %d bytes (limit %d)", info.Size(), s.maxBytes)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := s.extensions[ext]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	key := cache.DocumentKey(path, info.ModTime())
	if s.cache != nil {
		if data, found := s.cache.Get(key); found {
			return string(data), nil
		}
	}

	var text string
	switch ext {
	case ".txt":
		text, err = readTextFile(path)
	case ".pdf":
		text, err = readPDF(path, info.Size())
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		_ = s.cache.Set(key, []byte(text), s.cacheTTL)
	}

	return text, nil
}

func readTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read text file: %w", err)
	}
	return string(data), nil
}

// readPDF extracts plain text page by page. Pages that fail to decode are
// skipped so one bad page does not sink the whole document.
func readPDF(path string, size int64) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}
	defer file.Close()

	reader, err := pdf.NewReader(file, size)
	if err != nil {
		return "", fmt.Errorf("read PDF: %w", err)
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	return builder.String(), nil
}
