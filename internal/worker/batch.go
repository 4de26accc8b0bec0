package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZenithArcX/Synapx/internal/model"
)

// Processor handles one claim document
type Processor interface {
	Process(ctx context.Context, path string) *model.ClaimResult
}

// DocumentJob processes a single document at a fixed batch position
type DocumentJob struct {
	Path      string
	Position  int
	Processor Processor
	Limiter   *Limiter // optional intake throttle
}

// Index returns the job's batch position
func (j *DocumentJob) Index() int {
	return j.Position
}

// Execute processes the document. A limiter wait cut short by context
// cancellation is reported as a failed document, not a batch abort.
func (j *DocumentJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx); err != nil {
			return &DocumentResult{Path: j.Path, ProcessErr: err}
		}
	}
	return &DocumentResult{
		Path:   j.Path,
		Result: j.Processor.Process(ctx, j.Path),
	}
}

// DocumentResult is the outcome of one document job
type DocumentResult struct {
	Path       string
	Result     *model.ClaimResult
	ProcessErr error
}

// Err returns the job-level error, if any
func (r *DocumentResult) Err() error {
	return r.ProcessErr
}

// BatchProcessor processes many documents concurrently, preserving input
// order in the returned results.
type BatchProcessor struct {
	processor Processor
	pool      *Pool
	limiter   *Limiter
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(processor Processor, workers int, docsPerSecond float64, burst int) *BatchProcessor {
	return &BatchProcessor{
		processor: processor,
		pool:      NewPool(workers),
		limiter:   NewLimiter(docsPerSecond, burst),
	}
}

// ProcessPaths processes documents and returns one result per input path,
// in input order. Individual failures do not stop the batch.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*model.ClaimResult {
	jobs := make([]Job, len(paths))
	for i, path := range paths {
		jobs[i] = &DocumentJob{
			Path:      path,
			Position:  i,
			Processor: b.processor,
			Limiter:   b.limiter,
		}
	}

	poolResults := b.pool.Run(ctx, jobs)

	results := make([]*model.ClaimResult, len(paths))
	for i, pr := range poolResults {
		doc, ok := pr.(*DocumentResult)
		if !ok || doc.Result == nil {
			err := pr.Err()
			if err == nil {
				err = fmt.Errorf("processing aborted")
			}
			results[i] = &model.ClaimResult{
				Status:           model.StatusFailed,
				DocumentPath:     paths[i],
				Error:            err.Error(),
				ExtractedFields:  map[string]string{},
				MissingFields:    model.MandatoryFieldNames(),
				FraudIndicators:  []string{},
				RecommendedRoute: model.RouteManualReview,
				Reasoning:        fmt.Sprintf("Document parsing failed: %v", err),
			}
			continue
		}
		results[i] = doc.Result
	}

	return results
}

// ProcessManifest reads a manifest file (one document path per line) and
// processes the listed documents.
func (b *BatchProcessor) ProcessManifest(ctx context.Context, manifestPath string) ([]*model.ClaimResult, error) {
	paths, err := ReadManifest(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ReadManifest reads document paths from a file, one per line. Blank
// lines and # comments are skipped, duplicates removed.
func ReadManifest(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan manifest: %w", err)
	}

	return paths, nil
}

// CollectDirectory lists supported documents directly under dir, sorted by
// name for a stable batch order.
func CollectDirectory(dir string, extensions []string) ([]string, error) {
	exts := make(map[string]struct{}, len(extensions))
	for _, e := range extensions {
		exts[strings.ToLower(e)] = struct{}{}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := exts[strings.ToLower(filepath.Ext(entry.Name()))]; ok {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(paths)
	return paths, nil
}
