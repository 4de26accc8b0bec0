package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ZenithArcX/Synapx/internal/model"
)

// Renderer writes claim results to files and prints run summaries
type Renderer struct {
	pretty bool
}

// NewRenderer creates a new renderer
func NewRenderer(pretty bool) *Renderer {
	return &Renderer{pretty: pretty}
}

// RenderJSON writes results to a JSON file, creating parent directories as
// needed. Results keep their input order.
func (r *Renderer) RenderJSON(results []*model.ClaimResult, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	var data []byte
	var err error
	if r.pretty {
		data, err = json.MarshalIndent(results, "", "  ")
	} else {
		data, err = json.Marshal(results)
	}
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	return nil
}

// RenderSummary prints a per-route breakdown of a processing run
func (r *Renderer) RenderSummary(results []*model.ClaimResult) {
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Claims Processing Summary\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Documents processed: %d\n", len(results))

	routes := make(map[model.Route]int)
	failed := 0
	for _, result := range results {
		routes[result.RecommendedRoute]++
		if result.Status == model.StatusFailed {
			failed++
		}
	}

	names := make([]string, 0, len(routes))
	for route := range routes {
		names = append(names, string(route))
	}
	sort.Strings(names)

	fmt.Fprintf(os.Stderr, "\n  Routing distribution:\n")
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "    %s: %d\n", name, routes[model.Route(name)])
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "\n  Unreadable documents: %d\n", failed)
	}
	fmt.Fprintf(os.Stderr, "\n")
}
