package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZenithArcX/Synapx/internal/model"
	"github.com/ZenithArcX/Synapx/internal/pipeline"
	"github.com/ZenithArcX/Synapx/internal/worker"
)

var (
	concurrency  int
	batchOut     string
	batchTimeout time.Duration
	manifestMode bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <directory|manifest>",
	Short: "Process multiple claim documents in parallel",
	Long: `Batch processes claim documents concurrently:
- Collect supported documents (.pdf, .txt) from a directory, or read a
  manifest file listing one document path per line
- Process documents in parallel with a configurable worker count
- Results keep input order; one unreadable document never aborts the run

Example:
  synapx batch ./claims
  synapx batch ./claims --concurrency 8 --json results.json
  synapx batch claims.txt --manifest --history`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&batchOut, "json", "claims_results.json", "output JSON path")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&manifestMode, "manifest", false, "treat the argument as a manifest file instead of a directory")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the parsed-text cache")
	batchCmd.Flags().BoolVar(&historyOn, "history", false, "record decisions in the routing history")
	batchCmd.Flags().StringVar(&historyPath, "history-path", "", "routing history database path")
	batchCmd.Flags().StringVar(&llmProvider, "llm", "", "LLM provider for claim summaries (openai, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	batchCmd.Flags().StringVar(&llmBaseURL, "llm-base-url", "", "LLM base URL")
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency

	var paths []string
	if manifestMode {
		paths, err = worker.ReadManifest(input)
		if err != nil {
			return err
		}
	} else {
		paths, err = worker.CollectDirectory(input, cfg.Intake.Extensions)
		if err != nil {
			return err
		}
	}

	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "No documents found in %s\n", input)
		return nil
	}

	fmt.Fprintf(os.Stderr, "⚙️  Processing %d documents with %d workers...\n", len(paths), concurrency)

	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers, cfg.RateLimit.DocsPerSecond, cfg.RateLimit.Burst)
	results := processor.ProcessPaths(ctx, paths)

	if err := recordHistory(ctx, cfg, results...); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.Pretty)
	if batchOut != "" {
		if err := renderer.RenderJSON(results, batchOut); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote results: %s\n", batchOut)
	}

	for _, result := range results {
		marker := "✓"
		if result.Status == model.StatusFailed {
			marker = "✗"
		}
		fmt.Fprintf(os.Stderr, "%s %s → %s\n", marker, result.DocumentPath, result.RecommendedRoute)
	}

	renderer.RenderSummary(results)
	return nil
}
