package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZenithArcX/Synapx/internal/model"
	"github.com/ZenithArcX/Synapx/internal/pipeline"
)

var (
	outJSON        string
	noCache        bool
	processTimeout time.Duration
	historyOn      bool
	historyPath    string
	llmProvider    string
	llmModel       string
	llmBaseURL     string
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process <document>",
	Short: "Process a single FNOL claim document",
	Long: `Process extracts structured fields from one claim document and
recommends a processing queue:
- Extract fields with the fixed pattern schema
- Flag missing mandatory fields and placeholder values
- Scan for fraud-indicator keywords
- Apply the ordered routing rules

Supported formats: .pdf, .txt

Example:
  synapx process claim.pdf
  synapx process claim.txt --json result.json
  synapx process claim.pdf --history --llm openai`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	processCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the parsed-text cache")
	processCmd.Flags().DurationVar(&processTimeout, "timeout", 2*time.Minute, "overall processing timeout")
	processCmd.Flags().BoolVar(&historyOn, "history", false, "record the decision in the routing history")
	processCmd.Flags().StringVar(&historyPath, "history-path", "", "routing history database path (default: ~/.synapx/history.db)")
	processCmd.Flags().StringVar(&llmProvider, "llm", "", "LLM provider for claim summaries (openai, ollama; empty = disabled)")
	processCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	processCmd.Flags().StringVar(&llmBaseURL, "llm-base-url", "", "LLM base URL (for Ollama or compatible endpoints)")
}

func runProcess(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg)
	if !p.Source().Supported(path) {
		return fmt.Errorf("unsupported document format: %s (supported: .pdf, .txt)", path)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Processing: %s\n\n", path)
	}

	result := p.Process(ctx, path)

	if err := recordHistory(ctx, cfg, result); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.Pretty)
	if outJSON != "" {
		if err := renderer.RenderJSON([]*model.ClaimResult{result}, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}

	printResult(result)
	return nil
}

// printResult prints a single claim result to stdout
func printResult(result *model.ClaimResult) {
	fmt.Printf("Status:    %s\n", result.Status)
	fmt.Printf("Route:     %s\n", result.RecommendedRoute)
	fmt.Printf("Reasoning: %s\n", result.Reasoning)

	if len(result.ExtractedFields) > 0 {
		fmt.Printf("\nExtracted fields: %d\n", len(result.ExtractedFields))
	}
	if len(result.MissingFields) > 0 {
		fmt.Printf("Missing fields:   %v\n", result.MissingFields)
	}
	if len(result.FraudIndicators) > 0 {
		fmt.Printf("Fraud indicators: %v\n", result.FraudIndicators)
	}
	if result.Summary != nil {
		fmt.Printf("\n--- Claim summary (%s/%s) ---\n%s\n", result.Summary.Provider, result.Summary.Model, result.Summary.SummaryMD)
	}
}
