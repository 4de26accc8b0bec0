package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ZenithArcX/Synapx/internal/ingest"
	"github.com/ZenithArcX/Synapx/internal/model"
	"github.com/ZenithArcX/Synapx/internal/pipeline"
	"github.com/ZenithArcX/Synapx/internal/worker"
)

var initialScan bool

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Watch an intake directory and process new claim documents",
	Long: `Watch monitors an intake directory (recursively) and processes
claim documents as they arrive. Rapid write bursts for one file are
coalesced before processing. Runs until interrupted.

Example:
  synapx watch ./intake
  synapx watch ./intake --initial-scan --history`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&initialScan, "initial-scan", false, "process documents already present in the directory")
	watchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the parsed-text cache")
	watchCmd.Flags().BoolVar(&historyOn, "history", false, "record decisions in the routing history")
	watchCmd.Flags().StringVar(&historyPath, "history-path", "", "routing history database path")
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	paths, errs, err := ingest.Watch(ctx, ingest.WatchConfig{
		Root:        dir,
		Extensions:  cfg.Intake.Extensions,
		InitialScan: initialScan,
		Debounce:    cfg.Intake.Debounce,
	})
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	fmt.Fprintf(os.Stderr, "⚙️  Watching %s for claim documents (Ctrl-C to stop)...\n", dir)

	p := pipeline.NewPipeline(cfg)
	limiter := worker.NewLimiter(cfg.RateLimit.DocsPerSecond, cfg.RateLimit.Burst)

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintf(os.Stderr, "\nStopped.\n")
			return nil

		case err, ok := <-errs:
			if ok && err != nil {
				fmt.Fprintf(os.Stderr, "Warning: watcher error: %v\n", err)
			}

		case path, ok := <-paths:
			if !ok {
				return nil
			}
			if err := limiter.Wait(ctx); err != nil {
				return nil
			}

			result := p.Process(ctx, path)
			if err := recordHistory(ctx, cfg, result); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}

			marker := "✓"
			if result.Status == model.StatusFailed {
				marker = "✗"
			}
			fmt.Fprintf(os.Stderr, "%s %s → %s (%s)\n", marker, path, result.RecommendedRoute, result.Reasoning)
		}
	}
}
