package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ZenithArcX/Synapx/internal/history"
	"github.com/ZenithArcX/Synapx/internal/pipeline"
	"github.com/ZenithArcX/Synapx/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the claims processing HTTP API",
	Long: `Serve exposes claim processing over HTTP:
  POST /api/claims/process       multipart document upload
  POST /api/claims/process-form  manually entered claim fields (JSON)
  GET  /api/claims/history       recent routing decisions
  GET  /healthz                  liveness probe

Example:
  synapx serve
  synapx serve --addr :9090 --history`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default :8080)")
	serveCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the parsed-text cache")
	serveCmd.Flags().BoolVar(&historyOn, "history", false, "record decisions in the routing history")
	serveCmd.Flags().StringVar(&historyPath, "history-path", "", "routing history database path")
	serveCmd.Flags().StringVar(&llmProvider, "llm", "", "LLM provider for claim summaries (openai, ollama)")
	serveCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	serveCmd.Flags().StringVar(&llmBaseURL, "llm-base-url", "", "LLM base URL")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.NewStore(cfg.History.Path)
		if err != nil {
			return fmt.Errorf("open routing history: %w", err)
		}
		defer func() { _ = store.Close() }()
	}

	p := pipeline.NewPipeline(cfg)
	srv := server.New(p, store, cfg.Server)

	fmt.Fprintf(os.Stderr, "⚙️  Listening on %s\n", cfg.Server.Addr)

	if err := srv.ListenAndServe(ctx); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Stopped.\n")
	return nil
}
