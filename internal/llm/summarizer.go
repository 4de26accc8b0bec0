package llm

import (
	"context"
	"strings"
	"time"

	"github.com/ZenithArcX/Synapx/internal/model"
)

// Summarizer generates optional claim narratives. It runs after routing
// and its output never feeds back into the decision.
type Summarizer struct {
	provider  Provider
	maxTokens int
	timeout   time.Duration
}

// NewSummarizer creates a summarizer from configuration. Returns nil (no
// error) when no provider is configured.
func NewSummarizer(cfg model.LLMConfig) (*Summarizer, error) {
	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1000
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Summarizer{
		provider:  provider,
		maxTokens: maxTokens,
		timeout:   timeout,
	}, nil
}

// Summarize generates a narrative for a processed claim
func (s *Summarizer) Summarize(ctx context.Context, result *model.ClaimResult) (*model.ClaimSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.provider.Complete(ctx, BuildPrompt(result), s.maxTokens)
	if err != nil {
		return nil, err
	}

	summary := &model.ClaimSummary{
		Provider:  s.provider.Name(),
		Model:     s.provider.Model(),
		SummaryMD: text,
	}

	// A well-behaved summary restates the route; a contradicting one is
	// worth flagging for the adjuster.
	if !strings.Contains(text, string(result.RecommendedRoute)) {
		summary.Warnings = append(summary.Warnings, "summary does not mention the recommended route")
	}

	return summary, nil
}
