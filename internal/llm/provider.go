package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ZenithArcX/Synapx/internal/model"
)

// Provider defines the interface for LLM backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Model returns the effective chat model, after any defaulting
	Model() string

	// Complete generates a completion for the given prompt
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// NewProvider creates a provider from configuration. An empty provider
// name means the summarizer is disabled.
func NewProvider(cfg model.LLMConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai", "ollama":
		// Ollama is served through its OpenAI-compatible endpoint
		return NewOpenAIProvider(cfg)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", cfg.Provider)
	}
}

// BuildPrompt constructs the claim-summary prompt. The summary is a
// narrative aid for adjusters; the prompt forbids the model from
// second-guessing the deterministic routing decision.
func BuildPrompt(result *model.ClaimResult) string {
	var b strings.Builder

	b.WriteString("You are summarizing a First-Notice-of-Loss insurance claim for an adjuster.\n\n")
	b.WriteString("RULES:\n")
	b.WriteString("1. Describe only the fields listed below. Do not invent details.\n")
	b.WriteString("2. The routing decision is final and rule-based. Do not suggest a different route.\n")
	b.WriteString("3. Keep the summary under 150 words, in Markdown.\n\n")

	b.WriteString("EXTRACTED FIELDS:\n")
	names := make([]string, 0, len(result.ExtractedFields))
	for name := range result.ExtractedFields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "- %s: %s\n", name, result.ExtractedFields[name])
	}

	if len(result.MissingFields) > 0 {
		fmt.Fprintf(&b, "\nMISSING FIELDS: %s\n", strings.Join(result.MissingFields, ", "))
	}
	if len(result.FraudIndicators) > 0 {
		fmt.Fprintf(&b, "\nFRAUD INDICATORS: %s\n", strings.Join(result.FraudIndicators, ", "))
	}

	fmt.Fprintf(&b, "\nROUTING: %s - %s\n", result.RecommendedRoute, result.Reasoning)

	return b.String()
}
