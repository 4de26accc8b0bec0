package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ZenithArcX/Synapx/internal/cache"
	"github.com/ZenithArcX/Synapx/internal/extract"
	"github.com/ZenithArcX/Synapx/internal/fraud"
	"github.com/ZenithArcX/Synapx/internal/llm"
	"github.com/ZenithArcX/Synapx/internal/model"
	"github.com/ZenithArcX/Synapx/internal/routing"
	"github.com/ZenithArcX/Synapx/internal/validate"
)

// Pipeline orchestrates the complete claim processing flow:
// text acquisition -> extraction -> validation + fraud scan -> routing.
type Pipeline struct {
	source     *DocumentSource
	extractor  *extract.Extractor
	validator  *validate.Validator
	scanner    *fraud.Scanner
	router     *routing.Engine
	summarizer *llm.Summarizer // nil when disabled
	config     *model.Config
}

// NewPipeline creates a pipeline from the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	var c cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			dir = defaultCacheDir()
		}
		c = cache.NewLayeredCache(cfg.Cache.TTL, dir, cfg.Cache.TTL)
	}

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(cfg.LLM)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		source:     NewDocumentSource(cfg.Intake.Extensions, cfg.Intake.MaxFileBytes, c, cfg.Cache.TTL),
		extractor:  extract.NewExtractor(),
		validator:  validate.NewValidator(),
		scanner:    fraud.NewScanner(),
		router:     routing.NewEngine(),
		summarizer: summarizer,
		config:     cfg,
	}
}

// Source exposes the document source for extension checks
func (p *Pipeline) Source() *DocumentSource {
	return p.source
}

// Process handles a single claim document. It always returns a well-formed
// result: an unreadable document yields a FAILED result forced to manual
// review rather than an error, so a claim is never silently dropped or
// auto-fast-tracked.
func (p *Pipeline) Process(ctx context.Context, path string) *model.ClaimResult {
	text, err := p.source.Text(path)
	if err != nil {
		return failedResult(path, err)
	}
	result := p.ProcessText(ctx, text)
	result.DocumentPath = path
	return result
}

// ProcessText runs the core over already-acquired document text
func (p *Pipeline) ProcessText(ctx context.Context, text string) *model.ClaimResult {
	fields := p.extractor.Extract(text)

	// Validation and the fraud scan are independent of each other;
	// both feed the routing decision.
	missing := p.validator.Validate(fields)
	indicators := p.scanner.Scan(text)

	decision := p.router.Route(fields, missing, indicators)

	result := &model.ClaimResult{
		Status:           model.StatusSuccess,
		ProcessedAt:      time.Now().UTC(),
		ExtractedFields:  fields.Visible(),
		MissingFields:    fieldNames(missing),
		FraudIndicators:  emptyIfNil(indicators),
		RecommendedRoute: decision.Route,
		Reasoning:        decision.Reasoning,
	}

	// The summary is generated after routing and never changes it.
	if p.summarizer != nil {
		summary, err := p.summarizer.Summarize(ctx, result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: claim summary generation failed: %v\n", err)
		} else {
			result.Summary = summary
		}
	}

	return result
}

// ProcessFields routes claim data that arrived as discrete fields rather
// than a document (the manual-entry form). Only the accident description
// is scanned for fraud indicators.
func (p *Pipeline) ProcessFields(ctx context.Context, fields model.ExtractedFields, description string) *model.ClaimResult {
	missing := p.validator.Validate(fields)
	indicators := p.scanner.Scan(description)
	decision := p.router.Route(fields, missing, indicators)

	return &model.ClaimResult{
		Status:           model.StatusSuccess,
		ProcessedAt:      time.Now().UTC(),
		ExtractedFields:  fields.Visible(),
		MissingFields:    fieldNames(missing),
		FraudIndicators:  emptyIfNil(indicators),
		RecommendedRoute: decision.Route,
		Reasoning:        decision.Reasoning,
	}
}

// failedResult builds the fixed failure shape: empty fields, the full
// mandatory set reported missing, and forced manual review.
func failedResult(path string, err error) *model.ClaimResult {
	return &model.ClaimResult{
		Status:           model.StatusFailed,
		DocumentPath:     path,
		Error:            err.Error(),
		ProcessedAt:      time.Now().UTC(),
		ExtractedFields:  map[string]string{},
		MissingFields:    model.MandatoryFieldNames(),
		FraudIndicators:  []string{},
		RecommendedRoute: model.RouteManualReview,
		Reasoning:        fmt.Sprintf("Document parsing failed: %v", err),
	}
}

func fieldNames(fields []model.FieldName) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".synapx-cache"
	}
	return home + "/.synapx/cache"
}
