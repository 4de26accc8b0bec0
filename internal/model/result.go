package model

import "time"

// Route is a claim processing queue recommendation
type Route string

const (
	RouteFastTrack      Route = "FAST_TRACK"      // Expedited low-value processing
	RouteStandardReview Route = "STANDARD_REVIEW" // Regular adjuster review
	RouteManualReview   Route = "MANUAL_REVIEW"   // Incomplete or unreadable claims
	RouteInvestigation  Route = "INVESTIGATION_FLAG"
	RouteSpecialist     Route = "SPECIALIST_QUEUE"
)

// AllRoutes lists every possible route
func AllRoutes() []Route {
	return []Route{
		RouteFastTrack,
		RouteStandardReview,
		RouteManualReview,
		RouteInvestigation,
		RouteSpecialist,
	}
}

// Status indicates whether a document made it through the pipeline
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// RoutingDecision pairs a route with the reasoning behind it
type RoutingDecision struct {
	Route     Route  `json:"recommendedRoute"`
	Reasoning string `json:"reasoning"`
}

// ClaimResult is the complete outcome for one processed document.
// Built once by the pipeline and never mutated afterward.
type ClaimResult struct {
	Status       Status    `json:"status"`
	DocumentPath string    `json:"document_path,omitempty"`
	Error        string    `json:"error,omitempty"`
	ProcessedAt  time.Time `json:"processed_at"`

	// ExtractedFields holds present values only; internal derived
	// values are stripped before the result is built.
	ExtractedFields map[string]string `json:"extractedFields"`
	MissingFields   []string          `json:"missingFields"`
	FraudIndicators []string          `json:"fraudIndicators"`

	RecommendedRoute Route  `json:"recommendedRoute"`
	Reasoning        string `json:"reasoning"`

	// Summary is an optional LLM-generated narrative. It is produced
	// after routing and never influences the decision.
	Summary *ClaimSummary `json:"summary,omitempty"`
}

// ClaimSummary contains an optional LLM-generated claim narrative
type ClaimSummary struct {
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}
