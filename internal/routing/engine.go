package routing

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ZenithArcX/Synapx/internal/model"
)

// FastTrackThreshold is the damage amount (in currency units) at or above
// which a claim leaves the fast-track path.
const FastTrackThreshold = 25000

// currency renders amounts with thousands grouping ("$25,000.00")
var currency = message.NewPrinter(language.AmericanEnglish)

// Engine recommends a processing queue for a claim.
//
// The rule chain is ordered and the first matching rule wins:
//  1. missing mandatory fields -> MANUAL_REVIEW
//  2. fraud indicators         -> INVESTIGATION_FLAG
//  3. injury claim type        -> SPECIALIST_QUEUE
//  4. damage below threshold   -> FAST_TRACK, else STANDARD_REVIEW
type Engine struct{}

// NewEngine creates a new routing engine
func NewEngine() *Engine {
	return &Engine{}
}

// Route determines the recommended route for a claim. It is total over its
// inputs: every combination yields exactly one of the five routes.
func (e *Engine) Route(fields model.ExtractedFields, missing []model.FieldName, fraud []string) model.RoutingDecision {
	if len(missing) > 0 {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = string(f)
		}
		return model.RoutingDecision{
			Route:     model.RouteManualReview,
			Reasoning: "Missing mandatory fields: " + strings.Join(names, ", "),
		}
	}

	if len(fraud) > 0 {
		return model.RoutingDecision{
			Route:     model.RouteInvestigation,
			Reasoning: "Potential fraud indicators detected: " + strings.Join(fraud, ", "),
		}
	}

	claimType := fields.ClaimType()
	if strings.Contains(claimType, "injury") || strings.Contains(claimType, "bodily") || strings.Contains(claimType, "personal") {
		return model.RoutingDecision{
			Route:     model.RouteSpecialist,
			Reasoning: "Claim type requires specialist handling (injury/bodily harm involved)",
		}
	}

	if fields.DamageValue < FastTrackThreshold {
		return model.RoutingDecision{
			Route: model.RouteFastTrack,
			Reasoning: currency.Sprintf("Low damage amount ($%.2f < $%d). Eligible for expedited processing.",
				fields.DamageValue, FastTrackThreshold),
		}
	}

	return model.RoutingDecision{
		Route: model.RouteStandardReview,
		Reasoning: currency.Sprintf("High damage amount ($%.2f >= $%d). Requires standard review.",
			fields.DamageValue, FastTrackThreshold),
	}
}
