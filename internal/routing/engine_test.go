package routing

import (
	"strings"
	"testing"

	"github.com/ZenithArcX/Synapx/internal/model"
)

func fieldsWith(claimType string, damage float64) model.ExtractedFields {
	fields := model.NewExtractedFields()
	fields.Set(model.FieldClaimType, claimType)
	fields.DamageValue = damage
	return fields
}

func TestEngine_MissingFieldsWinOverEverything(t *testing.T) {
	engine := NewEngine()

	decision := engine.Route(
		fieldsWith("Bodily Injury", 50000),
		[]model.FieldName{model.FieldPolicyNumber},
		[]string{"fraud"},
	)
	if decision.Route != model.RouteManualReview {
		t.Errorf("expected MANUAL_REVIEW, got %s", decision.Route)
	}
	if !strings.Contains(decision.Reasoning, "policy_number") {
		t.Errorf("reasoning should name the missing field, got %q", decision.Reasoning)
	}
}

func TestEngine_MissingFieldsListsAll(t *testing.T) {
	engine := NewEngine()

	decision := engine.Route(model.NewExtractedFields(),
		[]model.FieldName{model.FieldPolicyNumber, model.FieldIncidentDate}, nil)
	if decision.Route != model.RouteManualReview {
		t.Fatalf("expected MANUAL_REVIEW, got %s", decision.Route)
	}
	want := "Missing mandatory fields: policy_number, incident_date"
	if decision.Reasoning != want {
		t.Errorf("reasoning = %q, want %q", decision.Reasoning, want)
	}
}

func TestEngine_FraudBeatsInjuryAndDamage(t *testing.T) {
	engine := NewEngine()

	decision := engine.Route(fieldsWith("Bodily Injury", 100), nil, []string{"staged", "suspicious"})
	if decision.Route != model.RouteInvestigation {
		t.Errorf("expected INVESTIGATION_FLAG, got %s", decision.Route)
	}
	if !strings.Contains(decision.Reasoning, "staged, suspicious") {
		t.Errorf("reasoning should list the indicators, got %q", decision.Reasoning)
	}
}

func TestEngine_InjuryClaimTypes(t *testing.T) {
	engine := NewEngine()

	for _, claimType := range []string{"Bodily Injury", "personal injury", "INJURY", "Personal Liability"} {
		decision := engine.Route(fieldsWith(claimType, 500), nil, nil)
		if decision.Route != model.RouteSpecialist {
			t.Errorf("claim type %q: expected SPECIALIST_QUEUE, got %s", claimType, decision.Route)
		}
	}
}

func TestEngine_DamageThreshold(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		damage float64
		want   model.Route
	}{
		{0, model.RouteFastTrack},
		{5000, model.RouteFastTrack},
		{24999.99, model.RouteFastTrack},
		{25000, model.RouteStandardReview},
		{25000.01, model.RouteStandardReview},
		{1000000, model.RouteStandardReview},
	}
	for _, tc := range tests {
		decision := engine.Route(fieldsWith("Auto", tc.damage), nil, nil)
		if decision.Route != tc.want {
			t.Errorf("damage %.2f: expected %s, got %s", tc.damage, tc.want, decision.Route)
		}
	}
}

func TestEngine_ReasoningFormatsCurrency(t *testing.T) {
	engine := NewEngine()

	decision := engine.Route(fieldsWith("Auto", 5000), nil, nil)
	if !strings.Contains(decision.Reasoning, "$5,000.00") {
		t.Errorf("low reasoning should carry grouped amount, got %q", decision.Reasoning)
	}
	if !strings.Contains(decision.Reasoning, "$25,000") {
		t.Errorf("low reasoning should carry the threshold, got %q", decision.Reasoning)
	}

	decision = engine.Route(fieldsWith("Auto", 30000), nil, nil)
	if !strings.Contains(decision.Reasoning, "$30,000.00") {
		t.Errorf("high reasoning should carry grouped amount, got %q", decision.Reasoning)
	}
}

func TestEngine_NoClaimTypeStillRoutes(t *testing.T) {
	engine := NewEngine()

	fields := model.NewExtractedFields()
	fields.DamageValue = 100
	decision := engine.Route(fields, nil, nil)
	if decision.Route != model.RouteFastTrack {
		t.Errorf("expected FAST_TRACK, got %s", decision.Route)
	}
}
