package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ZenithArcX/Synapx/internal/model"
)

func testPipeline() *Pipeline {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	return NewPipeline(cfg)
}

const cleanClaim = `FIRST NOTICE OF LOSS
POLICY NUMBER: ABC123
NAME OF INSURED: Jane Doe
DATE OF LOSS: 01/02/2024
LOCATION OF LOSS: 123 Main St
CLAIM TYPE: Auto
ESTIMATED DAMAGE: $5,000
`

func TestPipeline_CleanClaimFastTracks(t *testing.T) {
	p := testPipeline()

	result := p.ProcessText(context.Background(), cleanClaim)
	if result.Status != model.StatusSuccess {
		t.Fatalf("expected SUCCESS, got %s (error %q)", result.Status, result.Error)
	}
	if result.RecommendedRoute != model.RouteFastTrack {
		t.Errorf("expected FAST_TRACK, got %s (%s)", result.RecommendedRoute, result.Reasoning)
	}
	if len(result.MissingFields) != 0 {
		t.Errorf("expected no missing fields, got %v", result.MissingFields)
	}
	if len(result.FraudIndicators) != 0 {
		t.Errorf("expected no fraud indicators, got %v", result.FraudIndicators)
	}
	if result.ExtractedFields["policy_number"] != "ABC123" {
		t.Errorf("policy_number = %q", result.ExtractedFields["policy_number"])
	}
	if result.ProcessedAt.IsZero() {
		t.Error("processed_at should be set")
	}
}

func TestPipeline_InjuryClaimGoesToSpecialist(t *testing.T) {
	p := testPipeline()

	text := strings.Replace(cleanClaim, "CLAIM TYPE: Auto", "CLAIM TYPE: Bodily Injury", 1)
	result := p.ProcessText(context.Background(), text)
	if result.RecommendedRoute != model.RouteSpecialist {
		t.Errorf("expected SPECIALIST_QUEUE, got %s (%s)", result.RecommendedRoute, result.Reasoning)
	}
}

func TestPipeline_MissingPolicyNumberForcesManualReview(t *testing.T) {
	p := testPipeline()

	text := strings.Replace(cleanClaim, "POLICY NUMBER: ABC123\n", "", 1)
	result := p.ProcessText(context.Background(), text)
	if result.RecommendedRoute != model.RouteManualReview {
		t.Fatalf("expected MANUAL_REVIEW, got %s (%s)", result.RecommendedRoute, result.Reasoning)
	}
	if !reflect.DeepEqual(result.MissingFields, []string{"policy_number"}) {
		t.Errorf("missing fields = %v, want [policy_number]", result.MissingFields)
	}
	if !strings.Contains(result.Reasoning, "policy_number") {
		t.Errorf("reasoning should mention policy_number, got %q", result.Reasoning)
	}
}

func TestPipeline_FraudKeywordFlagsInvestigation(t *testing.T) {
	p := testPipeline()

	text := cleanClaim + "DESCRIPTION: The collision appears staged.\n"
	result := p.ProcessText(context.Background(), text)
	if result.RecommendedRoute != model.RouteInvestigation {
		t.Fatalf("expected INVESTIGATION_FLAG, got %s (%s)", result.RecommendedRoute, result.Reasoning)
	}
	if !reflect.DeepEqual(result.FraudIndicators, []string{"staged"}) {
		t.Errorf("fraud indicators = %v, want [staged]", result.FraudIndicators)
	}
}

func TestPipeline_HighDamageStandardReview(t *testing.T) {
	p := testPipeline()

	text := strings.Replace(cleanClaim, "$5,000", "$85,000", 1)
	result := p.ProcessText(context.Background(), text)
	if result.RecommendedRoute != model.RouteStandardReview {
		t.Errorf("expected STANDARD_REVIEW, got %s (%s)", result.RecommendedRoute, result.Reasoning)
	}
}

func TestPipeline_UnreadableDocumentFails(t *testing.T) {
	p := testPipeline()

	result := p.Process(context.Background(), filepath.Join(t.TempDir(), "does-not-exist.txt"))
	if result.Status != model.StatusFailed {
		t.Fatalf("expected FAILED, got %s", result.Status)
	}
	if result.RecommendedRoute != model.RouteManualReview {
		t.Errorf("failed claims must route to MANUAL_REVIEW, got %s", result.RecommendedRoute)
	}
	if result.Error == "" {
		t.Error("error message should be populated")
	}
	if !reflect.DeepEqual(result.MissingFields, model.MandatoryFieldNames()) {
		t.Errorf("failed claims report all mandatory fields missing, got %v", result.MissingFields)
	}
	if len(result.ExtractedFields) != 0 {
		t.Errorf("failed claims carry no extracted fields, got %v", result.ExtractedFields)
	}
}

func TestPipeline_ProcessTextFile(t *testing.T) {
	p := testPipeline()

	path := filepath.Join(t.TempDir(), "claim.txt")
	if err := os.WriteFile(path, []byte(cleanClaim), 0o644); err != nil {
		t.Fatal(err)
	}

	result := p.Process(context.Background(), path)
	if result.Status != model.StatusSuccess {
		t.Fatalf("expected SUCCESS, got %s (error %q)", result.Status, result.Error)
	}
	if result.DocumentPath != path {
		t.Errorf("document path = %q, want %q", result.DocumentPath, path)
	}
	if result.RecommendedRoute != model.RouteFastTrack {
		t.Errorf("expected FAST_TRACK, got %s", result.RecommendedRoute)
	}
}

func TestPipeline_ProcessFields(t *testing.T) {
	p := testPipeline()

	fields := model.NewExtractedFields()
	fields.Set(model.FieldPolicyNumber, "POL-9")
	fields.Set(model.FieldPolicyholderName, "Sam Lee")
	fields.Set(model.FieldIncidentDate, "03/04/2025")
	fields.Set(model.FieldIncidentLocation, "Oak Avenue")
	fields.Set(model.FieldClaimType, "Auto")
	fields.Set(model.FieldEstimatedDamage, "2000")
	fields.DamageValue = 2000

	result := p.ProcessFields(context.Background(), fields, "rear ended at a red light")
	if result.RecommendedRoute != model.RouteFastTrack {
		t.Errorf("expected FAST_TRACK, got %s (%s)", result.RecommendedRoute, result.Reasoning)
	}

	result = p.ProcessFields(context.Background(), fields, "witness says the crash was staged")
	if result.RecommendedRoute != model.RouteInvestigation {
		t.Errorf("expected INVESTIGATION_FLAG, got %s (%s)", result.RecommendedRoute, result.Reasoning)
	}
}
