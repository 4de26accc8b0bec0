package model

import (
	"reflect"
	"testing"
)

func TestExtractedFields_AbsenceVsEmpty(t *testing.T) {
	fields := NewExtractedFields()

	if fields.Has(FieldPolicyNumber) {
		t.Error("fresh field set should have no fields")
	}
	if _, ok := fields.Get(FieldPolicyNumber); ok {
		t.Error("Get on absent field should report !ok")
	}

	fields.Set(FieldPolicyNumber, "")
	if !fields.Has(FieldPolicyNumber) {
		t.Error("an empty value is still a present field")
	}
	v, ok := fields.Get(FieldPolicyNumber)
	if !ok || v != "" {
		t.Errorf("Get = %q, %v", v, ok)
	}
}

func TestExtractedFields_ClaimType(t *testing.T) {
	fields := NewExtractedFields()
	if fields.ClaimType() != "" {
		t.Errorf("absent claim type = %q", fields.ClaimType())
	}

	fields.Set(FieldClaimType, "Bodily Injury")
	if fields.ClaimType() != "bodily injury" {
		t.Errorf("claim type = %q", fields.ClaimType())
	}
}

func TestExtractedFields_Visible(t *testing.T) {
	fields := NewExtractedFields()
	fields.Set(FieldPolicyNumber, "ABC123")
	fields.Set(FieldClaimType, "Auto")
	fields.DamageValue = 5000

	visible := fields.Visible()
	want := map[string]string{
		"policy_number": "ABC123",
		"claim_type":    "Auto",
	}
	if !reflect.DeepEqual(visible, want) {
		t.Errorf("visible = %v, want %v", visible, want)
	}

	// Mutating the copy must not touch the field set
	visible["policy_number"] = "changed"
	if v, _ := fields.Get(FieldPolicyNumber); v != "ABC123" {
		t.Errorf("field set mutated through visible copy: %q", v)
	}
}

func TestMandatoryFieldNames(t *testing.T) {
	names := MandatoryFieldNames()
	want := []string{
		"policy_number",
		"policyholder_name",
		"incident_date",
		"incident_location",
		"claim_type",
		"estimated_damage",
	}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
}

func TestAllRoutes(t *testing.T) {
	routes := AllRoutes()
	if len(routes) != 5 {
		t.Fatalf("expected 5 routes, got %d", len(routes))
	}
	seen := make(map[Route]bool)
	for _, r := range routes {
		if seen[r] {
			t.Errorf("duplicate route %s", r)
		}
		seen[r] = true
	}
	for _, r := range []Route{RouteFastTrack, RouteStandardReview, RouteManualReview, RouteInvestigation, RouteSpecialist} {
		if !seen[r] {
			t.Errorf("route %s missing from AllRoutes", r)
		}
	}
}
