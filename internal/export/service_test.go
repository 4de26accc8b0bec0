package export

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ZenithArcX/Synapx/internal/history"
	"github.com/ZenithArcX/Synapx/internal/model"
)

func seededStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.NewStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	results := []*model.ClaimResult{
		{
			Status:           model.StatusSuccess,
			DocumentPath:     "a.pdf",
			ProcessedAt:      time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
			ExtractedFields:  map[string]string{"policy_number": "P1", "claim_type": "Auto", "estimated_damage": "5,000"},
			MissingFields:    []string{},
			FraudIndicators:  []string{},
			RecommendedRoute: model.RouteFastTrack,
			Reasoning:        "low damage",
		},
		{
			Status:           model.StatusSuccess,
			DocumentPath:     "b.pdf",
			ProcessedAt:      time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
			ExtractedFields:  map[string]string{"policy_number": "P2"},
			MissingFields:    []string{"claim_type"},
			FraudIndicators:  []string{"staged"},
			RecommendedRoute: model.RouteManualReview,
			Reasoning:        "missing fields",
		},
	}
	for _, r := range results {
		if err := store.Record(context.Background(), r); err != nil {
			t.Fatal(err)
		}
	}
	return store
}

func TestHistoryXLSX(t *testing.T) {
	service := NewService(seededStore(t))

	data, err := service.HistoryXLSX(context.Background(), 0)
	if err != nil {
		t.Fatalf("HistoryXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Routing History")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}

	if rows[0][0] != "Processed At" || rows[0][3] != "Route" {
		t.Errorf("unexpected header row: %v", rows[0])
	}

	// Newest entry first
	if rows[1][1] != "b.pdf" || rows[1][3] != "MANUAL_REVIEW" {
		t.Errorf("first data row = %v", rows[1])
	}
	if rows[1][6] != "staged" {
		t.Errorf("fraud indicators cell = %q", rows[1][6])
	}
	if rows[2][1] != "a.pdf" || rows[2][7] != "P1" {
		t.Errorf("second data row = %v", rows[2])
	}
}

func TestHistoryXLSX_EmptyHistory(t *testing.T) {
	store, err := history.NewStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = store.Close() }()

	data, err := NewService(store).HistoryXLSX(context.Background(), 0)
	if err != nil {
		t.Fatalf("HistoryXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Routing History")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("expected header only, got %d rows", len(rows))
	}
}
