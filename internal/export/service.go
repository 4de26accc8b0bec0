package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ZenithArcX/Synapx/internal/history"
	"github.com/ZenithArcX/Synapx/internal/model"
)

// Service produces XLSX workbooks from the routing history
type Service struct {
	store *history.Store
}

// NewService creates an export service over the given history store
func NewService(store *history.Store) *Service {
	return &Service{store: store}
}

const sheetName = "Routing History"

// HistoryXLSX renders the routing history (newest first) as an XLSX
// workbook and returns its bytes. limit <= 0 exports everything.
func (s *Service) HistoryXLSX(ctx context.Context, limit int) ([]byte, error) {
	entries, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	f := excelize.NewFile()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	headers := []string{
		"Processed At",
		"Document",
		"Status",
		"Route",
		"Reasoning",
		"Missing Fields",
		"Fraud Indicators",
		"Policy Number",
		"Claim Type",
		"Estimated Damage",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for row, e := range entries {
		values := []any{
			e.ProcessedAt.Format("2006-01-02 15:04:05"),
			e.DocumentPath,
			string(e.Status),
			string(e.Route),
			e.Reasoning,
			strings.Join(e.MissingFields, ", "),
			strings.Join(e.FraudIndicators, ", "),
			e.ExtractedFields[string(model.FieldPolicyNumber)],
			e.ExtractedFields[string(model.FieldClaimType)],
			e.ExtractedFields[string(model.FieldEstimatedDamage)],
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row+2, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return buf.Bytes(), nil
}
