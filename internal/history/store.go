package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ZenithArcX/Synapx/internal/model"
)

// Entry is one recorded routing decision
type Entry struct {
	ID              int64
	DocumentPath    string
	Status          model.Status
	Route           model.Route
	Reasoning       string
	MissingFields   []string
	FraudIndicators []string
	ExtractedFields map[string]string
	ProcessedAt     time.Time
}

// Store persists routing history to SQLite. The processing core is
// stateless; the store is an external record for audits and exports.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the history database. An empty path
// defaults to ~/.synapx/history.db.
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("find home directory: %w", err)
		}
		path = filepath.Join(home, ".synapx", "history.db")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS routing_history (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			document_path    TEXT NOT NULL,
			status           TEXT NOT NULL,
			route            TEXT NOT NULL,
			reasoning        TEXT NOT NULL,
			missing_fields   TEXT NOT NULL,
			fraud_indicators TEXT NOT NULL,
			extracted_fields TEXT NOT NULL,
			processed_at     TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_routing_history_route ON routing_history(route);
		CREATE INDEX IF NOT EXISTS idx_routing_history_processed_at ON routing_history(processed_at);
	`)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Record stores one claim result
func (s *Store) Record(ctx context.Context, result *model.ClaimResult) error {
	missing, err := json.Marshal(result.MissingFields)
	if err != nil {
		return fmt.Errorf("marshal missing fields: %w", err)
	}
	indicators, err := json.Marshal(result.FraudIndicators)
	if err != nil {
		return fmt.Errorf("marshal fraud indicators: %w", err)
	}
	extracted, err := json.Marshal(result.ExtractedFields)
	if err != nil {
		return fmt.Errorf("marshal extracted fields: %w", err)
	}

	processedAt := result.ProcessedAt
	if processedAt.IsZero() {
		processedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO routing_history
			(document_path, status, route, reasoning, missing_fields, fraud_indicators, extracted_fields, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		result.DocumentPath, string(result.Status), string(result.RecommendedRoute),
		result.Reasoning, string(missing), string(indicators), string(extracted), processedAt,
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}

	return nil
}

// List returns the most recent entries, newest first. limit <= 0 returns
// everything.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `
		SELECT id, document_path, status, route, reasoning,
		       missing_fields, fraud_indicators, extracted_fields, processed_at
		FROM routing_history
		ORDER BY processed_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var status, route, missing, indicators, extracted string
		if err := rows.Scan(&e.ID, &e.DocumentPath, &status, &route, &e.Reasoning,
			&missing, &indicators, &extracted, &e.ProcessedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		e.Status = model.Status(status)
		e.Route = model.Route(route)
		if err := json.Unmarshal([]byte(missing), &e.MissingFields); err != nil {
			return nil, fmt.Errorf("unmarshal missing fields: %w", err)
		}
		if err := json.Unmarshal([]byte(indicators), &e.FraudIndicators); err != nil {
			return nil, fmt.Errorf("unmarshal fraud indicators: %w", err)
		}
		if err := json.Unmarshal([]byte(extracted), &e.ExtractedFields); err != nil {
			return nil, fmt.Errorf("unmarshal extracted fields: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// CountByRoute returns how many entries landed in each route
func (s *Store) CountByRoute(ctx context.Context) (map[model.Route]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT route, COUNT(*) FROM routing_history GROUP BY route`)
	if err != nil {
		return nil, fmt.Errorf("count by route: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[model.Route]int)
	for rows.Next() {
		var route string
		var count int
		if err := rows.Scan(&route, &count); err != nil {
			return nil, fmt.Errorf("scan route count: %w", err)
		}
		counts[model.Route(route)] = count
	}

	return counts, rows.Err()
}
