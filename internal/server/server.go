package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ZenithArcX/Synapx/internal/extract"
	"github.com/ZenithArcX/Synapx/internal/history"
	"github.com/ZenithArcX/Synapx/internal/model"
	"github.com/ZenithArcX/Synapx/internal/pipeline"
	"github.com/ZenithArcX/Synapx/internal/worker"
)

// Server exposes claim processing over HTTP. The pipeline is the external
// caller's view of the core; the server is thin glue around it.
type Server struct {
	router   chi.Router
	pipeline *pipeline.Pipeline
	store    *history.Store // nil when history is disabled
	limiter  *worker.Limiter
	cfg      model.ServerConfig
}

// New creates a server. store may be nil.
func New(p *pipeline.Pipeline, store *history.Store, cfg model.ServerConfig) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		pipeline: p,
		store:    store,
		limiter:  worker.NewLimiter(cfg.RequestsPerSecond, cfg.Burst),
		cfg:      cfg,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs the server until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) routes() {
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.rateLimit)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Route("/api/claims", func(r chi.Router) {
		r.Post("/process", s.handleProcess)
		r.Post("/process-form", s.handleProcessForm)
		r.Get("/history", s.handleHistory)
	})
}

// rateLimit applies a per-client token bucket
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			key = host
		}
		if !s.limiter.AllowKey(key) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleProcess accepts a multipart document upload and runs the full
// pipeline on it.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer func() { _ = file.Close() }()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "empty filename")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !s.pipeline.Source().Supported(header.Filename) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported file format: %s", ext))
		return
	}

	// The pipeline reads from the filesystem, so stage the upload in a
	// temp file with the original extension.
	tmp, err := os.CreateTemp("", "synapx-upload-*"+ext)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "stage upload")
		return
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.ReadFrom(file); err != nil {
		_ = tmp.Close()
		writeError(w, http.StatusBadRequest, "read upload")
		return
	}
	if err := tmp.Close(); err != nil {
		writeError(w, http.StatusInternalServerError, "stage upload")
		return
	}

	result := s.pipeline.Process(r.Context(), tmpPath)
	// The temp path is meaningless to the caller
	result.DocumentPath = header.Filename

	s.record(r.Context(), result)
	writeJSON(w, http.StatusOK, result)
}

// formRequest is the manual-entry payload
type formRequest struct {
	PolicyNumber     string `json:"policy_number"`
	PolicyholderName string `json:"policyholder_name"`
	IncidentDate     string `json:"incident_date"`
	IncidentLocation string `json:"incident_location"`
	ClaimType        string `json:"claim_type"`
	EstimatedDamage  string `json:"estimated_damage"`
	VehicleVIN       string `json:"vehicle_vin"`
	Description      string `json:"accident_description"`
}

// handleProcessForm routes manually entered claim data. Fields go
// straight to validation and routing; only the accident description is
// scanned for fraud indicators.
func (s *Server) handleProcessForm(w http.ResponseWriter, r *http.Request) {
	var req formRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	fields := model.NewExtractedFields()
	setField := func(name model.FieldName, value string) {
		if strings.TrimSpace(value) != "" {
			fields.Set(name, strings.TrimSpace(value))
		}
	}
	setField(model.FieldPolicyNumber, req.PolicyNumber)
	setField(model.FieldPolicyholderName, req.PolicyholderName)
	setField(model.FieldIncidentDate, req.IncidentDate)
	setField(model.FieldIncidentLocation, req.IncidentLocation)
	setField(model.FieldClaimType, req.ClaimType)
	setField(model.FieldEstimatedDamage, req.EstimatedDamage)
	setField(model.FieldVehicleVIN, req.VehicleVIN)
	setField(model.FieldDescription, req.Description)
	fields.DamageValue = extract.NormalizeDamage(req.EstimatedDamage)

	result := s.pipeline.ProcessFields(r.Context(), fields, req.Description)
	s.record(r.Context(), result)
	writeJSON(w, http.StatusOK, result)
}

// handleHistory returns recent routing decisions
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "routing history is disabled")
		return
	}

	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	entries, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "query history")
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) record(ctx context.Context, result *model.ClaimResult) {
	if s.store == nil {
		return
	}
	if err := s.store.Record(ctx, result); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record routing history: %v\n", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
