package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"expenditure-decile/core/lookup"
	"expenditure-decile/internal/errors"
	"expenditure-decile/internal/logging"
)

// Server is the API server
type Server struct {
	loader  *lookup.Loader
	mux     *http.ServeMux
	version string
}

// NewServer creates an API server answering lookups against the table
// behind the loader.
func NewServer(version string, loader *lookup.Loader) *Server {
	s := &Server{
		loader:  loader,
		mux:     http.NewServeMux(),
		version: version,
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /lookup", s.handleLookup)
	s.mux.HandleFunc("GET /boundaries", s.handleBoundaries)
	s.mux.HandleFunc("GET /categories", s.handleCategories)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// handleLookup handles POST /lookup
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	engine, err := s.loader.Engine()
	if err != nil {
		logging.Error("loading boundary table", zap.Error(err))
		s.writeError(w, "TABLE_ERROR", "boundary table unavailable", http.StatusServiceUnavailable)
		return
	}

	results, err := executeLookup(engine, &req)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	resp := &LookupResponse{
		Results: results,
		Metadata: &ResponseMetadata{
			RequestID:     uuid.NewString(),
			InputHash:     computeInputHash(&req),
			EngineVersion: s.version,
			DurationMs:    time.Since(start).Milliseconds(),
		},
	}
	s.writeJSON(w, resp, http.StatusOK)
}

// executeLookup maps the request onto engine calls (NO decile logic here)
func executeLookup(engine *lookup.Engine, req *LookupRequest) ([]lookup.Result, error) {
	if req.Total == nil && len(req.Categories) == 0 {
		return nil, errors.Input("request needs a total or at least one category amount")
	}
	for code := range req.Categories {
		if !engine.Catalog().Has(code) {
			return nil, errors.NotFound("category", code)
		}
	}

	var results []lookup.Result
	if req.Total != nil {
		if req.Total.IsNegative() {
			return nil, errors.Inputf("total expenditure must be non-negative, got %s", req.Total)
		}
		r, err := engine.LookupTotal(req.Persons, req.Total.InexactFloat64())
		if err != nil {
			return nil, err
		}
		results = append(results, *r)
	}

	for _, code := range engine.Catalog().Codes() {
		amount, ok := req.Categories[code]
		if !ok {
			continue
		}
		if amount.IsNegative() {
			return nil, errors.Inputf("category %s expenditure must be non-negative, got %s", code, amount)
		}
		r, err := engine.Lookup(req.Persons, amount.InexactFloat64(), code)
		if err != nil {
			return nil, err
		}
		results = append(results, *r)
	}

	return results, nil
}

// handleBoundaries handles GET /boundaries
func (s *Server) handleBoundaries(w http.ResponseWriter, r *http.Request) {
	engine, err := s.loader.Engine()
	if err != nil {
		s.writeError(w, "TABLE_ERROR", "boundary table unavailable", http.StatusServiceUnavailable)
		return
	}
	s.writeJSON(w, engine.Table().Values, http.StatusOK)
}

// handleCategories handles GET /categories
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	engine, err := s.loader.Engine()
	if err != nil {
		s.writeError(w, "TABLE_ERROR", "boundary table unavailable", http.StatusServiceUnavailable)
		return
	}

	cat := engine.Catalog()
	resp := CategoriesResponse{}
	for _, code := range cat.Codes() {
		entry, err := cat.Get(code)
		if err != nil {
			continue
		}
		resp.Categories = append(resp.Categories, CategoryInfo{
			Code:      entry.Code,
			Label:     entry.Label,
			Aggregate: entry.Aggregate,
		})
	}
	s.writeJSON(w, resp, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "expenditure-decile",
		"api_version": "v1",
	}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	}, status)
}

// writeDomainError maps typed domain errors onto HTTP statuses.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	var code errors.Type = errors.TypeInternal
	status := http.StatusInternalServerError

	if e, ok := err.(*errors.Error); ok {
		code = e.Type
		switch e.Type {
		case errors.TypeInput, errors.TypeParsing:
			status = http.StatusBadRequest
		case errors.TypeNotFound:
			status = http.StatusNotFound
		}
	}
	s.writeError(w, string(code), err.Error(), status)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}

func computeInputHash(req *LookupRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
