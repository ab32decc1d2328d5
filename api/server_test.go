package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"expenditure-decile/core/boundary"
	"expenditure-decile/core/catalog"
	"expenditure-decile/core/lookup"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	table := &boundary.Table{
		Codes: []string{"c3", "c30"},
		Values: map[string][]float64{
			"c3":  {100, 200, 300, 400, 500, 600, 700, 800, 900, 901},
			"c30": {10, 20, 30, 40, 50, 60, 70, 80, 90, 91},
		},
	}
	path := filepath.Join(t.TempDir(), "limits.csv")
	if err := boundary.ExportFile(path, table); err != nil {
		t.Fatal(err)
	}
	return NewServer("test", lookup.NewLoader(path, catalog.Default()))
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestLookupEndpoint(t *testing.T) {
	s := testServer(t)

	// 700 total for 2 persons normalizes to 350 → decile 4.
	rec := doRequest(t, s, http.MethodPost, "/lookup", `{"persons":2,"total":700}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
	}

	var resp LookupResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(resp.Results))
	}
	if resp.Results[0].Decile != 4 {
		t.Errorf("decile = %d, want 4", resp.Results[0].Decile)
	}
	if resp.Metadata == nil || resp.Metadata.RequestID == "" {
		t.Error("expected request metadata")
	}
}

func TestLookupByCategory(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodPost, "/lookup",
		`{"persons":1,"categories":{"c3":500,"c30":55}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
	}

	var resp LookupResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
}

func TestLookupRejectsBadRequests(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"invalid json", `{`, http.StatusBadRequest},
		{"no amounts", `{"persons":2}`, http.StatusBadRequest},
		{"negative total", `{"persons":2,"total":-5}`, http.StatusBadRequest},
		{"household size below one", `{"persons":0,"total":100}`, http.StatusBadRequest},
		{"unknown category", `{"persons":2,"categories":{"c99":10}}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodPost, "/lookup", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d; body: %s", rec.Code, tt.want, rec.Body)
			}
		})
	}
}

func TestLookupDeterministicHash(t *testing.T) {
	s := testServer(t)
	body := `{"persons":2,"total":700}`

	first := doRequest(t, s, http.MethodPost, "/lookup", body)
	second := doRequest(t, s, http.MethodPost, "/lookup", body)

	var a, b LookupResponse
	if err := json.Unmarshal(first.Body.Bytes(), &a); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(second.Body.Bytes(), &b); err != nil {
		t.Fatal(err)
	}
	if a.Metadata.InputHash != b.Metadata.InputHash {
		t.Error("identical requests must hash identically")
	}
	if a.Results[0].Decile != b.Results[0].Decile {
		t.Error("identical requests must resolve to the same decile")
	}
}

func TestSupportingEndpoints(t *testing.T) {
	s := testServer(t)

	for _, path := range []string{"/health", "/version", "/boundaries", "/categories"} {
		rec := doRequest(t, s, http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s: status = %d, want 200", path, rec.Code)
		}
	}

	rec := doRequest(t, s, http.MethodGet, "/categories", "")
	var resp CategoriesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding categories: %v", err)
	}
	if len(resp.Categories) != 11 {
		t.Errorf("expected 11 categories, got %d", len(resp.Categories))
	}
}

func TestMissingTableIsUnavailable(t *testing.T) {
	s := NewServer("test", lookup.NewLoader(filepath.Join(t.TempDir(), "missing.csv"), catalog.Default()))

	rec := doRequest(t, s, http.MethodPost, "/lookup", `{"persons":2,"total":700}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
