// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input ingestion, engine
// orchestration, output serialization. The API NEVER computes deciles.
package api

import (
	"github.com/shopspring/decimal"

	"expenditure-decile/core/lookup"
)

// LookupRequest asks for the decile of one household's expenditures.
// Amounts arrive as decimals so money survives JSON intact; either
// Total or Categories (or both) must be present.
type LookupRequest struct {
	// Persons is the number of persons in the household
	Persons int `json:"persons"`

	// Total is the household's total monthly expenditure
	Total *decimal.Decimal `json:"total,omitempty"`

	// Categories maps category code to its monthly expenditure
	Categories map[string]decimal.Decimal `json:"categories,omitempty"`
}

// LookupResponse carries one result per requested category.
type LookupResponse struct {
	Results  []lookup.Result   `json:"results"`
	Metadata *ResponseMetadata `json:"metadata,omitempty"`
}

// ResponseMetadata records the execution context of a request.
type ResponseMetadata struct {
	// RequestID uniquely identifies the request
	RequestID string `json:"request_id"`

	// InputHash is a deterministic hash of the request body
	InputHash string `json:"input_hash"`

	// EngineVersion is the serving binary version
	EngineVersion string `json:"engine_version"`

	// DurationMs is the handling time in milliseconds
	DurationMs int64 `json:"duration_ms"`
}

// CategoryInfo describes one catalog entry.
type CategoryInfo struct {
	Code      string `json:"code"`
	Label     string `json:"label"`
	Aggregate bool   `json:"aggregate,omitempty"`
}

// CategoriesResponse lists the catalog.
type CategoriesResponse struct {
	Categories []CategoryInfo `json:"categories"`
}
