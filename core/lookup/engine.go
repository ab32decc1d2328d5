// Package lookup maps a household's reported expenditure to its
// decile against a pre-built boundary table. The engine is stateless
// and pure: the same inputs always produce the same decile.
package lookup

import (
	"expenditure-decile/core/boundary"
	"expenditure-decile/core/catalog"
	"expenditure-decile/core/equivalence"
	"expenditure-decile/internal/errors"
)

// Result is the outcome of a single category lookup.
type Result struct {
	// Code is the category looked up
	Code string `json:"code"`

	// Label is the category's display label
	Label string `json:"label,omitempty"`

	// Amount is the raw expenditure as reported
	Amount float64 `json:"amount"`

	// Normalized is the expenditure per standardized person
	Normalized float64 `json:"normalized"`

	// Decile is the bucket the normalized expenditure falls into (1-10)
	Decile int `json:"decile"`
}

// Engine answers decile lookups against one boundary table.
type Engine struct {
	table *boundary.Table
	cat   *catalog.Catalog
}

// NewEngine creates a lookup engine. The table is validated once here
// so lookups never have to re-check it.
func NewEngine(table *boundary.Table, cat *catalog.Catalog) (*Engine, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &Engine{table: table, cat: cat}, nil
}

// Table returns the engine's boundary table.
func (e *Engine) Table() *boundary.Table {
	return e.table
}

// Catalog returns the engine's category catalog.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

// Lookup returns the decile of a raw expenditure in one category for
// a household of the given size.
func (e *Engine) Lookup(persons int, amount float64, code string) (*Result, error) {
	entry, err := e.cat.Get(code)
	if err != nil {
		return nil, err
	}
	if !e.table.Has(code) {
		return nil, errors.NotFound("boundary column", code)
	}

	normalized, err := equivalence.Normalize(amount, persons)
	if err != nil {
		return nil, err
	}

	decile, err := e.table.Bucket(code, normalized)
	if err != nil {
		return nil, err
	}

	return &Result{
		Code:       code,
		Label:      entry.Label,
		Amount:     amount,
		Normalized: normalized,
		Decile:     decile,
	}, nil
}

// LookupTotal returns the decile of the household's total expenditure.
func (e *Engine) LookupTotal(persons int, amount float64) (*Result, error) {
	return e.Lookup(persons, amount, catalog.TotalCode)
}

// LookupMany applies the same normalize-then-bucket step to several
// categories of one household. Either every category resolves or the
// whole call fails.
func (e *Engine) LookupMany(persons int, amounts map[string]float64, codes []string) ([]Result, error) {
	if len(codes) == 0 {
		return nil, errors.Input("no categories requested")
	}

	results := make([]Result, 0, len(codes))
	for _, code := range codes {
		amount, ok := amounts[code]
		if !ok {
			return nil, errors.Inputf("no expenditure given for category %s", code)
		}
		r, err := e.Lookup(persons, amount, code)
		if err != nil {
			return nil, err
		}
		results = append(results, *r)
	}
	return results, nil
}
