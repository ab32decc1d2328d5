// Package catalog - Authoritative expenditure category catalog
// Defines the canonical list of survey categories. This is the source
// of truth for which columns the builder reads and which codes the
// lookup accepts. Display labels live here so the computational core
// stays presentation-free.
package catalog

import (
	"sort"

	"expenditure-decile/internal/errors"
)

// TotalCode is the aggregate category covering all expenditure.
const TotalCode = "c3"

// Category is a catalog entry for an expenditure category
type Category struct {
	// Code is the category code (c3, c30..c39)
	Code string

	// Column is the survey column holding the raw expenditure.
	// Usually identical to Code.
	Column string

	// Label is the display label owned by the presentation layer
	Label string

	// Aggregate marks the total-expenditure category
	Aggregate bool
}

// Catalog is an ordered set of expenditure categories
type Catalog struct {
	entries map[string]*Category
	order   []string
}

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{
		entries: make(map[string]*Category),
	}
}

// Register adds a category to the catalog. The survey column defaults
// to the category code.
func (c *Catalog) Register(entry Category) {
	if entry.Column == "" {
		entry.Column = entry.Code
	}
	if _, exists := c.entries[entry.Code]; !exists {
		c.order = append(c.order, entry.Code)
	}
	c.entries[entry.Code] = &entry
}

// Get returns the category for a code
func (c *Catalog) Get(code string) (*Category, error) {
	entry, ok := c.entries[code]
	if !ok {
		return nil, errors.NotFound("category", code)
	}
	return entry, nil
}

// Has reports whether a code is registered
func (c *Catalog) Has(code string) bool {
	_, ok := c.entries[code]
	return ok
}

// Codes returns all category codes in registration order
func (c *Catalog) Codes() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Columns returns the survey columns for all categories, sorted
func (c *Catalog) Columns() []string {
	out := make([]string, 0, len(c.entries))
	for _, entry := range c.entries {
		out = append(out, entry.Column)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of registered categories
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Default returns the built-in catalog matching the CBS household
// expenditure survey layout.
func Default() *Catalog {
	c := New()
	for _, entry := range []Category{
		{Code: TotalCode, Label: "Total expenditure", Aggregate: true},
		{Code: "c30", Label: "Food (excluding fruit and vegetables)"},
		{Code: "c31", Label: "Fruit and vegetables"},
		{Code: "c32", Label: "Housing rent"},
		{Code: "c33", Label: "Dwelling maintenance (electricity, water, taxes)"},
		{Code: "c34", Label: "Furniture and household equipment"},
		{Code: "c35", Label: "Clothing and footwear"},
		{Code: "c36", Label: "Health"},
		{Code: "c37", Label: "Education, culture and entertainment"},
		{Code: "c38", Label: "Transport and communication"},
		{Code: "c39", Label: "Other (jewelry, cigarettes, donations)"},
	} {
		c.Register(entry)
	}
	return c
}
