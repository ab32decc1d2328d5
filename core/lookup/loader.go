package lookup

import (
	"sync"

	"go.uber.org/zap"

	"expenditure-decile/core/boundary"
	"expenditure-decile/core/catalog"
	"expenditure-decile/internal/logging"
)

// Loader caches a lookup engine built from a table file. The table is
// read-only after construction, so caching is purely an optimization
// for repeated lookups; correctness never depends on it.
type Loader struct {
	mu     sync.Mutex
	path   string
	cat    *catalog.Catalog
	engine *Engine
}

// NewLoader creates a loader for the table at path.
func NewLoader(path string, cat *catalog.Catalog) *Loader {
	return &Loader{path: path, cat: cat}
}

// Engine returns the cached engine, loading the table on first use.
func (l *Loader) Engine() (*Engine, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.engine != nil {
		return l.engine, nil
	}

	table, err := boundary.LoadFile(l.path)
	if err != nil {
		return nil, err
	}
	engine, err := NewEngine(table, l.cat)
	if err != nil {
		return nil, err
	}
	logging.Info("boundary table loaded",
		zap.String("path", l.path),
		zap.Int("categories", len(table.Codes)))

	l.engine = engine
	return engine, nil
}

// Invalidate drops the cached engine so the next Engine call reloads
// the table, for when a new survey cycle regenerates it.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.engine = nil
}
