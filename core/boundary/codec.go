package boundary

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"expenditure-decile/internal/errors"
)

// cutColumn is the identifying column of the persisted table.
const cutColumn = "p"

// Export writes the table as a flat CSV: one row per cut point, the
// cut point in the identifying column, one numeric column per
// category. Values use the shortest representation that round-trips
// float64 exactly.
func Export(w io.Writer, t *Table) error {
	if err := t.Validate(); err != nil {
		return err
	}

	cw := csv.NewWriter(w)

	header := append([]string{cutColumn}, t.Codes...)
	if err := cw.Write(header); err != nil {
		return errors.Table("writing table header", err)
	}

	record := make([]string, len(header))
	for i, cut := range CutPoints {
		record[0] = strconv.FormatFloat(cut, 'f', 1, 64)
		for j, code := range t.Codes {
			record[j+1] = strconv.FormatFloat(t.Values[code][i], 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return errors.Table("writing table row", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Table("flushing table", err)
	}
	return nil
}

// ExportFile writes the table to a CSV file, creating parent
// directories as needed.
func ExportFile(path string, t *Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Table("creating table directory", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Table("creating table file", err)
	}
	defer f.Close()

	if err := Export(f, t); err != nil {
		return err
	}
	return f.Sync()
}

// Load reads a table exported by Export and re-validates its
// invariants. The loader is strict: the cut-point rows must appear
// exactly once each, in order.
func Load(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Table("reading table header", err)
	}
	if len(header) < 2 {
		return nil, errors.New(errors.TypeTable, "boundary table has no category columns")
	}
	if strings.ToLower(strings.TrimSpace(header[0])) != cutColumn {
		return nil, errors.Newf(errors.TypeTable, "first column must be %q, got %q", cutColumn, header[0])
	}

	codes := make([]string, len(header)-1)
	for i, name := range header[1:] {
		codes[i] = strings.ToLower(strings.TrimSpace(name))
	}

	t := &Table{
		Codes:  codes,
		Values: make(map[string][]float64, len(codes)),
	}
	for _, code := range codes {
		t.Values[code] = make([]float64, 0, Rows)
	}

	rowIdx := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Table("reading table row", err)
		}
		if rowIdx >= Rows {
			return nil, errors.Newf(errors.TypeTable, "boundary table has more than %d rows", Rows)
		}
		if len(record) != len(header) {
			return nil, errors.Newf(errors.TypeTable, "row %d has %d columns, want %d", rowIdx+1, len(record), len(header))
		}

		cut, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		if err != nil {
			return nil, errors.Newf(errors.TypeTable, "row %d: malformed cut point %q", rowIdx+1, record[0])
		}
		if cut != CutPoints[rowIdx] {
			return nil, errors.Newf(errors.TypeTable, "row %d: cut point %g out of order, want %g", rowIdx+1, cut, CutPoints[rowIdx])
		}

		for i, code := range codes {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[i+1]), 64)
			if err != nil {
				return nil, errors.Newf(errors.TypeTable, "row %d: category %s: malformed value %q", rowIdx+1, code, record[i+1])
			}
			t.Values[code] = append(t.Values[code], v)
		}
		rowIdx++
	}

	if rowIdx != Rows {
		return nil, errors.Newf(errors.TypeTable, "boundary table has %d rows, want %d", rowIdx, Rows)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadFile reads a table from a CSV file.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Table("opening table file", err)
	}
	defer f.Close()
	return Load(f)
}
