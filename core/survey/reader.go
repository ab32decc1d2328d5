package survey

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"expenditure-decile/core/catalog"
	"expenditure-decile/core/equivalence"
	"expenditure-decile/internal/errors"
	"expenditure-decile/internal/logging"
)

const (
	// WeightColumn is the sampling weight column in the extract
	WeightColumn = "weight"

	// EquivalenceColumn carries the pre-computed equivalence-scaled
	// household size in CBS extracts
	EquivalenceColumn = "nefeshstandartit"

	// PersonsColumn is the raw person count, used to derive the
	// equivalence factor when EquivalenceColumn is absent
	PersonsColumn = "nefesh"
)

// ReaderOptions tunes survey ingestion.
type ReaderOptions struct {
	// EquivalenceColumn overrides the household-size column name
	EquivalenceColumn string
}

// ReadFile loads a survey extract from a CSV file.
func ReadFile(path string, cat *catalog.Catalog, opts ReaderOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Survey("opening survey file", err)
	}
	defer f.Close()

	ds, err := Read(f, cat, opts)
	if err != nil {
		return nil, err
	}
	logging.Info("survey extract loaded",
		zap.String("path", path),
		zap.Int("rows", len(ds.Rows)),
		zap.Int("categories", len(ds.Codes)))
	return ds, nil
}

// Read parses a survey extract. Column names are lowercased before
// matching, every catalog column plus the weight and household-size
// columns must be present, and any malformed cell fails the whole
// read. No partial dataset is ever returned.
func Read(r io.Reader, cat *catalog.Catalog, opts ReaderOptions) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Survey("reading survey header", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	weightIdx, ok := index[WeightColumn]
	if !ok {
		return nil, errors.Newf(errors.TypeSurvey, "survey is missing the %s column", WeightColumn)
	}

	eqColumn := opts.EquivalenceColumn
	if eqColumn == "" {
		eqColumn = EquivalenceColumn
	}
	eqIdx, haveEquivalence := index[eqColumn]
	personsIdx, havePersons := index[PersonsColumn]
	if !haveEquivalence && !havePersons {
		return nil, errors.Newf(errors.TypeSurvey, "survey is missing both %s and %s columns", eqColumn, PersonsColumn)
	}

	codes := cat.Codes()
	columnIdx := make(map[string]int, len(codes))
	for _, code := range codes {
		entry, err := cat.Get(code)
		if err != nil {
			return nil, err
		}
		idx, ok := index[entry.Column]
		if !ok {
			return nil, errors.Newf(errors.TypeSurvey, "survey is missing column %s for category %s", entry.Column, code)
		}
		columnIdx[code] = idx
	}

	ds := &Dataset{Codes: codes}
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Survey("reading survey row", err)
		}
		line++

		weight, err := parseCell(record, weightIdx, WeightColumn, line)
		if err != nil {
			return nil, err
		}

		var eq float64
		if haveEquivalence {
			eq, err = parseCell(record, eqIdx, eqColumn, line)
			if err != nil {
				return nil, err
			}
		} else {
			personsRaw, err := parseCell(record, personsIdx, PersonsColumn, line)
			if err != nil {
				return nil, err
			}
			persons := int(personsRaw)
			if float64(persons) != personsRaw {
				return nil, errors.Newf(errors.TypeSurvey, "line %d: column %s must be an integer, got %g", line, PersonsColumn, personsRaw)
			}
			eq, err = equivalence.Factor(persons)
			if err != nil {
				return nil, errors.Wrapf(errors.TypeSurvey, err, "line %d: column %s", line, PersonsColumn)
			}
		}

		row := Row{
			Expenditures: make(map[string]float64, len(codes)),
			Weight:       weight,
			Equivalence:  eq,
		}
		for code, idx := range columnIdx {
			amount, err := parseCell(record, idx, header[idx], line)
			if err != nil {
				return nil, err
			}
			row.Expenditures[code] = amount
		}
		ds.Rows = append(ds.Rows, row)
	}

	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

func parseCell(record []string, idx int, column string, line int) (float64, error) {
	if idx >= len(record) {
		return 0, errors.Newf(errors.TypeSurvey, "line %d: row is missing column %s", line, column)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(record[idx]), 64)
	if err != nil {
		return 0, errors.Newf(errors.TypeSurvey, "line %d: column %s: malformed number %q", line, column, record[idx])
	}
	return v, nil
}
