package catalog

import (
	"github.com/hashicorp/hcl/v2/hclsimple"

	"expenditure-decile/internal/errors"
)

// catalogFile is the HCL schema for an operator-supplied catalog:
//
//	category "c30" {
//	  label  = "Food (excluding fruit and vegetables)"
//	  column = "c30"
//	}
type catalogFile struct {
	Categories []categoryBlock `hcl:"category,block"`
}

type categoryBlock struct {
	Code      string `hcl:"code,label"`
	Label     string `hcl:"label"`
	Column    string `hcl:"column,optional"`
	Aggregate bool   `hcl:"aggregate,optional"`
}

// LoadFile parses an HCL catalog file. Survey cycles occasionally
// rename columns; the file lets operators remap codes without a
// rebuild of the binary.
func LoadFile(path string) (*Catalog, error) {
	var file catalogFile
	if err := hclsimple.DecodeFile(path, nil, &file); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "decoding catalog file", err)
	}
	if len(file.Categories) == 0 {
		return nil, errors.Newf(errors.TypeConfig, "catalog file %s defines no categories", path)
	}

	c := New()
	for _, block := range file.Categories {
		if block.Code == "" {
			return nil, errors.Newf(errors.TypeConfig, "catalog file %s has a category with an empty code", path)
		}
		c.Register(Category{
			Code:      block.Code,
			Column:    block.Column,
			Label:     block.Label,
			Aggregate: block.Aggregate,
		})
	}
	return c, nil
}

// LoadOrDefault loads a catalog file when a path is given, otherwise
// returns the built-in catalog.
func LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
