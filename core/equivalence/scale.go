// Package equivalence converts household sizes to the standardized
// persons scale used by the National Insurance Institute and the
// Central Bureau of Statistics. Both the boundary builder and the
// decile lookup must normalize through the same scale.
package equivalence

import (
	"expenditure-decile/internal/errors"
)

// scale holds the fixed factors for household sizes 1 through 8.
// Sizes of 9 and above extrapolate linearly at 0.4 per person.
var scale = [...]float64{1.25, 2, 2.65, 3.2, 3.75, 4.25, 4.75, 5.2}

const (
	extrapolationBase = 5.6
	extrapolationStep = 0.4
)

// MaxTabulated is the largest household size with a fixed factor.
const MaxTabulated = len(scale)

// Factor returns the equivalence factor for a household of the given
// size. It fails for sizes below 1.
func Factor(persons int) (float64, error) {
	if persons < 1 {
		return 0, errors.Inputf("household size must be at least 1, got %d", persons)
	}
	if persons <= MaxTabulated {
		return scale[persons-1], nil
	}
	return extrapolationBase + float64(persons-9)*extrapolationStep, nil
}

// Normalize divides a raw expenditure by the equivalence factor for
// the given household size.
func Normalize(amount float64, persons int) (float64, error) {
	if amount < 0 {
		return 0, errors.Inputf("expenditure must be non-negative, got %g", amount)
	}
	f, err := Factor(persons)
	if err != nil {
		return 0, err
	}
	return amount / f, nil
}
