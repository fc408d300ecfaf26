package fiscal

import (
	"strconv"

	"github.com/acqtools/paymentproc/internal/model"
)

// DefaultPivot splits two-digit years: above it is the 1900s, at or below is the 2000s.
// Older exports were processed with 80.
const DefaultPivot = 50

// Normalizer expands two-digit years.
type Normalizer struct {
	Pivot int
}

// DefaultNormalizer uses DefaultPivot.
var DefaultNormalizer = Normalizer{Pivot: DefaultPivot}

// Normalize turns "10" into 2010 and "99" into 1999.
func (n Normalizer) Normalize(yy string) (int, error) {
	if len(yy) < 1 || len(yy) > 2 {
		return 0, &model.ParseError{Field: "year", Value: yy, Reason: "want 1 or 2 digits"}
	}
	for i := 0; i < len(yy); i++ {
		if yy[i] < '0' || yy[i] > '9' {
			return 0, &model.ParseError{Field: "year", Value: yy, Reason: "want 1 or 2 digits"}
		}
	}
	v, err := strconv.Atoi(yy)
	if err != nil {
		return 0, &model.ParseError{Field: "year", Value: yy, Reason: err.Error()}
	}
	if v > n.Pivot {
		return 1900 + v, nil
	}
	return 2000 + v, nil
}
