package domain

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter marks a caller-supplied selection that cannot be
// evaluated. It is a programming or input error, never a data condition.
var ErrInvalidParameter = errors.New("invalid parameter")

// Year bounds accepted by Selection.Validate.
const (
	MinYear = 1800
	MaxYear = 2200
)

// Selection is the pair of live inputs a dashboard refresh is computed for.
type Selection struct {
	Year      int     `json:"year"`
	Threshold float64 `json:"threshold"`
}

// Validate rejects selections the stages would silently mis-evaluate: a
// non-finite threshold compares false against every reading.
func (s Selection) Validate() error {
	if math.IsNaN(s.Threshold) || math.IsInf(s.Threshold, 0) {
		return fmt.Errorf("%w: threshold must be a finite number", ErrInvalidParameter)
	}
	if s.Year < MinYear || s.Year > MaxYear {
		return fmt.Errorf("%w: year %d outside [%d, %d]", ErrInvalidParameter, s.Year, MinYear, MaxYear)
	}
	return nil
}

// LoadError reports a source that could not be turned into readings.
type LoadError struct {
	Source string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("load %s: %s", e.Source, e.Reason)
}

func (e *LoadError) Unwrap() error { return e.Err }
