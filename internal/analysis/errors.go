package analysis

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfDomain matches every *DomainError.
	ErrOutOfDomain = errors.New("out of bounds")
	// ErrMissingBackground is returned when the file lacks a background series.
	ErrMissingBackground = errors.New("background series missing")
	// ErrUnknownFunction is returned when a function title is not in the dataset.
	ErrUnknownFunction = errors.New("unknown function title")
)

// DomainError reports a query value outside the sampled range of the
// dataset. No table is produced alongside it.
type DomainError struct {
	Quantity string // "z" or "k"
	Value    float64
	Min      float64
	Max      float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s = %g is out of bounds [%g, %g]", e.Quantity, e.Value, e.Min, e.Max)
}

// Is reports whether target is ErrOutOfDomain.
func (e *DomainError) Is(target error) bool { return target == ErrOutOfDomain }

func checkDomain(quantity string, v, lo, hi float64) error {
	if v >= lo && v <= hi {
		return nil
	}
	return &DomainError{Quantity: quantity, Value: v, Min: lo, Max: hi}
}
