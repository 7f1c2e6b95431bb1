package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseError reports a command-line argument that is not a valid number.
type ParseError struct {
	Arg   string // argument name, e.g. "redshift"
	Value string
	cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s is not numeric: '%s'", e.Arg, e.Value)
}

func (e *ParseError) Unwrap() error { return e.cause }

// ParseFloatArg parses value as a finite float64.
func ParseFloatArg(name, value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, &ParseError{Arg: name, Value: value, cause: err}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ParseError{Arg: name, Value: value, cause: fmt.Errorf("not a finite number")}
	}
	return f, nil
}
