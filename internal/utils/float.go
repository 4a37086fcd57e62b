package utils

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// ToFloat64 converts numeric values and numeric strings to float64.
// Returns the converted value and true if successful, or 0 and false if conversion fails.
// Booleans are rejected even though they have a numeric reading.
func ToFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		val = strings.TrimSpace(val)
		if val == "" {
			return 0, false
		}
		v = val
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ToFloat64Slice converts a slice of interface{} to a slice of float64.
// Non-numeric values are skipped. Returns the converted slice and the original indices
// of successfully converted values.
func ToFloat64Slice(values []interface{}) ([]float64, []int) {
	result := make([]float64, 0, len(values))
	indices := make([]int, 0, len(values))

	for i, v := range values {
		if f, ok := ToFloat64(v); ok {
			result = append(result, f)
			indices = append(indices, i)
		}
	}

	return result, indices
}

// ParseFloatList parses a comma, semicolon or whitespace separated list such
// as "1.5, 2, 3e2". Any token that is not a number is an error.
func ParseFloatList(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	})

	values := make([]float64, 0, len(fields))
	for i, field := range fields {
		f, ok := ToFloat64(field)
		if !ok {
			return nil, fmt.Errorf("value %d (%q) is not a number", i+1, field)
		}
		values = append(values, f)
	}
	return values, nil
}

// IsNumeric checks if a value can be converted to float64.
func IsNumeric(v interface{}) bool {
	_, ok := ToFloat64(v)
	return ok
}
