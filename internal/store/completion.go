package store

import (
	"encoding/json"
	"strings"
)

// Completion is the three-valued result of coercing a raw completed input.
// Unspecified means the caller supplied nothing usable and must pick a
// context-appropriate default: false for Add, keep-existing for Update.
type Completion int

const (
	// CompletionUnspecified means no usable value was supplied.
	CompletionUnspecified Completion = iota

	// CompletionFalse coerces to the stored integer 0.
	CompletionFalse

	// CompletionTrue coerces to the stored integer 1.
	CompletionTrue
)

// ParseCompletion coerces a raw completed value into a Completion.
// It is total over all inputs:
//   - bool: true/false map directly
//   - any numeric type: zero maps to false, nonzero to true
//   - string (trimmed, case-insensitive): "true" and "1" map to true,
//     "false" and "0" map to false, anything else is unspecified
//   - nil and every other type: unspecified
func ParseCompletion(v any) Completion {
	switch val := v.(type) {
	case bool:
		return ofBool(val)
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "1":
			return CompletionTrue
		case "false", "0":
			return CompletionFalse
		default:
			return CompletionUnspecified
		}
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return CompletionUnspecified
		}
		return ofBool(f != 0)
	case float64:
		return ofBool(val != 0)
	case float32:
		return ofBool(val != 0)
	case int:
		return ofBool(val != 0)
	case int8:
		return ofBool(val != 0)
	case int16:
		return ofBool(val != 0)
	case int32:
		return ofBool(val != 0)
	case int64:
		return ofBool(val != 0)
	case uint:
		return ofBool(val != 0)
	case uint8:
		return ofBool(val != 0)
	case uint16:
		return ofBool(val != 0)
	case uint32:
		return ofBool(val != 0)
	case uint64:
		return ofBool(val != 0)
	default:
		return CompletionUnspecified
	}
}

// OrDefault resolves the Completion to a concrete bool, substituting def
// when the value is unspecified.
func (c Completion) OrDefault(def bool) bool {
	switch c {
	case CompletionTrue:
		return true
	case CompletionFalse:
		return false
	default:
		return def
	}
}

func ofBool(b bool) Completion {
	if b {
		return CompletionTrue
	}
	return CompletionFalse
}
