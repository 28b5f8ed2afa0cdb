package repos

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ValidationError reports a rejected payload: a required field is missing or
// a value is malformed. Handlers map it to a 400 response.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func invalidf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ErrInvalidCredentials is returned on any login mismatch. It deliberately
// does not distinguish an unknown login from a wrong password.
var ErrInvalidCredentials = &ValidationError{Reason: "invalid"}

// ParseAmount accepts JSON numbers and numeric strings, rejecting anything
// else before it reaches a store. NaN and the infinities are rejected too:
// strconv.ParseFloat would happily parse them, but they are not representable
// amounts and encoding/json cannot marshal them back out.
func ParseAmount(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, invalidf("amount")
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, invalidf("amount")
		}
		f = parsed
	default:
		return 0, invalidf("amount")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, invalidf("amount")
	}
	return f, nil
}
