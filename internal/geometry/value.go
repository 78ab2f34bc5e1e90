package geometry

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Value is a numeric payload exactly as a client sent it. It may hold a
// number, free text typed into a prompt, or nothing at all.
type Value string

// Int wraps an integer payload.
func Int(n int) Value {
	return Value(strconv.Itoa(n))
}

// Float wraps a floating point payload.
func Float(f float64) Value {
	return Value(strconv.FormatFloat(f, 'f', -1, 64))
}

// ParseInt reads a base-10 integer prefix: leading whitespace and an optional
// sign are skipped and anything after the digits is ignored. "42px" is 42,
// "px42" fails. The result is a whole number held in a float64, so long digit
// runs keep their magnitude instead of overflowing; a run too long to be
// finite fails.
func (v Value) ParseInt() (float64, bool) {
	s := strings.TrimLeftFunc(string(v), unicode.IsSpace)

	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign = s[:1]
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.ParseFloat(sign+s[:end], 64)
	if err != nil || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// ParseFloat reads the whole payload as a finite number.
func (v Value) ParseFloat() (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// UnmarshalJSON accepts a JSON number, a string or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null":
		*v = ""
		return nil
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode value: %w", err)
		}
		*v = Value(s)
		return nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("decode value %s: not a number or string", raw)
	}
	*v = Float(f)
	return nil
}

// MarshalJSON emits a JSON number when the payload is numeric, a string otherwise.
func (v Value) MarshalJSON() ([]byte, error) {
	if f, ok := v.ParseFloat(); ok {
		return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
	}
	return json.Marshal(string(v))
}
