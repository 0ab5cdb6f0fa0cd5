package prospect

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// Number is a lenient numeric field. Datasets carry scores and counts either
// as JSON numbers or as numeric strings, and sometimes omit them entirely.
// The original textual form is retained so that exports and re-encoding
// reproduce the input exactly.
type Number struct {
	text   string
	quoted bool
	valid  bool
}

// Num returns a Number holding a JSON numeric value.
func Num(f float64) Number {
	return Number{text: strconv.FormatFloat(f, 'f', -1, 64), valid: true}
}

// Str returns a Number holding a string value. The string does not need to
// be numeric.
func Str(s string) Number {
	return Number{text: s, quoted: true, valid: true}
}

// Float coerces the value to float64 the way a browser's Number()
// conversion does, with NaN replaced by 0. Missing, null, and non-numeric
// values yield 0. Coercion never fails.
//
// Accepted forms are decimal literals with optional sign and exponent,
// "Infinity" with optional sign, and unsigned 0x, 0o, and 0b integer
// literals. Go-only spellings such as "inf", "nan", hex floats, and digit
// separators are not numeric.
func (n Number) Float() float64 {
	if !n.valid {
		return 0
	}
	s := strings.TrimSpace(n.text)
	switch s {
	case "", "false":
		return 0
	case "true":
		return 1
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if f, ok := parsePrefixed(s); ok {
		return f
	}
	if !isDecimalLiteral(s) {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return f
}

// parsePrefixed parses an unsigned 0x, 0o, or 0b integer literal. Values
// beyond uint64 keep accumulating as float64.
func parsePrefixed(s string) (float64, bool) {
	if len(s) < 3 || s[0] != '0' {
		return 0, false
	}
	var base float64
	switch s[1] {
	case 'x', 'X':
		base = 16
	case 'o', 'O':
		base = 8
	case 'b', 'B':
		base = 2
	default:
		return 0, false
	}

	var f float64
	for _, c := range s[2:] {
		var d float64
		switch {
		case c >= '0' && c <= '9':
			d = float64(c - '0')
		case c >= 'a' && c <= 'f':
			d = float64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = float64(c-'A') + 10
		default:
			return 0, true
		}
		if d >= base {
			return 0, true
		}
		f = f*base + d
	}
	return f, true
}

// isDecimalLiteral reports whether s uses only the characters of a decimal
// number with optional sign, fraction, and exponent.
func isDecimalLiteral(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c == '.', c == '+', c == '-', c == 'e', c == 'E':
		default:
			return false
		}
	}
	return true
}

// String returns the raw value as it should appear in a text cell or CSV
// field. Missing values render as the empty string.
func (n Number) String() string {
	if !n.valid {
		return ""
	}
	if n.quoted {
		return n.text
	}
	if f, err := strconv.ParseFloat(n.text, 64); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return n.text
}

// IsZero reports whether the value is absent. It lets encoding/json omit
// missing fields via the omitzero option.
func (n Number) IsZero() bool {
	return !n.valid
}

// IsString reports whether the value arrived as a JSON string.
func (n Number) IsString() bool {
	return n.valid && n.quoted
}

// Truthy reports whether the value is present and neither an empty string
// nor numerically zero.
func (n Number) Truthy() bool {
	if !n.valid {
		return false
	}
	if n.quoted {
		return n.text != ""
	}
	return n.Float() != 0
}

// UnmarshalJSON accepts numbers, strings, booleans, and null.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = Number{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Str(s)
		return nil
	}
	if data[0] == '[' || data[0] == '{' {
		// Structured values cannot be coerced; treat them as missing.
		*n = Number{}
		return nil
	}
	*n = Number{text: string(data), valid: true}
	return nil
}

// MarshalJSON writes the value back in its original JSON type.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	if n.quoted {
		return json.Marshal(n.text)
	}
	return []byte(n.text), nil
}
