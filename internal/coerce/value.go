package coerce

import (
	"encoding/json"
	"strings"
)

// Value captures a single loosely-typed scalar from upstream extraction
// output. The extractor may emit any field as a string, a number, null, or
// omit it entirely; Value preserves the raw token so callers can decide how
// to interpret it.
type Value struct {
	raw     string
	wasStr  bool
	present bool
}

// NewString builds a Value as if the source JSON carried a string.
func NewString(s string) Value {
	return Value{raw: s, wasStr: true, present: true}
}

// NewNumber builds a Value as if the source JSON carried a number literal.
func NewNumber(tok string) Value {
	return Value{raw: tok, present: true}
}

// UnmarshalJSON accepts string, number, bool, or null tokens. Anything
// non-scalar (object, array) is treated as absent rather than rejected.
func (v *Value) UnmarshalJSON(b []byte) error {
	tok := strings.TrimSpace(string(b))
	if tok == "" || tok == "null" {
		*v = Value{}
		return nil
	}
	if tok[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*v = Value{}
			return nil
		}
		*v = Value{raw: s, wasStr: true, present: true}
		return nil
	}
	if tok[0] == '{' || tok[0] == '[' {
		*v = Value{}
		return nil
	}
	*v = Value{raw: tok, present: true}
	return nil
}

// MarshalJSON re-emits the value the way it arrived.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.present {
		return []byte("null"), nil
	}
	if v.wasStr {
		return json.Marshal(v.raw)
	}
	return []byte(v.raw), nil
}

// Present reports whether the source carried a non-null value for this field.
func (v Value) Present() bool {
	return v.present
}

// IsEmpty reports whether the field was absent, null, or a blank string.
func (v Value) IsEmpty() bool {
	return !v.present || strings.TrimSpace(v.raw) == ""
}

// Raw returns the raw token text: string content for JSON strings, the
// literal token for numbers.
func (v Value) Raw() string {
	return v.raw
}

// Str returns the trimmed textual form of the value, for identity-style
// fields (supplier names, invoice numbers) that may arrive as any scalar.
func (v Value) Str() string {
	return strings.TrimSpace(v.raw)
}
