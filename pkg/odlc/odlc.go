// Package odlc implements the categorical fields of an ODLC (object
// detection, localization and classification) target report.
//
// Each field is a closed enumeration with a bijection to the lowercase
// tokens used by the interop server. Decoding is an exact lookup: no case
// folding, no fuzzy matching. Every enumeration has an Unset zero value
// that has no token.
package odlc

import (
	"errors"
	"fmt"
)

// UnknownEnumValueError reports a token that is not in a field's table.
type UnknownEnumValueError struct {
	// Field is the categorical field being decoded ("shape", "color", ...)
	Field string

	// Token is the rejected input
	Token string
}

func (e *UnknownEnumValueError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Field, e.Token)
}

// IsUnknownEnumValue checks if an error is an unknown enum token error.
func IsUnknownEnumValue(err error) (*UnknownEnumValueError, bool) {
	var uev *UnknownEnumValueError
	if errors.As(err, &uev) {
		return uev, true
	}
	return nil, false
}

// InvalidValueError reports an enumeration value outside its table, which
// has no token and cannot be encoded.
type InvalidValueError struct {
	Field string
	Value int
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s value %d", e.Field, e.Value)
}

// IsInvalidValue checks if an error is an out-of-table enumeration value.
func IsInvalidValue(err error) (*InvalidValueError, bool) {
	var iv *InvalidValueError
	if errors.As(err, &iv) {
		return iv, true
	}
	return nil, false
}

// table is the token bijection for one enumeration. Index 0 is Unset.
type table struct {
	field  string
	tokens []string
	index  map[string]int
}

func newTable(field string, tokens ...string) *table {
	t := &table{
		field:  field,
		tokens: append([]string{""}, tokens...),
		index:  make(map[string]int, len(tokens)),
	}
	for i, token := range tokens {
		t.index[token] = i + 1
	}
	return t
}

func (t *table) decode(token string) (int, error) {
	if v, ok := t.index[token]; ok {
		return v, nil
	}
	return 0, &UnknownEnumValueError{Field: t.field, Token: token}
}

func (t *table) encode(v int) string {
	if v <= 0 || v >= len(t.tokens) {
		return ""
	}
	return t.tokens[v]
}

// marshal encodes v; Unset is the empty token and anything outside the
// table is an error.
func (t *table) marshal(v int) ([]byte, error) {
	if v != 0 && !t.valid(v) {
		return nil, &InvalidValueError{Field: t.field, Value: v}
	}
	return []byte(t.encode(v)), nil
}

func (t *table) valid(v int) bool {
	return v > 0 && v < len(t.tokens)
}

// values returns every token in declaration order, excluding Unset.
func (t *table) values() []string {
	out := make([]string, len(t.tokens)-1)
	copy(out, t.tokens[1:])
	return out
}
