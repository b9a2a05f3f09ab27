package interop

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// DecodeDict parses a raw JSON object. Numbers are kept as json.Number
// so integer-valued fields are not rounded through float64 twice.
// Anything but whitespace after the object is an error.
func DecodeDict(raw []byte) (Dict, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to parse interop message: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse interop message: unexpected data after the first JSON value at offset %d", dec.InputOffset())
	}
	d, ok := v.(map[string]any)
	if !ok {
		return nil, &FieldTypeError{Path: "$", Want: "object", Got: v}
	}
	return d, nil
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func indexPath(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}

// lookup returns the value at key, or a *MissingFieldError.
func lookup(d Dict, parent, key string) (any, error) {
	v, ok := d[key]
	if !ok {
		return nil, &MissingFieldError{Path: joinPath(parent, key)}
	}
	return v, nil
}

func asFloat(v any, path string) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, &FieldTypeError{Path: path, Want: "number", Got: v}
		}
		return f, nil
	}
	return 0, &FieldTypeError{Path: path, Want: "number", Got: v}
}

// asFinite rejects NaN and infinities, which no interop distance or
// coordinate can legitimately hold.
func asFinite(v any, path string) (float64, error) {
	f, err := asFloat(v, path)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &FieldTypeError{Path: path, Want: "finite number", Got: v}
	}
	return f, nil
}

func asString(v any, path string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &FieldTypeError{Path: path, Want: "string", Got: v}
	}
	return s, nil
}

func asBool(v any, path string) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, &FieldTypeError{Path: path, Want: "boolean", Got: v}
	}
	return b, nil
}

func asDict(v any, path string) (Dict, error) {
	d, ok := v.(map[string]any)
	if !ok {
		return nil, &FieldTypeError{Path: path, Want: "object", Got: v}
	}
	return d, nil
}

// asList accepts both decoded JSON arrays and the []Dict literals callers
// build by hand.
func asList(v any, path string) ([]Dict, error) {
	switch items := v.(type) {
	case []map[string]any:
		return items, nil
	case []any:
		out := make([]Dict, len(items))
		for i, item := range items {
			d, err := asDict(item, indexPath(path, i))
			if err != nil {
				return nil, err
			}
			out[i] = d
		}
		return out, nil
	}
	return nil, &FieldTypeError{Path: path, Want: "array", Got: v}
}

func requireFloat(d Dict, parent, key string) (float64, error) {
	v, err := lookup(d, parent, key)
	if err != nil {
		return 0, err
	}
	return asFinite(v, joinPath(parent, key))
}

func requireString(d Dict, parent, key string) (string, error) {
	v, err := lookup(d, parent, key)
	if err != nil {
		return "", err
	}
	return asString(v, joinPath(parent, key))
}

func requireDict(d Dict, parent, key string) (Dict, error) {
	v, err := lookup(d, parent, key)
	if err != nil {
		return nil, err
	}
	return asDict(v, joinPath(parent, key))
}

func requireList(d Dict, parent, key string) ([]Dict, error) {
	v, err := lookup(d, parent, key)
	if err != nil {
		return nil, err
	}
	return asList(v, joinPath(parent, key))
}

// optionalList returns nil without error when key is absent or null.
func optionalList(d Dict, parent, key string) ([]Dict, error) {
	v, ok := d[key]
	if !ok || v == nil {
		return nil, nil
	}
	return asList(v, joinPath(parent, key))
}
