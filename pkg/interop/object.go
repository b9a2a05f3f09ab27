package interop

import (
	"encoding"
	"fmt"

	"github.com/unklstewy/suas-interop/pkg/odlc"
)

// objectField maps one wire key of an ODLC report to its record field.
// encode returns the wire value; decode assigns a wire value onto o.
type objectField struct {
	key    string
	encode func(o *Object) (any, error)
	decode func(o *Object, v any, path string) error
}

// categorical returns nil for an unset enumeration so it serializes as null.
// A value with no token is an error.
func categorical(v encoding.TextMarshaler) (any, error) {
	token, err := v.MarshalText()
	if err != nil {
		return nil, err
	}
	if len(token) == 0 {
		return nil, nil
	}
	return string(token), nil
}

// decodeToken reads a categorical token; null clears the field.
func decodeToken(v any, path string) (string, bool, error) {
	if v == nil {
		return "", false, nil
	}
	s, err := asString(v, path)
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}

var objectFields = []objectField{
	{
		key:    "type",
		encode: func(o *Object) (any, error) { return categorical(o.Type) },
		decode: func(o *Object, v any, path string) error {
			token, ok, err := decodeToken(v, path)
			if err != nil || !ok {
				o.Type = odlc.ObjectTypeUnset
				return err
			}
			o.Type, err = odlc.ParseObjectType(token)
			return err
		},
	},
	{
		key:    "latitude",
		encode: func(o *Object) (any, error) { return o.Latitude, nil },
		decode: func(o *Object, v any, path string) (err error) {
			o.Latitude, err = asFinite(v, path)
			return err
		},
	},
	{
		key:    "longitude",
		encode: func(o *Object) (any, error) { return o.Longitude, nil },
		decode: func(o *Object, v any, path string) (err error) {
			o.Longitude, err = asFinite(v, path)
			return err
		},
	},
	{
		key:    "orientation",
		encode: func(o *Object) (any, error) { return categorical(o.Orientation) },
		decode: func(o *Object, v any, path string) error {
			token, ok, err := decodeToken(v, path)
			if err != nil || !ok {
				o.Orientation = odlc.OrientationUnset
				return err
			}
			o.Orientation, err = odlc.ParseOrientation(token)
			return err
		},
	},
	{
		key:    "shape",
		encode: func(o *Object) (any, error) { return categorical(o.Shape) },
		decode: func(o *Object, v any, path string) error {
			token, ok, err := decodeToken(v, path)
			if err != nil || !ok {
				o.Shape = odlc.ShapeUnset
				return err
			}
			o.Shape, err = odlc.ParseShape(token)
			return err
		},
	},
	{
		key:    "background_color",
		encode: func(o *Object) (any, error) { return categorical(o.BackgroundColor) },
		decode: func(o *Object, v any, path string) error {
			token, ok, err := decodeToken(v, path)
			if err != nil || !ok {
				o.BackgroundColor = odlc.ColorUnset
				return err
			}
			o.BackgroundColor, err = odlc.ParseColor(token)
			return err
		},
	},
	{
		key:    "alphanumeric_color",
		encode: func(o *Object) (any, error) { return categorical(o.AlphanumericColor) },
		decode: func(o *Object, v any, path string) error {
			token, ok, err := decodeToken(v, path)
			if err != nil || !ok {
				o.AlphanumericColor = odlc.ColorUnset
				return err
			}
			o.AlphanumericColor, err = odlc.ParseColor(token)
			return err
		},
	},
	{
		key:    "alphanumeric",
		encode: func(o *Object) (any, error) { return o.Alphanumeric, nil },
		decode: func(o *Object, v any, path string) (err error) {
			if v == nil {
				o.Alphanumeric = ""
				return nil
			}
			o.Alphanumeric, err = asString(v, path)
			return err
		},
	},
	{
		key:    "description",
		encode: func(o *Object) (any, error) { return o.Description, nil },
		decode: func(o *Object, v any, path string) (err error) {
			if v == nil {
				o.Description = ""
				return nil
			}
			o.Description, err = asString(v, path)
			return err
		},
	},
	{
		key:    "autonomous",
		encode: func(o *Object) (any, error) { return o.Autonomous, nil },
		decode: func(o *Object, v any, path string) (err error) {
			o.Autonomous, err = asBool(v, path)
			return err
		},
	},
}

// ObjectFieldKeys lists the wire keys of an ODLC report in table order.
func ObjectFieldKeys() []string {
	keys := make([]string, len(objectFields))
	for i, f := range objectFields {
		keys[i] = f.key
	}
	return keys
}

// ObjectToDict encodes an ODLC report. Every known key is present; unset
// categorical fields encode as nil. A categorical value outside its
// enumeration fails the whole encode.
func (t *Translator) ObjectToDict(o Object) (d Dict, err error) {
	start := t.clock.Now()
	defer func() { t.observe(KindObjectEncode, start, err) }()

	d = make(Dict, len(objectFields))
	for _, f := range objectFields {
		v, err := f.encode(&o)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.key, err)
		}
		d[f.key] = v
	}
	return d, nil
}

// ObjectFromDict decodes an ODLC report onto a zero record. Keys absent
// from data leave their field unset.
func (t *Translator) ObjectFromDict(data Dict) (Object, error) {
	var o Object
	if err := t.ApplyObjectDict(&o, data); err != nil {
		return Object{}, err
	}
	return o, nil
}

// ApplyObjectDict updates o with every known key present in data.
//
// The update is all-or-nothing: if any present field fails to decode, o is
// left exactly as it was. Unknown keys such as "id" or "user" that the
// server adds to its responses are ignored. A null categorical or text
// value clears the field.
func (t *Translator) ApplyObjectDict(o *Object, data Dict) (err error) {
	start := t.clock.Now()
	defer func() { t.observe(KindObjectDecode, start, err) }()

	if o == nil {
		return fmt.Errorf("apply object: nil target")
	}

	staged := *o
	for _, f := range objectFields {
		v, ok := data[f.key]
		if !ok {
			continue
		}
		if err := f.decode(&staged, v, f.key); err != nil {
			if _, ok := odlc.IsUnknownEnumValue(err); ok {
				return fmt.Errorf("%s: %w", f.key, err)
			}
			return err
		}
	}
	*o = staged
	return nil
}
