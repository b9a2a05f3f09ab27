package interop

import (
	"errors"
	"fmt"
)

// MissingFieldError represents a structurally required key that is absent.
type MissingFieldError struct {
	// Path is the dotted location of the key, e.g. "fly_zones[0].altitude_msl_max"
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Path)
}

// FieldTypeError represents a present value that cannot be converted
// to the type its field requires.
type FieldTypeError struct {
	Path string
	Want string
	Got  any
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("field %q: want %s, got %T", e.Path, e.Want, e.Got)
}

// IsMissingField checks if an error is a missing field error.
func IsMissingField(err error) (*MissingFieldError, bool) {
	var mfe *MissingFieldError
	if errors.As(err, &mfe) {
		return mfe, true
	}
	return nil, false
}

// IsFieldType checks if an error is a field type error.
func IsFieldType(err error) (*FieldTypeError, bool) {
	var fte *FieldTypeError
	if errors.As(err, &fte) {
		return fte, true
	}
	return nil, false
}
