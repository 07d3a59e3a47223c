package wire

import (
	"errors"
	"fmt"
	"strings"
)

// Codec error taxonomy. All of these abort the current encode or decode
// call; none are retried field-by-field. Unknown field ids are NOT errors;
// they are skipped, which is the compatibility mechanism.
var (
	// ErrUnexpectedEOF: a read required more bytes than remain.
	ErrUnexpectedEOF = errors.New("unexpected end of buffer")

	// ErrMalformedField: a typed decoder consumed a byte count different
	// from what the field header declared.
	ErrMalformedField = errors.New("malformed field")

	// ErrFraming: the read cursor did not land exactly on the envelope end
	// offset, or a nested envelope's declared length exceeds the remaining
	// buffer.
	ErrFraming = errors.New("object framing error")

	// ErrUnsupportedKind: a field kind outside the recognized catalog was
	// requested. This is a programming error, not a data error.
	ErrUnsupportedKind = errors.New("unsupported field kind")
)

// FieldError represents an encoding/decoding error with a field path.
type FieldError struct {
	FieldPath []string // e.g., ["installed_apps", "icon", "data"]
	Err       error    // underlying error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if len(e.FieldPath) == 0 {
		return e.Err.Error()
	}

	return fmt.Sprintf("error at parcel path %s: %v", strings.Join(e.FieldPath, "."), e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for compatibility.
func (e *FieldError) Is(target error) bool {
	_, ok := target.(*FieldError)
	return ok
}

// wrapWithField wraps an error with a field name
func wrapWithField(err error, fieldName string) error {
	if err == nil {
		return nil
	}

	if fe, ok := err.(*FieldError); ok {
		return &FieldError{
			FieldPath: append([]string{fieldName}, fe.FieldPath...),
			Err:       fe.Err,
		}
	}

	return &FieldError{
		FieldPath: []string{fieldName},
		Err:       err,
	}
}
