package wire

import (
	"github.com/anirudhraja/parcelite/registry"
	"github.com/anirudhraja/parcelite/schema"
)

// Encoder handles low-level parcel wire format encoding
type Encoder struct {
	buf      *Buffer
	registry *registry.Registry
}

// NewEncoder creates a new wire format encoder
func NewEncoder() *Encoder {
	return &Encoder{
		buf: NewWriteBuffer(),
	}
}

// NewEncoderWithRegistry creates an encoder with schema registry
func NewEncoderWithRegistry(registry *registry.Registry) *Encoder {
	return &Encoder{
		buf:      NewWriteBuffer(),
		registry: registry,
	}
}

// Bytes returns the encoded bytes
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Buffer returns the underlying buffer cursor.
func (e *Encoder) Buffer() *Buffer {
	return e.buf
}

// Reset clears the encoder buffer
func (e *Encoder) Reset() {
	e.buf = NewWriteBuffer()
}

// EncodeObject encodes a value map into a parcel using schema - main entry point
func EncodeObject(data map[string]interface{}, obj *schema.Object, registry *registry.Registry) ([]byte, error) {
	encoder := NewEncoderWithRegistry(registry)
	oe := NewObjectEncoder(encoder)
	err := oe.EncodeObject(data, obj)
	if err != nil {
		return nil, err
	}
	return encoder.Bytes(), nil
}
