package wire

import (
	"github.com/anirudhraja/parcelite/registry"
	"github.com/anirudhraja/parcelite/schema"
)

// Decoder handles low-level parcel wire format decoding
type Decoder struct {
	buf      *Buffer
	registry *registry.Registry
}

// NewDecoder creates a new wire format decoder
func NewDecoder(data []byte) *Decoder {
	return &Decoder{
		buf: NewBuffer(data),
	}
}

// NewDecoderWithRegistry creates a decoder with schema registry
func NewDecoderWithRegistry(data []byte, registry *registry.Registry) *Decoder {
	return &Decoder{
		buf:      NewBuffer(data),
		registry: registry,
	}
}

// Buffer returns the underlying buffer cursor.
func (d *Decoder) Buffer() *Buffer {
	return d.buf
}

// DecodeObject decodes parcel bytes using schema - main entry point
func DecodeObject(data []byte, obj *schema.Object, registry *registry.Registry) (map[string]interface{}, error) {
	decoder := NewDecoderWithRegistry(data, registry)
	od := NewObjectDecoder(decoder)
	return od.DecodeObject(obj)
}

// ReadHeader reads one field header at the cursor, resolving the explicit
// length word for escaped fields.
func (d *Decoder) ReadHeader() (Header, error) {
	word, err := d.buf.ReadUint32()
	if err != nil {
		return Header{}, err
	}
	id, indicator := ParseHeader(word)
	switch indicator {
	case SizeNull:
		return Header{ID: id, Null: true}, nil
	case SizeEscape:
		size, err := d.buf.ReadUint32()
		if err != nil {
			return Header{}, err
		}
		return Header{ID: id, Size: size}, nil
	default:
		return Header{ID: id, Size: indicator}, nil
	}
}

// SkipField advances the cursor past a field's payload using only the size
// carried by its header, never type knowledge. This is what lets a reader
// built against an older schema pass over fields it does not recognize.
func (d *Decoder) SkipField(h Header) error {
	if h.Null {
		return nil
	}
	return d.buf.Skip(int(h.Size))
}

// ReadField decodes the value for an already-read header. Null headers
// yield nil. A typed decoder that consumes a byte count different from the
// header's declared size is a malformed field.
func (d *Decoder) ReadField(h Header, fieldType schema.FieldType) (interface{}, error) {
	if h.Null {
		return nil, nil
	}

	if schema.IsFixed(fieldType.Kind) {
		if int(h.Size) != schema.FixedSize(fieldType.Kind) {
			return nil, ErrMalformedField
		}
		sd := NewScalarDecoder(d)
		return sd.DecodeScalar(fieldType.Kind)
	}

	if int(h.Size) > d.buf.Remaining() {
		return nil, ErrUnexpectedEOF
	}

	start := d.buf.Pos()
	value, err := d.decodePayload(fieldType, h.Size)
	if err != nil {
		return nil, err
	}
	if d.buf.Pos()-start != int(h.Size) {
		return nil, ErrMalformedField
	}
	return value, nil
}

// decodePayload routes a variable-length payload to its typed decoder.
func (d *Decoder) decodePayload(fieldType schema.FieldType, size uint32) (interface{}, error) {
	switch fieldType.Kind {
	case schema.KindString:
		bd := NewBytesDecoder(d)
		return bd.DecodeString(int(size))
	case schema.KindBytes:
		bd := NewBytesDecoder(d)
		return bd.DecodeBytes(int(size))
	case schema.KindBigInt:
		bd := NewBigDecoder(d)
		return bd.DecodeBigInt(int(size))
	case schema.KindBigDecimal:
		bd := NewBigDecoder(d)
		return bd.DecodeBigDecimal(int(size))
	case schema.KindList:
		ld := NewListDecoder(d)
		return ld.DecodeList(fieldType.Element)
	case schema.KindSparseMap:
		sd := NewSparseDecoder(d)
		return sd.DecodeSparse(fieldType.Value)
	case schema.KindObject:
		return d.decodeNested(fieldType.ObjectType, size)
	default:
		return nil, ErrUnsupportedKind
	}
}

// decodeNested decodes a nested object payload: a complete envelope. When
// no schema is available the payload is surfaced as opaque bytes, reusable
// by readers that do know the concrete type.
func (d *Decoder) decodeNested(objectType string, size uint32) (interface{}, error) {
	if d.registry == nil {
		return d.buf.ReadBytes(int(size))
	}
	obj, err := d.registry.GetObject(objectType)
	if err != nil {
		// Schema not found, surface raw envelope bytes.
		return d.buf.ReadBytes(int(size))
	}

	od := NewObjectDecoder(d)
	return od.DecodeObject(obj)
}
