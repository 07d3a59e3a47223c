package wire

import (
	"fmt"
	"math/big"

	"github.com/anirudhraja/parcelite/schema"
)

// List payloads hold a 32-bit element count followed by the elements.
// Fixed-width elements lie inline; variable-length elements each carry
// their own 32-bit byte length (NullElementLen marking a null element).
// Object elements are complete envelopes inside their length prefix, so a
// reader without the concrete schema can still carve them out.

// ListDecoder handles list decoding operations
type ListDecoder struct {
	decoder *Decoder
}

// ListEncoder handles list encoding operations
type ListEncoder struct {
	encoder *Encoder
}

// NewListDecoder creates a new list decoder
func NewListDecoder(d *Decoder) *ListDecoder {
	return &ListDecoder{decoder: d}
}

// NewListEncoder creates a new list encoder
func NewListEncoder(e *Encoder) *ListEncoder {
	return &ListEncoder{encoder: e}
}

// DECODER METHODS

// DecodeList decodes a complete list payload.
func (ld *ListDecoder) DecodeList(elemType *schema.FieldType) ([]interface{}, error) {
	if elemType == nil {
		return nil, ErrUnsupportedKind
	}
	count, err := ld.decoder.buf.ReadUint32()
	if err != nil {
		return nil, err
	}
	if int(count) > ld.decoder.buf.Remaining() {
		// Even zero-byte elements cannot outnumber the remaining bytes.
		return nil, ErrMalformedField
	}
	result := make([]interface{}, 0, count)
	for i := uint32(0); i < count; i++ {
		elem, err := ld.decoder.decodeElement(*elemType)
		if err != nil {
			return nil, wrapWithField(err, fmt.Sprintf("[%d]", i))
		}
		result = append(result, elem)
	}
	return result, nil
}

// decodeElement decodes one list or sparse-map element.
func (d *Decoder) decodeElement(elemType schema.FieldType) (interface{}, error) {
	if schema.IsFixed(elemType.Kind) {
		sd := NewScalarDecoder(d)
		return sd.DecodeScalar(elemType.Kind)
	}

	length, err := d.buf.ReadUint32()
	if err != nil {
		return nil, err
	}
	if length == NullElementLen {
		return nil, nil
	}
	if int(length) > d.buf.Remaining() {
		return nil, ErrUnexpectedEOF
	}

	start := d.buf.Pos()
	value, err := d.decodePayload(elemType, length)
	if err != nil {
		return nil, err
	}
	if d.buf.Pos()-start != int(length) {
		return nil, ErrMalformedField
	}
	return value, nil
}

// ENCODER METHODS

// EncodeList encodes a complete list payload.
func (le *ListEncoder) EncodeList(elemType *schema.FieldType, value interface{}) error {
	if elemType == nil {
		return ErrUnsupportedKind
	}
	elems, err := toElementSlice(value)
	if err != nil {
		return err
	}
	le.encoder.buf.WriteUint32(uint32(len(elems)))
	for i, elem := range elems {
		if err := le.encoder.encodeElement(*elemType, elem); err != nil {
			return wrapWithField(err, fmt.Sprintf("[%d]", i))
		}
	}
	return nil
}

// encodeElement encodes one list or sparse-map element.
func (e *Encoder) encodeElement(elemType schema.FieldType, value interface{}) error {
	if schema.IsFixed(elemType.Kind) {
		if value == nil {
			return fmt.Errorf("fixed-width element must not be nil")
		}
		se := NewScalarEncoder(e)
		return se.EncodeScalar(elemType.Kind, value)
	}

	if value == nil {
		e.buf.WriteUint32(NullElementLen)
		return nil
	}

	lenPos := e.beginLength()
	if err := e.encodePayload(elemType, value); err != nil {
		return err
	}
	return e.endLength(lenPos)
}

// toElementSlice converts the supported concrete slice types to a generic
// element slice.
func toElementSlice(value interface{}) ([]interface{}, error) {
	switch v := value.(type) {
	case []interface{}:
		return v, nil
	case []map[string]interface{}:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = val
		}
		return out, nil
	case []string:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = val
		}
		return out, nil
	case [][]byte:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = val
		}
		return out, nil
	case []bool:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = val
		}
		return out, nil
	case []int16:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = val
		}
		return out, nil
	case []int32:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = val
		}
		return out, nil
	case []int64:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = val
		}
		return out, nil
	case []uint32:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = val
		}
		return out, nil
	case []uint64:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = val
		}
		return out, nil
	case []float32:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = val
		}
		return out, nil
	case []float64:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = val
		}
		return out, nil
	case []*big.Int:
		out := make([]interface{}, len(v))
		for i, val := range v {
			if val == nil {
				out[i] = nil
			} else {
				out[i] = val
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("list value must be a slice, got %T", value)
	}
}
