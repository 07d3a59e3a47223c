package wire

import (
	"fmt"
	"math/big"

	"github.com/anirudhraja/parcelite/schema"
)

// WriteField emits one complete field: header, explicit length word where
// the kind calls for it, then the payload.
//
// A nil value with writeIfAbsent=false writes nothing at all, the default
// space-saving path. A nil value with writeIfAbsent=true writes a lone
// null-marker header so a reader can tell "explicitly null" from "never
// written".
func (e *Encoder) WriteField(id FieldID, fieldType schema.FieldType, value interface{}, writeIfAbsent bool) error {
	if value == nil {
		if !writeIfAbsent {
			return nil
		}
		e.buf.WriteUint32(MakeHeader(id, SizeNull))
		return nil
	}

	if schema.IsFixed(fieldType.Kind) {
		e.buf.WriteUint32(MakeHeader(id, uint32(schema.FixedSize(fieldType.Kind))))
		se := NewScalarEncoder(e)
		return se.EncodeScalar(fieldType.Kind, value)
	}

	// Variable-length: always the escape indicator plus an explicit length
	// word, backpatched once the payload is written, so skipping never
	// needs type knowledge.
	e.buf.WriteUint32(MakeHeader(id, SizeEscape))
	lenPos := e.beginLength()
	if err := e.encodePayload(fieldType, value); err != nil {
		return err
	}
	return e.endLength(lenPos)
}

// beginLength reserves a 32-bit length word at the cursor and returns its
// position for backpatching.
func (e *Encoder) beginLength() int {
	pos := e.buf.Pos()
	e.buf.WriteUint32(0)
	return pos
}

// endLength backpatches a reserved length word with the byte count written
// since it was reserved.
func (e *Encoder) endLength(lenPos int) error {
	return e.buf.PatchUint32(lenPos, uint32(e.buf.Pos()-lenPos-4))
}

// encodePayload routes a variable-length value to its typed encoder.
func (e *Encoder) encodePayload(fieldType schema.FieldType, value interface{}) error {
	switch fieldType.Kind {
	case schema.KindString:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		NewBytesEncoder(e).EncodeString(s)
		return nil
	case schema.KindBytes:
		b, ok := value.([]byte)
		if !ok {
			return fmt.Errorf("expected []byte, got %T", value)
		}
		NewBytesEncoder(e).EncodeBytes(b)
		return nil
	case schema.KindBigInt:
		n, ok := value.(*big.Int)
		if !ok {
			return fmt.Errorf("expected *big.Int, got %T", value)
		}
		return NewBigEncoder(e).EncodeBigInt(n)
	case schema.KindBigDecimal:
		d, ok := value.(*schema.Decimal)
		if !ok {
			return fmt.Errorf("expected *schema.Decimal, got %T", value)
		}
		return NewBigEncoder(e).EncodeBigDecimal(d)
	case schema.KindList:
		return NewListEncoder(e).EncodeList(fieldType.Element, value)
	case schema.KindSparseMap:
		return NewSparseEncoder(e).EncodeSparse(fieldType.Value, value)
	case schema.KindObject:
		return e.encodeNested(fieldType.ObjectType, value)
	default:
		return ErrUnsupportedKind
	}
}

// encodeNested writes a nested object payload: a complete envelope. Opaque
// envelope bytes produced by an earlier decode pass through unchanged.
func (e *Encoder) encodeNested(objectType string, value interface{}) error {
	if raw, ok := value.([]byte); ok {
		e.buf.WriteBytes(raw)
		return nil
	}

	data, ok := value.(map[string]interface{})
	if !ok {
		return fmt.Errorf("object value must be map[string]interface{} or []byte, got %T", value)
	}

	if e.registry == nil {
		return fmt.Errorf("registry is required to encode object fields")
	}
	obj, err := e.registry.GetObject(objectType)
	if err != nil {
		return fmt.Errorf("failed to get object schema for %s: %v", objectType, err)
	}

	oe := NewObjectEncoder(e)
	return oe.EncodeObject(data, obj)
}
