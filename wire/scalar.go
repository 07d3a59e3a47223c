package wire

import (
	"fmt"
	"math"

	"github.com/anirudhraja/parcelite/schema"
)

// ScalarDecoder handles fixed-width decoding operations
type ScalarDecoder struct {
	decoder *Decoder
}

// ScalarEncoder handles fixed-width encoding operations
type ScalarEncoder struct {
	encoder *Encoder
}

// NewScalarDecoder creates a new scalar decoder
func NewScalarDecoder(d *Decoder) *ScalarDecoder {
	return &ScalarDecoder{decoder: d}
}

// NewScalarEncoder creates a new scalar encoder
func NewScalarEncoder(e *Encoder) *ScalarEncoder {
	return &ScalarEncoder{encoder: e}
}

// DECODER METHODS

// DecodeScalar decodes one fixed-width value of the given kind. Narrow
// kinds (bool, byte, short, char) arrive in a full 4-byte word.
func (sd *ScalarDecoder) DecodeScalar(kind schema.Kind) (interface{}, error) {
	buf := sd.decoder.buf
	switch kind {
	case schema.KindBool:
		w, err := buf.ReadUint32()
		if err != nil {
			return nil, err
		}
		return w != 0, nil
	case schema.KindByte:
		w, err := buf.ReadUint32()
		if err != nil {
			return nil, err
		}
		return byte(w), nil
	case schema.KindShort:
		w, err := buf.ReadUint32()
		if err != nil {
			return nil, err
		}
		return int16(uint16(w)), nil
	case schema.KindChar:
		w, err := buf.ReadUint32()
		if err != nil {
			return nil, err
		}
		return uint16(w), nil
	case schema.KindInt32:
		w, err := buf.ReadUint32()
		if err != nil {
			return nil, err
		}
		return int32(w), nil
	case schema.KindUint32:
		return buf.ReadUint32()
	case schema.KindFloat32:
		w, err := buf.ReadUint32()
		if err != nil {
			return nil, err
		}
		return math.Float32frombits(w), nil
	case schema.KindInt64:
		w, err := buf.ReadUint64()
		if err != nil {
			return nil, err
		}
		return int64(w), nil
	case schema.KindUint64:
		return buf.ReadUint64()
	case schema.KindFloat64:
		w, err := buf.ReadUint64()
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(w), nil
	default:
		return nil, ErrUnsupportedKind
	}
}

// ENCODER METHODS

// EncodeScalar encodes one fixed-width value of the given kind.
func (se *ScalarEncoder) EncodeScalar(kind schema.Kind, value interface{}) error {
	buf := se.encoder.buf
	switch kind {
	case schema.KindBool:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		if b {
			buf.WriteUint32(1)
		} else {
			buf.WriteUint32(0)
		}
	case schema.KindByte:
		b, ok := value.(byte)
		if !ok {
			return fmt.Errorf("expected byte, got %T", value)
		}
		buf.WriteUint32(uint32(b))
	case schema.KindShort:
		n, ok := value.(int16)
		if !ok {
			return fmt.Errorf("expected int16, got %T", value)
		}
		buf.WriteUint32(uint32(uint16(n)))
	case schema.KindChar:
		n, ok := value.(uint16)
		if !ok {
			return fmt.Errorf("expected uint16, got %T", value)
		}
		buf.WriteUint32(uint32(n))
	case schema.KindInt32:
		n, ok := value.(int32)
		if !ok {
			return fmt.Errorf("expected int32, got %T", value)
		}
		buf.WriteUint32(uint32(n))
	case schema.KindUint32:
		n, ok := value.(uint32)
		if !ok {
			return fmt.Errorf("expected uint32, got %T", value)
		}
		buf.WriteUint32(n)
	case schema.KindFloat32:
		f, ok := value.(float32)
		if !ok {
			return fmt.Errorf("expected float32, got %T", value)
		}
		buf.WriteUint32(math.Float32bits(f))
	case schema.KindInt64:
		n, ok := value.(int64)
		if !ok {
			return fmt.Errorf("expected int64, got %T", value)
		}
		buf.WriteUint64(uint64(n))
	case schema.KindUint64:
		n, ok := value.(uint64)
		if !ok {
			return fmt.Errorf("expected uint64, got %T", value)
		}
		buf.WriteUint64(n)
	case schema.KindFloat64:
		f, ok := value.(float64)
		if !ok {
			return fmt.Errorf("expected float64, got %T", value)
		}
		buf.WriteUint64(math.Float64bits(f))
	default:
		return ErrUnsupportedKind
	}
	return nil
}
