package wire

import (
	"fmt"
	"math"
	"math/big"

	"github.com/anirudhraja/parcelite/schema"
)

// coerceValue canonicalizes caller-supplied values to the concrete Go type
// a kind encodes. Untyped map literals, YAML-loaded defaults and JSON
// inputs arrive as int/float64/string; the codec itself only handles exact
// types.
func coerceValue(t schema.FieldType, v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	switch t.Kind {
	case schema.KindBool:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", v)
		}
		return b, nil
	case schema.KindByte:
		n, err := coerceToInt64(v)
		if err != nil {
			return nil, err
		}
		if n < 0 || n > math.MaxUint8 {
			return nil, fmt.Errorf("byte value %d out of range", n)
		}
		return byte(n), nil
	case schema.KindShort:
		n, err := coerceToInt64(v)
		if err != nil {
			return nil, err
		}
		if n < math.MinInt16 || n > math.MaxInt16 {
			return nil, fmt.Errorf("short value %d out of range", n)
		}
		return int16(n), nil
	case schema.KindChar:
		n, err := coerceToInt64(v)
		if err != nil {
			return nil, err
		}
		if n < 0 || n > math.MaxUint16 {
			return nil, fmt.Errorf("char value %d out of range", n)
		}
		return uint16(n), nil
	case schema.KindInt32:
		n, err := coerceToInt64(v)
		if err != nil {
			return nil, err
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return nil, fmt.Errorf("int32 value %d out of range", n)
		}
		return int32(n), nil
	case schema.KindInt64:
		return coerceToInt64(v)
	case schema.KindUint32:
		n, err := coerceToUint64(v)
		if err != nil {
			return nil, err
		}
		if n > math.MaxUint32 {
			return nil, fmt.Errorf("uint32 value %d out of range", n)
		}
		return uint32(n), nil
	case schema.KindUint64:
		return coerceToUint64(v)
	case schema.KindFloat32:
		switch f := v.(type) {
		case float32:
			return f, nil
		case float64:
			return float32(f), nil
		case int:
			return float32(f), nil
		default:
			return nil, fmt.Errorf("expected float32, got %T", v)
		}
	case schema.KindFloat64:
		switch f := v.(type) {
		case float64:
			return f, nil
		case float32:
			return float64(f), nil
		case int:
			return float64(f), nil
		default:
			return nil, fmt.Errorf("expected float64, got %T", v)
		}
	case schema.KindString:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		return s, nil
	case schema.KindBytes:
		switch b := v.(type) {
		case []byte:
			return b, nil
		case string:
			return []byte(b), nil
		default:
			return nil, fmt.Errorf("expected []byte, got %T", v)
		}
	case schema.KindBigInt:
		switch n := v.(type) {
		case *big.Int:
			return n, nil
		case string:
			parsed, ok := new(big.Int).SetString(n, 10)
			if !ok {
				return nil, fmt.Errorf("invalid big integer literal %q", n)
			}
			return parsed, nil
		case int:
			return big.NewInt(int64(n)), nil
		case int64:
			return big.NewInt(n), nil
		default:
			return nil, fmt.Errorf("expected *big.Int, got %T", v)
		}
	case schema.KindBigDecimal:
		switch d := v.(type) {
		case *schema.Decimal:
			return d, nil
		case string:
			parsed, ok := schema.ParseDecimal(d)
			if !ok {
				return nil, fmt.Errorf("invalid decimal literal %q", d)
			}
			return parsed, nil
		default:
			return nil, fmt.Errorf("expected *schema.Decimal, got %T", v)
		}
	default:
		// Collections and nested objects pass through; their element
		// encoders validate shape.
		return v, nil
	}
}

// Helpers to coerce numeric inputs to integers (accept float forms if integral)
func coerceToInt64(v interface{}) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case int32:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int:
		return int64(t), nil
	case byte:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows int64", t)
		}
		return int64(t), nil
	case float64:
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("non-integer numeric for integer field")
		}
		return int64(t), nil
	default:
		return 0, fmt.Errorf("expected integer-like, got %T", v)
	}
}

func coerceToUint64(v interface{}) (uint64, error) {
	switch t := v.(type) {
	case uint64:
		return t, nil
	case uint32:
		return uint64(t), nil
	case uint16:
		return uint64(t), nil
	case byte:
		return uint64(t), nil
	case uint:
		return uint64(t), nil
	case int:
		if t < 0 {
			return 0, fmt.Errorf("negative value for unsigned field")
		}
		return uint64(t), nil
	case int64:
		if t < 0 {
			return 0, fmt.Errorf("negative value for unsigned field")
		}
		return uint64(t), nil
	case float64:
		if t < 0 || t != math.Trunc(t) {
			return 0, fmt.Errorf("non-integer numeric for unsigned field")
		}
		return uint64(t), nil
	default:
		return 0, fmt.Errorf("expected unsigned-integer-like, got %T", v)
	}
}
