package schema

import (
	"bytes"
	"math/big"
	"reflect"
)

// ZeroValue returns the intrinsic zero value of a field type: false, 0,
// empty string, empty collection. Boxed scalars zero to nil. Elision mode
// is defined purely in terms of these values, never declared defaults.
func ZeroValue(t FieldType) interface{} {
	if t.Boxed {
		return nil
	}
	switch t.Kind {
	case KindBool:
		return false
	case KindByte:
		return byte(0)
	case KindShort:
		return int16(0)
	case KindChar:
		return uint16(0)
	case KindInt32:
		return int32(0)
	case KindInt64:
		return int64(0)
	case KindUint32:
		return uint32(0)
	case KindUint64:
		return uint64(0)
	case KindFloat32:
		return float32(0)
	case KindFloat64:
		return float64(0)
	case KindString:
		return ""
	case KindBytes:
		return []byte{}
	case KindBigInt:
		return new(big.Int)
	case KindBigDecimal:
		return &Decimal{Unscaled: new(big.Int)}
	case KindList:
		return []interface{}{}
	case KindSparseMap:
		return map[int32]interface{}{}
	case KindObject:
		return nil
	default:
		return nil
	}
}

// IsZeroValue reports whether v equals the intrinsic zero of t. For a
// boxed scalar only nil is zero: a present boxed 0 and an absent value
// decode differently, so the eliding writer must keep the 0 on the wire.
func IsZeroValue(t FieldType, v interface{}) bool {
	if v == nil {
		return true
	}
	if t.Boxed {
		return false
	}
	switch t.Kind {
	case KindBool:
		b, ok := v.(bool)
		return ok && !b
	case KindByte:
		b, ok := v.(byte)
		return ok && b == 0
	case KindShort:
		n, ok := v.(int16)
		return ok && n == 0
	case KindChar:
		n, ok := v.(uint16)
		return ok && n == 0
	case KindInt32:
		n, ok := v.(int32)
		return ok && n == 0
	case KindInt64:
		n, ok := v.(int64)
		return ok && n == 0
	case KindUint32:
		n, ok := v.(uint32)
		return ok && n == 0
	case KindUint64:
		n, ok := v.(uint64)
		return ok && n == 0
	case KindFloat32:
		f, ok := v.(float32)
		return ok && f == 0
	case KindFloat64:
		f, ok := v.(float64)
		return ok && f == 0
	case KindString:
		s, ok := v.(string)
		return ok && s == ""
	case KindBytes:
		b, ok := v.([]byte)
		return ok && len(b) == 0
	case KindBigInt:
		n, ok := v.(*big.Int)
		return ok && (n == nil || n.Sign() == 0)
	case KindBigDecimal:
		d, ok := v.(*Decimal)
		return ok && (d == nil || (d.Scale == 0 && d.Unscaled.Sign() == 0))
	case KindList:
		l, ok := v.([]interface{})
		return ok && len(l) == 0
	case KindSparseMap:
		m, ok := v.(map[int32]interface{})
		return ok && len(m) == 0
	case KindObject:
		return false
	default:
		return false
	}
}

// ValuesEqual compares two decoded values of the same field type. Used by
// tests and by the elision-mode writer when deciding whether a collection
// already holds its zero value.
func ValuesEqual(t FieldType, a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch t.Kind {
	case KindBytes:
		x, ok1 := a.([]byte)
		y, ok2 := b.([]byte)
		return ok1 && ok2 && bytes.Equal(x, y)
	case KindBigInt:
		x, ok1 := a.(*big.Int)
		y, ok2 := b.(*big.Int)
		return ok1 && ok2 && x.Cmp(y) == 0
	case KindBigDecimal:
		x, ok1 := a.(*Decimal)
		y, ok2 := b.(*Decimal)
		return ok1 && ok2 && x.Equal(y)
	case KindList:
		x, ok1 := a.([]interface{})
		y, ok2 := b.([]interface{})
		if !ok1 || !ok2 || len(x) != len(y) {
			return false
		}
		var et FieldType
		if t.Element != nil {
			et = *t.Element
		}
		for i := range x {
			if !ValuesEqual(et, x[i], y[i]) {
				return false
			}
		}
		return true
	case KindObject, KindSparseMap:
		return reflect.DeepEqual(a, b)
	default:
		return a == b
	}
}
