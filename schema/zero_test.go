package schema

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZeroValue_EveryKindIsItsOwnZero(t *testing.T) {
	kinds := []Kind{
		KindBool, KindByte, KindShort, KindChar,
		KindInt32, KindInt64, KindUint32, KindUint64,
		KindFloat32, KindFloat64, KindString, KindBytes,
		KindBigInt, KindBigDecimal, KindList, KindSparseMap,
	}
	for _, k := range kinds {
		ft := FieldType{Kind: k}
		if k == KindList {
			ft.Element = &FieldType{Kind: KindInt32}
		}
		if k == KindSparseMap {
			ft.Value = &FieldType{Kind: KindInt32}
		}
		assert.True(t, IsZeroValue(ft, ZeroValue(ft)), "kind %s", k)
	}
}

func TestZeroValue_BoxedScalarsZeroToNil(t *testing.T) {
	ft := FieldType{Kind: KindInt32, Boxed: true}
	assert.Nil(t, ZeroValue(ft))
	assert.True(t, IsZeroValue(ft, nil))
	// A present boxed 0 is not zero: it must survive elision as 0, not nil.
	assert.False(t, IsZeroValue(ft, int32(0)))
	assert.False(t, IsZeroValue(ft, int32(1)))
}

func TestIsZeroValue_NonZero(t *testing.T) {
	assert.False(t, IsZeroValue(FieldType{Kind: KindBool}, true))
	assert.False(t, IsZeroValue(FieldType{Kind: KindString}, "x"))
	assert.False(t, IsZeroValue(FieldType{Kind: KindBytes}, []byte{0}))
	assert.False(t, IsZeroValue(FieldType{Kind: KindBigInt}, big.NewInt(-1)))
	lt := FieldType{Kind: KindList, Element: &FieldType{Kind: KindInt32}}
	assert.False(t, IsZeroValue(lt, []interface{}{int32(0)}))
}

func TestValuesEqual(t *testing.T) {
	bigType := FieldType{Kind: KindBigInt}
	assert.True(t, ValuesEqual(bigType, big.NewInt(5), big.NewInt(5)))
	assert.False(t, ValuesEqual(bigType, big.NewInt(5), big.NewInt(6)))

	bytesType := FieldType{Kind: KindBytes}
	assert.True(t, ValuesEqual(bytesType, []byte{1, 2}, []byte{1, 2}))
	assert.False(t, ValuesEqual(bytesType, []byte{1}, []byte{1, 2}))

	listType := FieldType{Kind: KindList, Element: &FieldType{Kind: KindString}}
	assert.True(t, ValuesEqual(listType, []interface{}{"a", nil}, []interface{}{"a", nil}))
	assert.False(t, ValuesEqual(listType, []interface{}{"a"}, []interface{}{"b"}))

	decType := FieldType{Kind: KindBigDecimal}
	assert.True(t, ValuesEqual(decType,
		&Decimal{Unscaled: big.NewInt(10), Scale: 1},
		&Decimal{Unscaled: big.NewInt(10), Scale: 1}))

	assert.True(t, ValuesEqual(FieldType{Kind: KindInt32}, nil, nil))
	assert.False(t, ValuesEqual(FieldType{Kind: KindInt32}, nil, int32(0)))
}
