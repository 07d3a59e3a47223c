package wire

import (
	"math/big"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anirudhraja/parcelite/registry"
	"github.com/anirudhraja/parcelite/schema"
)

func transcodeFixture(t *testing.T) (*schema.Object, *registry.Registry, map[string]interface{}) {
	t.Helper()

	reg := registry.NewRegistry()
	require.NoError(t, reg.RegisterObject(&schema.Object{
		Name:    "Vendor",
		Version: 1,
		Fields: []*schema.Field{
			{Name: "name", ID: 1, Type: schema.FieldType{Kind: schema.KindString}},
			{Name: "region", ID: 2, Type: schema.FieldType{Kind: schema.KindInt32}},
		},
	}))
	obj := &schema.Object{
		Name:    "Listing",
		Version: 3,
		Fields: []*schema.Field{
			{Name: "title", ID: 1, Type: schema.FieldType{Kind: schema.KindString}},
			{Name: "stock", ID: 2, Type: schema.FieldType{Kind: schema.KindInt32}},
			{Name: "thumb", ID: 3, Type: schema.FieldType{Kind: schema.KindBytes}},
			{Name: "balance", ID: 4, Type: schema.FieldType{Kind: schema.KindBigInt}},
			{Name: "price", ID: 5, Type: schema.FieldType{Kind: schema.KindBigDecimal}},
			{Name: "tags", ID: 6, Type: schema.FieldType{
				Kind:    schema.KindList,
				Element: &schema.FieldType{Kind: schema.KindString},
			}},
			{Name: "scores", ID: 7, Type: schema.FieldType{
				Kind:  schema.KindSparseMap,
				Value: &schema.FieldType{Kind: schema.KindInt32},
			}},
			{Name: "vendor", ID: 8, Type: schema.FieldType{Kind: schema.KindObject, ObjectType: "Vendor"}},
		},
	}
	require.NoError(t, reg.RegisterObject(obj))

	balance, _ := new(big.Int).SetString("123456789123456789123456789", 10)
	input := map[string]interface{}{
		"title":   "parcel codec",
		"stock":   int32(41),
		"thumb":   []byte{0x89, 0x50, 0x4E, 0x47},
		"balance": balance,
		"price":   &schema.Decimal{Unscaled: big.NewInt(199999), Scale: 2},
		"tags":    []string{"binary", "compact"},
		"scores":  map[int32]int32{1: 10, 5: 50},
		"vendor":  map[string]interface{}{"name": "acme", "region": int32(2)},
	}
	return obj, reg, input
}

func TestTranscode_CBORRoundTrip(t *testing.T) {
	obj, reg, input := transcodeFixture(t)

	parcel, err := EncodeObject(input, obj, reg)
	require.NoError(t, err)

	doc, err := TranscodeToCBOR(parcel, obj, reg)
	require.NoError(t, err)

	back, err := TranscodeFromCBOR(doc, obj, reg)
	require.NoError(t, err)

	want, err := DecodeObject(parcel, obj, reg)
	require.NoError(t, err)
	got, err := DecodeObject(back, obj, reg)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got, cmpOpts...); diff != "" {
		t.Fatalf("transcode round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestTranscode_Deterministic(t *testing.T) {
	obj, reg, input := transcodeFixture(t)

	parcel, err := EncodeObject(input, obj, reg)
	require.NoError(t, err)

	first, err := TranscodeToCBOR(parcel, obj, reg)
	require.NoError(t, err)
	second, err := TranscodeToCBOR(parcel, obj, reg)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTranscode_BigNumbersTravelAsStrings(t *testing.T) {
	obj, reg, input := transcodeFixture(t)

	parcel, err := EncodeObject(input, obj, reg)
	require.NoError(t, err)
	doc, err := TranscodeToCBOR(parcel, obj, reg)
	require.NoError(t, err)

	var plain map[string]interface{}
	require.NoError(t, cbor.Unmarshal(doc, &plain))
	assert.Equal(t, "123456789123456789123456789", plain["balance"])
	assert.Equal(t, "1999.99", plain["price"])
}

func TestTranscode_BadDocument(t *testing.T) {
	obj, reg, _ := transcodeFixture(t)
	_, err := TranscodeFromCBOR([]byte{0xFF, 0x00}, obj, reg)
	assert.Error(t, err)
}
