package wire

import (
	"fmt"
	"sort"

	"github.com/anirudhraja/parcelite/schema"
)

// Sparse maps are sorted int32-key -> value sequences: a 32-bit entry count
// followed by repeated (key, value) pairs with keys strictly ascending.
// Values encode exactly like list elements. The encoder sorts; the decoder
// treats out-of-order or duplicate keys as malformed unless configured to
// be lenient.

// SparseDecoder handles sparse map decoding operations
type SparseDecoder struct {
	decoder *Decoder
}

// SparseEncoder handles sparse map encoding operations
type SparseEncoder struct {
	encoder *Encoder
}

// NewSparseDecoder creates a new sparse map decoder
func NewSparseDecoder(d *Decoder) *SparseDecoder {
	return &SparseDecoder{decoder: d}
}

// NewSparseEncoder creates a new sparse map encoder
func NewSparseEncoder(e *Encoder) *SparseEncoder {
	return &SparseEncoder{encoder: e}
}

// DECODER METHODS

// DecodeSparse decodes a complete sparse map payload.
func (sd *SparseDecoder) DecodeSparse(valueType *schema.FieldType) (map[int32]interface{}, error) {
	if valueType == nil {
		return nil, ErrUnsupportedKind
	}
	buf := sd.decoder.buf
	count, err := buf.ReadUint32()
	if err != nil {
		return nil, err
	}
	if int(count) > buf.Remaining() {
		return nil, ErrMalformedField
	}

	result := make(map[int32]interface{}, count)
	havePrev := false
	var prev int32
	for i := uint32(0); i < count; i++ {
		keyWord, err := buf.ReadUint32()
		if err != nil {
			return nil, err
		}
		key := int32(keyWord)
		if havePrev && key <= prev && !config.LenientSparseKeyOrder {
			return nil, ErrMalformedField
		}
		prev, havePrev = key, true

		value, err := sd.decoder.decodeElement(*valueType)
		if err != nil {
			return nil, wrapWithField(err, fmt.Sprintf("[%d]", key))
		}
		result[key] = value
	}
	return result, nil
}

// ENCODER METHODS

// EncodeSparse encodes a complete sparse map payload, sorting keys.
func (se *SparseEncoder) EncodeSparse(valueType *schema.FieldType, value interface{}) error {
	if valueType == nil {
		return ErrUnsupportedKind
	}
	entries, err := toSparseMap(value)
	if err != nil {
		return err
	}

	keys := make([]int32, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	buf := se.encoder.buf
	buf.WriteUint32(uint32(len(keys)))
	for _, k := range keys {
		buf.WriteUint32(uint32(k))
		if err := se.encoder.encodeElement(*valueType, entries[k]); err != nil {
			return wrapWithField(err, fmt.Sprintf("[%d]", k))
		}
	}
	return nil
}

// toSparseMap converts the supported concrete map types to the generic
// sparse map form.
func toSparseMap(value interface{}) (map[int32]interface{}, error) {
	switch v := value.(type) {
	case map[int32]interface{}:
		return v, nil
	case map[int32]string:
		out := make(map[int32]interface{}, len(v))
		for k, val := range v {
			out[k] = val
		}
		return out, nil
	case map[int32]int32:
		out := make(map[int32]interface{}, len(v))
		for k, val := range v {
			out[k] = val
		}
		return out, nil
	case map[int32]int64:
		out := make(map[int32]interface{}, len(v))
		for k, val := range v {
			out[k] = val
		}
		return out, nil
	case map[int32][]byte:
		out := make(map[int32]interface{}, len(v))
		for k, val := range v {
			out[k] = val
		}
		return out, nil
	case map[int32]map[string]interface{}:
		out := make(map[int32]interface{}, len(v))
		for k, val := range v {
			out[k] = val
		}
		return out, nil
	default:
		return nil, fmt.Errorf("sparse map value must be keyed by int32, got %T", value)
	}
}
