package wire

import (
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"

	"github.com/anirudhraja/parcelite/registry"
	"github.com/anirudhraja/parcelite/schema"
)

// Transcoding bridges parcel bytes to CBOR for debugging and for storage
// layers that want a self-describing representation. The CBOR side uses
// Core Deterministic Encoding so the same logical object always produces
// identical bytes. Big numbers and decimals travel as decimal strings to
// stay readable; the schema directs the trip back.

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("wire: CBOR encoder initialization failed: " + err.Error())
	}
	cborDec, err = cbor.DecOptions{IntDec: cbor.IntDecConvertSigned}.DecMode()
	if err != nil {
		panic("wire: CBOR decoder initialization failed: " + err.Error())
	}
}

// TranscodeToCBOR decodes parcel bytes and re-encodes the value map as
// deterministic CBOR.
func TranscodeToCBOR(parcel []byte, obj *schema.Object, reg *registry.Registry) ([]byte, error) {
	data, err := DecodeObject(parcel, obj, reg)
	if err != nil {
		return nil, err
	}
	plain, err := objectToPlain(data, obj, reg)
	if err != nil {
		return nil, err
	}
	return cborEnc.Marshal(plain)
}

// TranscodeFromCBOR decodes a CBOR document and re-encodes it as parcel
// bytes under the given schema. The round trip through CBOR is lossless.
func TranscodeFromCBOR(doc []byte, obj *schema.Object, reg *registry.Registry) ([]byte, error) {
	var plain map[string]interface{}
	if err := cborDec.Unmarshal(doc, &plain); err != nil {
		return nil, err
	}
	data, err := objectFromPlain(plain, obj, reg)
	if err != nil {
		return nil, err
	}
	return EncodeObject(data, obj, reg)
}

// objectToPlain converts a decoded value map to CBOR-friendly types.
func objectToPlain(data map[string]interface{}, obj *schema.Object, reg *registry.Registry) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(data))
	for _, f := range obj.Fields {
		v, ok := data[f.Name]
		if !ok {
			continue
		}
		plain, err := valueToPlain(f.Type, v, reg)
		if err != nil {
			return nil, wrapWithField(err, f.Name)
		}
		out[f.Name] = plain
	}
	return out, nil
}

func valueToPlain(t schema.FieldType, v interface{}, reg *registry.Registry) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	switch t.Kind {
	case schema.KindBigInt:
		n, ok := v.(*big.Int)
		if !ok {
			return nil, fmt.Errorf("expected *big.Int, got %T", v)
		}
		return n.String(), nil
	case schema.KindBigDecimal:
		d, ok := v.(*schema.Decimal)
		if !ok {
			return nil, fmt.Errorf("expected *schema.Decimal, got %T", v)
		}
		return d.String(), nil
	case schema.KindList:
		elems, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("expected []interface{}, got %T", v)
		}
		out := make([]interface{}, len(elems))
		for i, elem := range elems {
			plain, err := valueToPlain(*t.Element, elem, reg)
			if err != nil {
				return nil, err
			}
			out[i] = plain
		}
		return out, nil
	case schema.KindSparseMap:
		entries, ok := v.(map[int32]interface{})
		if !ok {
			return nil, fmt.Errorf("expected map[int32]interface{}, got %T", v)
		}
		out := make(map[int32]interface{}, len(entries))
		for k, elem := range entries {
			plain, err := valueToPlain(*t.Value, elem, reg)
			if err != nil {
				return nil, err
			}
			out[k] = plain
		}
		return out, nil
	case schema.KindObject:
		nested, ok := v.(map[string]interface{})
		if !ok {
			// Opaque envelope bytes from a decode without the nested
			// schema stay as bytes.
			return v, nil
		}
		if reg == nil {
			return nested, nil
		}
		nestedObj, err := reg.GetObject(t.ObjectType)
		if err != nil {
			return nested, nil
		}
		return objectToPlain(nested, nestedObj, reg)
	default:
		return v, nil
	}
}

// objectFromPlain converts CBOR-decoded generic values back to the codec's
// canonical types under schema direction.
func objectFromPlain(plain map[string]interface{}, obj *schema.Object, reg *registry.Registry) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(plain))
	for _, f := range obj.Fields {
		v, ok := plain[f.Name]
		if !ok || v == nil {
			continue
		}
		value, err := valueFromPlain(f.Type, v, reg)
		if err != nil {
			return nil, wrapWithField(err, f.Name)
		}
		out[f.Name] = value
	}
	return out, nil
}

func valueFromPlain(t schema.FieldType, v interface{}, reg *registry.Registry) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	switch t.Kind {
	case schema.KindList:
		elems, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("expected list, got %T", v)
		}
		out := make([]interface{}, len(elems))
		for i, elem := range elems {
			value, err := valueFromPlain(*t.Element, elem, reg)
			if err != nil {
				return nil, err
			}
			out[i] = value
		}
		return out, nil
	case schema.KindSparseMap:
		out := make(map[int32]interface{})
		generic, ok := v.(map[interface{}]interface{})
		if !ok {
			return nil, fmt.Errorf("expected map, got %T", v)
		}
		for k, elem := range generic {
			key, err := coerceToInt64(k)
			if err != nil {
				return nil, fmt.Errorf("sparse map key: %v", err)
			}
			value, err := valueFromPlain(*t.Value, elem, reg)
			if err != nil {
				return nil, err
			}
			out[int32(key)] = value
		}
		return out, nil
	case schema.KindObject:
		nested, ok := v.(map[string]interface{})
		if !ok {
			// CBOR decodes nested maps with interface{} keys.
			if generic, isGeneric := v.(map[interface{}]interface{}); isGeneric {
				nested = make(map[string]interface{}, len(generic))
				for k, elem := range generic {
					name, isString := k.(string)
					if !isString {
						return nil, fmt.Errorf("expected string object key, got %T", k)
					}
					nested[name] = elem
				}
			} else if raw, isRaw := v.([]byte); isRaw {
				return raw, nil
			} else {
				return nil, fmt.Errorf("expected object map, got %T", v)
			}
		}
		if reg == nil {
			return nested, nil
		}
		nestedObj, err := reg.GetObject(t.ObjectType)
		if err != nil {
			return nested, nil
		}
		return objectFromPlain(nested, nestedObj, reg)
	default:
		return coerceValue(t, v)
	}
}
