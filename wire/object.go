package wire

import (
	"fmt"
	"sort"

	"github.com/anirudhraja/parcelite/schema"
)

// ObjectDecoder handles object decoding operations
type ObjectDecoder struct {
	decoder *Decoder
}

// ObjectEncoder handles object encoding operations
type ObjectEncoder struct {
	encoder *Encoder
}

// NewObjectDecoder creates a new object decoder
func NewObjectDecoder(d *Decoder) *ObjectDecoder {
	return &ObjectDecoder{decoder: d}
}

// NewObjectEncoder creates a new object encoder
func NewObjectEncoder(e *Encoder) *ObjectEncoder {
	return &ObjectEncoder{encoder: e}
}

// ENCODER METHODS

// EncodeObject writes one complete object at the cursor: envelope length
// word, then the declared fields in ascending field-id order, the version
// marker among them. In elision mode, fields holding their kind's zero
// value are omitted and an indicator field records which ids were written.
func (oe *ObjectEncoder) EncodeObject(data map[string]interface{}, obj *schema.Object) error {
	e := oe.encoder

	type fieldEntry struct {
		id            FieldID
		fieldType     schema.FieldType
		value         interface{}
		writeIfAbsent bool
		name          string
	}
	var entries []fieldEntry
	var indicator []int32

	for _, f := range obj.Fields {
		value, err := coerceValue(f.Type, data[f.Name])
		if err != nil {
			return wrapWithField(err, f.Name)
		}

		if obj.ElideDefaults {
			// Elision is defined purely on the kind's intrinsic zero value;
			// declared defaults play no part here.
			if isZeroForElision(f.Type, value) {
				continue
			}
			indicator = append(indicator, f.ID)
		}

		entries = append(entries, fieldEntry{
			id:            FieldID(f.ID),
			fieldType:     f.Type,
			value:         value,
			writeIfAbsent: f.WriteIfAbsent,
			name:          f.Name,
		})
	}

	// Writers traverse fields in ascending field-id order.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].id < entries[j].id
	})

	mark := e.BeginObject()

	for _, entry := range entries {
		if err := e.WriteField(entry.id, entry.fieldType, entry.value, entry.writeIfAbsent); err != nil {
			return wrapWithField(err, entry.name)
		}
	}

	// The version marker is always present and informative only.
	if err := e.WriteField(FieldID(schema.VersionFieldID), schema.FieldType{Kind: schema.KindInt32}, obj.Version, false); err != nil {
		return err
	}

	if obj.ElideDefaults {
		oe.writeIndicator(indicator)
	}

	return e.FinishObject(mark)
}

// writeIndicator emits the indicator field: the sorted set of field ids
// whose value deviated from the kind's zero value.
func (oe *ObjectEncoder) writeIndicator(ids []int32) {
	e := oe.encoder
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	e.buf.WriteUint32(MakeHeader(FieldID(schema.IndicatorFieldID), SizeEscape))
	lenPos := e.beginLength()
	e.buf.WriteUint32(uint32(len(ids)))
	for _, id := range ids {
		e.buf.WriteUint32(uint32(id))
	}
	// The length word was reserved just above; the patch cannot fail.
	_ = e.endLength(lenPos)
}

// isZeroForElision reports whether a coerced value equals the kind's
// intrinsic zero value.
func isZeroForElision(t schema.FieldType, v interface{}) bool {
	if v == nil {
		return true
	}
	if schema.IsZeroValue(t, v) {
		return true
	}
	return schema.ValuesEqual(t, v, schema.ZeroValue(t))
}

// DECODER METHODS

// DecodeObject reads one complete object at the cursor. The decode loop
// runs header-by-header until the envelope end offset: known ids dispatch
// to typed decoders, removed-param ids are captured for migration, unknown
// ids are skipped. The cursor must land exactly on the end offset.
//
// The result map holds every declared field: values read from the buffer,
// declared defaults for absent fields, zero values for fields an elision
// writer left out, and migrated removed-param values. Nothing is published
// on failure.
func (od *ObjectDecoder) DecodeObject(obj *schema.Object) (map[string]interface{}, error) {
	d := od.decoder

	end, err := d.EnterObject()
	if err != nil {
		return nil, fmt.Errorf("failed to decode object %s: %w", obj.Name, err)
	}

	scratch := make(map[string]interface{})
	seen := make(map[int32]bool)
	removed := make(map[int32]interface{})
	var indicator map[int32]bool
	var version int32
	var unknown []byte

	for d.buf.Pos() < end {
		headerStart := d.buf.Pos()
		h, err := d.ReadHeader()
		if err != nil {
			return nil, fmt.Errorf("failed to decode object %s: %w", obj.Name, err)
		}
		if !h.Null && d.buf.Pos()+int(h.Size) > end {
			// A field claiming bytes past its envelope end.
			return nil, ErrFraming
		}

		switch int32(h.ID) {
		case schema.VersionFieldID:
			v, err := d.ReadField(h, schema.FieldType{Kind: schema.KindInt32})
			if err != nil {
				return nil, fmt.Errorf("failed to decode object %s version: %w", obj.Name, err)
			}
			if n, ok := v.(int32); ok {
				version = n
			}

		case schema.IndicatorFieldID:
			indicator, err = od.readIndicator(h)
			if err != nil {
				return nil, fmt.Errorf("failed to decode object %s indicator: %w", obj.Name, err)
			}

		default:
			if f := obj.FieldByID(int32(h.ID)); f != nil {
				value, err := d.ReadField(h, f.Type)
				if err != nil {
					return nil, wrapWithField(err, f.Name)
				}
				scratch[f.Name] = value
				seen[f.ID] = true
				continue
			}
			if rp := obj.RemovedParamByID(int32(h.ID)); rp != nil {
				value, err := d.ReadField(h, rp.Type)
				if err != nil {
					return nil, wrapWithField(err, rp.Target)
				}
				removed[rp.ID] = value
				continue
			}
			// Unknown field - skip it. This is the compatibility path, not
			// an error.
			if err := d.SkipField(h); err != nil {
				return nil, fmt.Errorf("failed to decode object %s: %w", obj.Name, err)
			}
			if config.PreserveUnknownBytesOnDecode {
				unknown = append(unknown, d.buf.Bytes()[headerStart:d.buf.Pos()]...)
			}
		}
	}

	if d.buf.Pos() != end {
		return nil, ErrFraming
	}

	// Substitute for everything the buffer did not carry.
	for _, f := range obj.Fields {
		if seen[f.ID] {
			continue
		}
		if value, ok := od.migrateRemoved(obj, f, removed); ok {
			scratch[f.Name] = value
			continue
		}
		if indicator != nil && !indicator[f.ID] {
			scratch[f.Name] = schema.ZeroValue(f.Type)
			continue
		}
		def, err := declaredDefault(f)
		if err != nil {
			return nil, wrapWithField(err, f.Name)
		}
		scratch[f.Name] = def
	}

	if config.SurfaceVersionOnDecode {
		scratch[VersionKey] = version
	}
	if unknown != nil {
		scratch[UnknownKey] = unknown
	}

	return scratch, nil
}

// readIndicator decodes the indicator field payload: a 32-bit count
// followed by that many 32-bit field ids.
func (od *ObjectDecoder) readIndicator(h Header) (map[int32]bool, error) {
	if h.Null {
		return map[int32]bool{}, nil
	}
	buf := od.decoder.buf
	start := buf.Pos()
	count, err := buf.ReadUint32()
	if err != nil {
		return nil, err
	}
	// The payload is exactly count ids; check before sizing the allocation.
	if uint64(h.Size) != 4+4*uint64(count) {
		return nil, ErrMalformedField
	}
	set := make(map[int32]bool, count)
	for i := uint32(0); i < count; i++ {
		id, err := buf.ReadUint32()
		if err != nil {
			return nil, err
		}
		set[int32(id)] = true
	}
	if buf.Pos()-start != int(h.Size) {
		return nil, ErrMalformedField
	}
	return set, nil
}

// migrateRemoved folds a removed param's old value into its target field
// when the target itself was absent from the buffer.
func (od *ObjectDecoder) migrateRemoved(obj *schema.Object, f *schema.Field, removed map[int32]interface{}) (interface{}, bool) {
	for _, rp := range obj.RemovedParams {
		if rp.Target != f.Name {
			continue
		}
		old, ok := removed[rp.ID]
		if !ok || old == nil {
			continue
		}
		value, err := convertRemoved(rp.Convert, old)
		if err != nil {
			continue
		}
		return value, true
	}
	return nil, false
}

// declaredDefault returns a field's declared default coerced to its
// canonical type, or the kind's zero value when none was declared.
func declaredDefault(f *schema.Field) (interface{}, error) {
	if f.Default == nil {
		return schema.ZeroValue(f.Type), nil
	}
	return coerceValue(f.Type, f.Default)
}

// Convenience methods for direct access (maintains backward compatibility)

// DecodeObject - convenience method for main decoder
func (d *Decoder) DecodeObject(obj *schema.Object) (map[string]interface{}, error) {
	od := NewObjectDecoder(d)
	return od.DecodeObject(obj)
}

// EncodeObject - convenience method for main encoder
func (e *Encoder) EncodeObject(data map[string]interface{}, obj *schema.Object) error {
	oe := NewObjectEncoder(e)
	return oe.EncodeObject(data, obj)
}
