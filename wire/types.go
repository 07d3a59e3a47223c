package wire

// ===== PARCEL WIRE FORMAT TYPES =====
//
// Every field starts with one little-endian 32-bit header word: the low 16
// bits carry the field id, the high 16 bits a size indicator. Fixed-width
// scalars put their payload byte count (4 or 8) inline; variable-length
// fields always use the SizeEscape indicator followed by an explicit 32-bit
// length word, so a reader can skip any field knowing nothing about its
// type. SizeNull marks an explicitly-null field with no payload.
//
// Objects are wrapped in an envelope: one 32-bit length word holding the
// byte count of the field sequence that follows it.

// FieldID represents a parcel field id. Ids are caller-assigned, unique
// within an object schema, and stable across schema revisions.
type FieldID int32

// Size indicator sentinels occupying the high 16 header bits.
const (
	// SizeEscape signals that an explicit 32-bit length word follows the
	// header. All variable-length kinds use it unconditionally.
	SizeEscape uint32 = 0xFFFF

	// SizeNull marks a field explicitly written as null: no payload bytes
	// follow.
	SizeNull uint32 = 0xFFFE

	// MaxInlineSize is the largest payload size expressible in the header
	// itself.
	MaxInlineSize uint32 = 0xFFFD

	// NullElementLen marks a null element inside list and sparse-map
	// payloads, where there is no per-element header word.
	NullElementLen uint32 = 0xFFFFFFFF
)

// MakeHeader packs a field id and size indicator into a header word.
func MakeHeader(id FieldID, sizeIndicator uint32) uint32 {
	return uint32(id)&0xFFFF | sizeIndicator<<16
}

// ParseHeader splits a header word into field id and size indicator.
func ParseHeader(word uint32) (FieldID, uint32) {
	return FieldID(word & 0xFFFF), word >> 16
}

// Header represents a fully-read field header: the id plus the resolved
// payload size. For escaped fields Size comes from the explicit length
// word; Null is set for the SizeNull sentinel (Size is then 0).
type Header struct {
	ID   FieldID
	Size uint32
	Null bool
}
