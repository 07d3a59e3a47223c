package wire

// Object framing: every object is wrapped in an envelope, one 32-bit
// length word holding the exact byte count of the field sequence that
// follows it. The length is not known until every field has been written,
// so the writer reserves the word up front and backpatches it.

// ObjectMark records a reserved envelope length word awaiting backpatch.
type ObjectMark struct {
	lenPos int
}

// BeginObject reserves the envelope length word and returns a mark for
// FinishObject.
func (e *Encoder) BeginObject() ObjectMark {
	pos := e.buf.Pos()
	e.buf.WriteUint32(0)
	return ObjectMark{lenPos: pos}
}

// FinishObject backpatches the reserved length word with the byte count of
// the field sequence written since BeginObject.
func (e *Encoder) FinishObject(mark ObjectMark) error {
	return e.buf.PatchUint32(mark.lenPos, uint32(e.buf.Pos()-mark.lenPos-4))
}

// EnterObject reads the envelope length word and returns the absolute end
// offset of the object. An end offset beyond the buffer is a framing error:
// the envelope claims bytes that do not exist.
func (d *Decoder) EnterObject() (int, error) {
	length, err := d.buf.ReadUint32()
	if err != nil {
		return 0, err
	}
	end := d.buf.Pos() + int(length)
	if int(length) > d.buf.Remaining() {
		return 0, ErrFraming
	}
	return end, nil
}
