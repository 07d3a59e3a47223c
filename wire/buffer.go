package wire

import (
	"encoding/binary"
)

// Buffer is a growable byte sequence with a single read/write position.
// Writing past the end grows the backing storage; reading past the
// available length fails with ErrUnexpectedEOF. Position save/restore is
// what lets the framing layer backpatch length words after the fact and
// re-read headers before dispatching.
//
// A Buffer is used by exactly one writer or one reader at a time; it holds
// no locks.
type Buffer struct {
	buf []byte
	pos int
}

// NewBuffer creates a read buffer over existing data. The data is not
// copied; the caller owns the backing storage.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{buf: data}
}

// NewWriteBuffer creates an empty buffer for encoding.
func NewWriteBuffer() *Buffer {
	return &Buffer{buf: make([]byte, 0, 64)}
}

// Pos returns the current cursor position.
func (b *Buffer) Pos() int {
	return b.pos
}

// SetPos moves the cursor. Positions beyond the written length are
// rejected.
func (b *Buffer) SetPos(p int) error {
	if p < 0 || p > len(b.buf) {
		return ErrUnexpectedEOF
	}
	b.pos = p
	return nil
}

// Len returns the written length of the buffer.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// Remaining returns the byte count between the cursor and the end.
func (b *Buffer) Remaining() int {
	return len(b.buf) - b.pos
}

// Bytes returns the written content. The slice shares the backing storage.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// write copies p at the cursor, growing the buffer as needed. Writes over
// already-written regions overwrite in place (backpatching).
func (b *Buffer) write(p []byte) {
	need := b.pos + len(p)
	if need > len(b.buf) {
		if need > cap(b.buf) {
			grown := make([]byte, len(b.buf), growCap(cap(b.buf), need))
			copy(grown, b.buf)
			b.buf = grown
		}
		b.buf = b.buf[:need]
	}
	copy(b.buf[b.pos:], p)
	b.pos = need
}

func growCap(cur, need int) int {
	if cur == 0 {
		cur = 64
	}
	for cur < need {
		cur *= 2
	}
	return cur
}

// WriteUint32 writes a little-endian 32-bit word at the cursor.
func (b *Buffer) WriteUint32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.write(tmp[:])
}

// WriteUint64 writes a little-endian 64-bit word at the cursor.
func (b *Buffer) WriteUint64(v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	b.write(tmp[:])
}

// WriteBytes writes raw bytes at the cursor.
func (b *Buffer) WriteBytes(p []byte) {
	b.write(p)
}

// PatchUint32 overwrites the 32-bit word at pos without moving the cursor.
func (b *Buffer) PatchUint32(pos int, v uint32) error {
	if pos < 0 || pos+4 > len(b.buf) {
		return ErrUnexpectedEOF
	}
	binary.LittleEndian.PutUint32(b.buf[pos:], v)
	return nil
}

// ReadUint32 reads a little-endian 32-bit word at the cursor.
func (b *Buffer) ReadUint32() (uint32, error) {
	if b.pos+4 > len(b.buf) {
		return 0, ErrUnexpectedEOF
	}
	v := binary.LittleEndian.Uint32(b.buf[b.pos:])
	b.pos += 4
	return v, nil
}

// ReadUint64 reads a little-endian 64-bit word at the cursor.
func (b *Buffer) ReadUint64() (uint64, error) {
	if b.pos+8 > len(b.buf) {
		return 0, ErrUnexpectedEOF
	}
	v := binary.LittleEndian.Uint64(b.buf[b.pos:])
	b.pos += 8
	return v, nil
}

// ReadBytes reads n bytes at the cursor. The returned slice is a copy so
// the decoded value does not alias the caller's buffer.
func (b *Buffer) ReadBytes(n int) ([]byte, error) {
	if n < 0 || b.pos+n > len(b.buf) {
		return nil, ErrUnexpectedEOF
	}
	out := make([]byte, n)
	copy(out, b.buf[b.pos:])
	b.pos += n
	return out, nil
}

// ReadRawBytes reads n bytes without copying (shares the backing storage).
func (b *Buffer) ReadRawBytes(n int) ([]byte, error) {
	if n < 0 || b.pos+n > len(b.buf) {
		return nil, ErrUnexpectedEOF
	}
	out := b.buf[b.pos : b.pos+n]
	b.pos += n
	return out, nil
}

// Skip advances the cursor past n bytes.
func (b *Buffer) Skip(n int) error {
	if n < 0 || b.pos+n > len(b.buf) {
		return ErrUnexpectedEOF
	}
	b.pos += n
	return nil
}
