package wire

// BytesDecoder handles raw byte payload decoding operations. Lengths come
// from the field header (or element length word), never from the payload
// itself.
type BytesDecoder struct {
	decoder *Decoder
}

// BytesEncoder handles raw byte payload encoding operations
type BytesEncoder struct {
	encoder *Encoder
}

// NewBytesDecoder creates a new bytes decoder
func NewBytesDecoder(d *Decoder) *BytesDecoder {
	return &BytesDecoder{decoder: d}
}

// NewBytesEncoder creates a new bytes encoder
func NewBytesEncoder(e *Encoder) *BytesEncoder {
	return &BytesEncoder{encoder: e}
}

// DECODER METHODS

// DecodeBytes reads a byte payload of the given length. The data is copied
// so the value does not share the underlying buffer.
func (bd *BytesDecoder) DecodeBytes(length int) ([]byte, error) {
	return bd.decoder.buf.ReadBytes(length)
}

// DecodeString reads a UTF-8 string payload of the given byte length.
func (bd *BytesDecoder) DecodeString(length int) (string, error) {
	data, err := bd.decoder.buf.ReadRawBytes(length)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ENCODER METHODS

// EncodeBytes writes a raw byte payload at the cursor.
func (be *BytesEncoder) EncodeBytes(data []byte) {
	be.encoder.buf.WriteBytes(data)
}

// EncodeString writes a string payload as UTF-8 bytes.
func (be *BytesEncoder) EncodeString(s string) {
	be.encoder.buf.WriteBytes([]byte(s))
}
