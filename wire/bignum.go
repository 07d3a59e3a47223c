package wire

import (
	"fmt"
	"math/big"

	"github.com/anirudhraja/parcelite/schema"
)

// Big numbers encode as one sign byte followed by the minimal big-endian
// magnitude. Zero is a lone zero sign byte with no magnitude bytes.
// Decimals prepend a signed 32-bit scale word: the value is
// unscaled * 10^-scale, round-tripped bit-for-bit.
const (
	signZeroOrPositive byte = 0x00
	signNegative       byte = 0xFF
)

// BigDecoder handles big-number payload decoding operations
type BigDecoder struct {
	decoder *Decoder
}

// BigEncoder handles big-number payload encoding operations
type BigEncoder struct {
	encoder *Encoder
}

// NewBigDecoder creates a new big-number decoder
func NewBigDecoder(d *Decoder) *BigDecoder {
	return &BigDecoder{decoder: d}
}

// NewBigEncoder creates a new big-number encoder
func NewBigEncoder(e *Encoder) *BigEncoder {
	return &BigEncoder{encoder: e}
}

// DECODER METHODS

// DecodeBigInt decodes a sign+magnitude payload of the given total length.
func (bd *BigDecoder) DecodeBigInt(length int) (*big.Int, error) {
	if length < 1 {
		return nil, ErrMalformedField
	}
	buf := bd.decoder.buf
	sign, err := buf.ReadRawBytes(1)
	if err != nil {
		return nil, err
	}
	mag, err := buf.ReadRawBytes(length - 1)
	if err != nil {
		return nil, err
	}
	n := new(big.Int).SetBytes(mag)
	if sign[0] == signNegative {
		n.Neg(n)
	}
	return n, nil
}

// DecodeBigDecimal decodes a scale+sign+magnitude payload.
func (bd *BigDecoder) DecodeBigDecimal(length int) (*schema.Decimal, error) {
	if length < 5 {
		return nil, ErrMalformedField
	}
	buf := bd.decoder.buf
	scale, err := buf.ReadUint32()
	if err != nil {
		return nil, err
	}
	unscaled, err := bd.DecodeBigInt(length - 4)
	if err != nil {
		return nil, err
	}
	return &schema.Decimal{Unscaled: unscaled, Scale: int32(scale)}, nil
}

// ENCODER METHODS

// EncodeBigInt writes a sign+magnitude payload at the cursor.
func (be *BigEncoder) EncodeBigInt(n *big.Int) error {
	if n == nil {
		return fmt.Errorf("big integer value must not be nil")
	}
	buf := be.encoder.buf
	if n.Sign() < 0 {
		buf.WriteBytes([]byte{signNegative})
	} else {
		buf.WriteBytes([]byte{signZeroOrPositive})
	}
	// Bytes() of zero is empty; the lone sign byte carries it.
	buf.WriteBytes(new(big.Int).Abs(n).Bytes())
	return nil
}

// EncodeBigDecimal writes a scale+sign+magnitude payload at the cursor.
func (be *BigEncoder) EncodeBigDecimal(d *schema.Decimal) error {
	if d == nil || d.Unscaled == nil {
		return fmt.Errorf("decimal value must not be nil")
	}
	be.encoder.buf.WriteUint32(uint32(d.Scale))
	return be.EncodeBigInt(d.Unscaled)
}
