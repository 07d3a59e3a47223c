package schema

import (
	"math/big"
)

// Decimal is an arbitrary-precision decimal value: Unscaled * 10^-Scale.
// It is the in-memory form of the bigdecimal kind; the codec round-trips
// sign, magnitude and scale bit-for-bit.
type Decimal struct {
	Unscaled *big.Int
	Scale    int32
}

// NewDecimal builds a Decimal from an unscaled value and a scale.
func NewDecimal(unscaled *big.Int, scale int32) *Decimal {
	return &Decimal{Unscaled: new(big.Int).Set(unscaled), Scale: scale}
}

// ParseDecimal parses decimal text like "-12.0345" into a Decimal.
func ParseDecimal(s string) (*Decimal, bool) {
	neg := false
	switch {
	case len(s) > 0 && s[0] == '-':
		neg = true
		s = s[1:]
	case len(s) > 0 && s[0] == '+':
		s = s[1:]
	}
	digits := ""
	scale := int32(0)
	seenDot := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '.' && !seenDot:
			seenDot = true
		case c >= '0' && c <= '9':
			digits += string(c)
			if seenDot {
				scale++
			}
		default:
			return nil, false
		}
	}
	if digits == "" {
		return nil, false
	}
	u, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, false
	}
	if neg {
		u.Neg(u)
	}
	return &Decimal{Unscaled: u, Scale: scale}, true
}

// Equal reports whether two decimals have identical unscaled value and
// scale. 1.0 and 1.00 are distinct; the codec preserves the distinction.
func (d *Decimal) Equal(other *Decimal) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.Scale == other.Scale && d.Unscaled.Cmp(other.Unscaled) == 0
}

// String renders the decimal in plain notation.
func (d *Decimal) String() string {
	if d == nil || d.Unscaled == nil {
		return "0"
	}
	s := new(big.Int).Abs(d.Unscaled).String()
	if d.Scale > 0 {
		for int32(len(s)) <= d.Scale {
			s = "0" + s
		}
		dot := int32(len(s)) - d.Scale
		s = s[:dot] + "." + s[dot:]
	} else if d.Scale < 0 {
		for i := d.Scale; i < 0; i++ {
			s += "0"
		}
	}
	if d.Unscaled.Sign() < 0 {
		s = "-" + s
	}
	return s
}
