package wire

import (
	"fmt"
	"os"
	"strconv"

	"github.com/anirudhraja/parcelite/schema"
)

// Keys under which the decoder surfaces out-of-band values in the result
// map when the matching Config toggle is on.
const (
	// VersionKey holds the decoded schema revision from the version marker.
	VersionKey = "_version"

	// UnknownKey holds the concatenated raw bytes (header included) of
	// every unknown field the decoder skipped.
	UnknownKey = "__unknown"
)

// Config controls optional behaviors for compatibility.
// Defaults preserve the strict baseline behavior.
type Config struct {
	// SurfaceVersionOnDecode: when true, decoded objects include the
	// version marker's value under VersionKey. The version is informative
	// either way; a mismatch never fails a decode.
	SurfaceVersionOnDecode bool

	// PreserveUnknownBytesOnDecode: when true, decoded objects include a
	// special UnknownKey []byte entry containing concatenated unknown
	// field bytes. Default false discards unknown bytes after skipping.
	PreserveUnknownBytesOnDecode bool

	// LenientSparseKeyOrder: when true, the decoder accepts sparse map
	// entries whose keys are not strictly ascending. Default false treats
	// out-of-order keys as malformed.
	LenientSparseKeyOrder bool
}

var config = Config{}

// SetConfig sets the global wire configuration. Defaults remain zero-valued
// unless explicitly changed by the caller.
func SetConfig(c Config) { config = c }

func init() {
	// Optional env toggles for test harnesses; defaults remain unchanged if unset.
	if v := os.Getenv("PARCELITE_SURFACE_VERSION"); v == "1" || v == "true" {
		config.SurfaceVersionOnDecode = true
	}
	if v := os.Getenv("PARCELITE_PRESERVE_UNKNOWN"); v == "1" || v == "true" {
		config.PreserveUnknownBytesOnDecode = true
	}
	if v := os.Getenv("PARCELITE_LENIENT_SPARSE_ORDER"); v == "1" || v == "true" {
		config.LenientSparseKeyOrder = true
	}
}

// convertRemoved applies a removed param's declared conversion to the old
// value read from the buffer, producing the target field's value.
func convertRemoved(conv schema.Conversion, old interface{}) (interface{}, error) {
	switch conv {
	case schema.ConvertNone:
		return old, nil
	case schema.ConvertStringToInt64:
		s, ok := old.(string)
		if !ok {
			return nil, fmt.Errorf("conversion %s expects string, got %T", conv, old)
		}
		return strconv.ParseInt(s, 10, 64)
	case schema.ConvertStringToInt32:
		s, ok := old.(string)
		if !ok {
			return nil, fmt.Errorf("conversion %s expects string, got %T", conv, old)
		}
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return nil, err
		}
		return int32(n), nil
	case schema.ConvertInt32ToInt64:
		n, ok := old.(int32)
		if !ok {
			return nil, fmt.Errorf("conversion %s expects int32, got %T", conv, old)
		}
		return int64(n), nil
	case schema.ConvertInt64ToString:
		n, ok := old.(int64)
		if !ok {
			return nil, fmt.Errorf("conversion %s expects int64, got %T", conv, old)
		}
		return strconv.FormatInt(n, 10), nil
	default:
		return nil, fmt.Errorf("unknown removed-param conversion: %s", conv)
	}
}
