// Package codec converts between raw address bytes and their two textual
// encodings: Shelley-era Bech32 and legacy (Byron) Base58.
package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrEncoding reports a bit-width violation while regrouping data.
	ErrEncoding = errors.New("encoding error")
	// ErrAddress reports an address that could not be encoded or decoded.
	ErrAddress = errors.New("address error")
)

// ConvertBits regroups data from fromBits-wide values into toBits-wide values.
//
// With pad set, a trailing partial group is zero-filled on the right. Without
// pad, leftover input must be shorter than fromBits and all zero; anything else
// is non-canonical and rejected.
func ConvertBits(data []byte, fromBits, toBits uint, pad bool) ([]byte, error) {
	if fromBits == 0 || fromBits > 8 || toBits == 0 || toBits > 8 {
		return nil, fmt.Errorf("%w: unsupported group sizes %d->%d", ErrEncoding, fromBits, toBits)
	}

	acc := uint32(0)
	bits := uint(0)
	maxv := uint32(1)<<toBits - 1
	maxAcc := uint32(1)<<(fromBits+toBits-1) - 1
	ret := make([]byte, 0, (len(data)*int(fromBits)+int(toBits)-1)/int(toBits))

	for _, b := range data {
		if uint32(b)>>fromBits != 0 {
			return nil, fmt.Errorf("%w: value %#x exceeds %d bits", ErrEncoding, b, fromBits)
		}
		acc = (acc<<fromBits | uint32(b)) & maxAcc
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			ret = append(ret, byte((acc>>bits)&maxv))
		}
	}

	if pad {
		if bits > 0 {
			ret = append(ret, byte((acc<<(toBits-bits))&maxv))
		}
		return ret, nil
	}

	if bits >= fromBits {
		return nil, fmt.Errorf("%w: %d leftover bits", ErrEncoding, bits)
	}
	if (acc<<(toBits-bits))&maxv != 0 {
		return nil, fmt.Errorf("%w: non-zero padding", ErrEncoding)
	}
	return ret, nil
}

// ToWords regroups bytes into 5-bit words, zero-padding the last word.
func ToWords(data []byte) ([]byte, error) {
	return ConvertBits(data, 8, 5, true)
}

// FromWords regroups 5-bit words back into bytes. Non-canonical padding fails.
func FromWords(words []byte) ([]byte, error) {
	return ConvertBits(words, 5, 8, false)
}
