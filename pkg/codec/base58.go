package codec

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// Base58Encode encodes data with the Bitcoin alphabet. Each leading zero byte
// becomes a leading '1'.
func Base58Encode(data []byte) string {
	return base58.Encode(data)
}

// Base58Decode decodes a Bitcoin-alphabet Base58 string.
func Base58Decode(s string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("base58: empty string")
	}
	// base58.Decode signals an out-of-alphabet character with an empty result.
	data := base58.Decode(s)
	if len(data) == 0 {
		return nil, fmt.Errorf("base58: invalid character in input")
	}
	return data, nil
}
