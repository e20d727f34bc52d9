package codec

import (
	"fmt"
	"strings"
)

// ShelleyHRP is the prefix every Shelley-era payment address starts with.
// Test networks use "addr_test", which shares it.
const ShelleyHRP = "addr"

// Encoding identifies the textual encoding of an address.
type Encoding uint8

const (
	// EncodingBase58 is the legacy (Byron) encoding.
	EncodingBase58 Encoding = iota
	// EncodingBech32 is the Shelley-era encoding.
	EncodingBech32
)

// String returns the encoding name.
func (e Encoding) String() string {
	switch e {
	case EncodingBech32:
		return "bech32"
	case EncodingBase58:
		return "base58"
	default:
		return fmt.Sprintf("encoding(%d)", uint8(e))
	}
}

// Classify reports which encoding an address string uses. Only the prefix is
// inspected, so a string classified as Base58 may still fail to decode.
func Classify(address string) Encoding {
	if strings.HasPrefix(address, ShelleyHRP) {
		return EncodingBech32
	}
	return EncodingBase58
}

// ToBytes decodes an address string into its raw bytes.
//
// Bech32-classified strings that fail their checksum are rejected; they are
// never retried as Base58.
func ToBytes(address string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch Classify(address) {
	case EncodingBech32:
		_, data, err = Bech32Decode(address)
	default:
		data, err = Base58Decode(address)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: address to bytes failed: %w", ErrAddress, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: address to bytes failed: empty payload", ErrAddress)
	}
	return data, nil
}

// BytesToBase58 encodes raw address bytes as a legacy Base58 address.
func BytesToBase58(data []byte) (string, error) {
	address := Base58Encode(data)
	if address == "" {
		return "", fmt.Errorf("%w: bytes cannot be converted to base58 address", ErrAddress)
	}
	return address, nil
}

// BytesToBech32 encodes raw address bytes as a Bech32 address under ShelleyHRP.
func BytesToBech32(data []byte) (string, error) {
	return BytesToBech32WithHRP(ShelleyHRP, data)
}

// BytesToBech32WithHRP encodes raw address bytes under the given prefix.
// Empty input is rejected.
func BytesToBech32WithHRP(hrp string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: bytes cannot be converted to bech32 address", ErrAddress)
	}
	address, err := Bech32Encode(hrp, data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAddress, err)
	}
	return address, nil
}
