package account

import "github.com/Klingon-tech/kardano/pkg/codec"

// AddressToBytes decodes a Bech32 or Base58 address.
func AddressToBytes(address string) ([]byte, error) {
	return codec.ToBytes(address)
}

// BytesToBase58Address encodes raw address bytes as Base58.
func BytesToBase58Address(b []byte) (string, error) {
	return codec.BytesToBase58(b)
}

// BytesToBech32Address encodes raw address bytes as Bech32 with the "addr"
// prefix.
func BytesToBech32Address(b []byte) (string, error) {
	return codec.BytesToBech32(b)
}
