// Package crypto provides the hash and signature primitives used by the key
// engines: BLAKE2b for Cardano key and body hashes, BLAKE3 for the secp256k1
// engine, Schnorr over secp256k1 and Ed25519 verification.
package crypto

import (
	"github.com/Klingon-tech/kardano/pkg/types"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
)

// KeyHash computes the BLAKE2b-224 hash of a verification key.
func KeyHash(pub []byte) types.KeyHash {
	h, _ := blake2b.New(types.KeyHashSize, nil) // only fails on bad size or key
	h.Write(pub)
	var out types.KeyHash
	copy(out[:], h.Sum(nil))
	return out
}

// TxHash computes the BLAKE2b-256 hash of a serialized transaction body.
func TxHash(body []byte) types.Hash {
	return blake2b.Sum256(body)
}

// Hash computes a BLAKE3-256 hash of the input data.
func Hash(data []byte) types.Hash {
	return blake3.Sum256(data)
}

// Hash224 computes BLAKE3 truncated to the key hash size.
func Hash224(data []byte) types.KeyHash {
	full := blake3.Sum256(data)
	var out types.KeyHash
	copy(out[:], full[:types.KeyHashSize])
	return out
}
