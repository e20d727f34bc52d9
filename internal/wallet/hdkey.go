package wallet

import (
	"fmt"

	"github.com/Klingon-tech/kardano/pkg/crypto"
	"github.com/Klingon-tech/kardano/pkg/types"
	"github.com/tyler-smith/go-bip32"
)

// BIP-44 path constants for the secp256k1 engine.
// Full path: m/44'/1815'/account'/change/index
const (
	PurposeBIP44 = bip32.FirstHardenedChild + 44

	// ChainExternal is for receiving addresses.
	ChainExternal = 0
	// ChainInternal is for change addresses.
	ChainInternal = 1
	// ChainStake holds the stake key.
	ChainStake = 2
)

// HDKey is a BIP-32 secp256k1 key.
type HDKey struct {
	key *bip32.Key
}

// NewMasterKey creates a master HD key from a 64-byte seed.
func NewMasterKey(seed []byte) (*HDKey, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}
	return &HDKey{key: master}, nil
}

// ParseHDKey decodes a base58 extended key as produced by String.
func ParseHDKey(s string) (*HDKey, error) {
	k, err := bip32.B58Deserialize(s)
	if err != nil {
		return nil, fmt.Errorf("parse extended key: %w", err)
	}
	return &HDKey{key: k}, nil
}

// DeriveChild derives a child key. Add bip32.FirstHardenedChild for hardened.
func (k *HDKey) DeriveChild(index uint32) (*HDKey, error) {
	child, err := k.key.NewChildKey(index)
	if err != nil {
		return nil, fmt.Errorf("derive child %d: %w", index, err)
	}
	return &HDKey{key: child}, nil
}

// DerivePath derives a key along a sequence of indices.
func (k *HDKey) DerivePath(indices ...uint32) (*HDKey, error) {
	current := k
	for _, idx := range indices {
		child, err := current.DeriveChild(idx)
		if err != nil {
			return nil, err
		}
		current = child
	}
	return current, nil
}

// DeriveAccountKey derives m/44'/1815'/account'/chain/index.
func (k *HDKey) DeriveAccountKey(account, chain, index uint32) (*HDKey, error) {
	return k.DerivePath(
		PurposeBIP44,
		bip32.FirstHardenedChild+CoinTypeADA,
		bip32.FirstHardenedChild+account,
		chain,
		index,
	)
}

// PrivateKeyBytes returns the raw 32-byte private key, or nil for a public key.
func (k *HDKey) PrivateKeyBytes() []byte {
	if !k.key.IsPrivate {
		return nil
	}
	raw := k.key.Key
	if len(raw) == 33 && raw[0] == 0 {
		return raw[1:]
	}
	return raw
}

// PublicKeyBytes returns the compressed 33-byte public key.
func (k *HDKey) PublicKeyBytes() []byte {
	return k.key.PublicKey().Key
}

// Signer returns a Schnorr signer for the private key.
func (k *HDKey) Signer() (*crypto.PrivateKey, error) {
	priv := k.PrivateKeyBytes()
	if priv == nil {
		return nil, fmt.Errorf("cannot create signer from public key")
	}
	return crypto.PrivateKeyFromBytes(priv)
}

// KeyHash is BLAKE3-224 of the compressed public key.
func (k *HDKey) KeyHash() types.KeyHash {
	return crypto.Hash224(k.PublicKeyBytes())
}

// IsPrivate reports whether the key holds a private key.
func (k *HDKey) IsPrivate() bool {
	return k.key.IsPrivate
}

// Depth returns the derivation depth (0 for master).
func (k *HDKey) Depth() uint8 {
	return k.key.Depth
}

// Neuter returns a public-only copy.
func (k *HDKey) Neuter() *HDKey {
	return &HDKey{key: k.key.PublicKey()}
}

// String returns the base58 extended key serialization.
func (k *HDKey) String() string {
	return k.key.String()
}
