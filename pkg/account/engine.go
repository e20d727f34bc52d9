package account

import (
	"github.com/Klingon-tech/kardano/pkg/tx"
	"github.com/Klingon-tech/kardano/pkg/types"
)

// KeyEngine derives keys and addresses from a mnemonic and signs payloads.
// Implementations must be deterministic: identical inputs give identical
// outputs. An invalid mnemonic fails with an error.
type KeyEngine interface {
	GenerateMnemonic() (string, error)
	// DerivePrivateKey returns an encoded key handle accepted by Sign.
	DerivePrivateKey(mnemonic string, index uint32) (string, error)
	DerivePrivateKeyBytes(mnemonic string, index uint32) ([]byte, error)
	DerivePublicKeyBytes(mnemonic string, index uint32) ([]byte, error)
	// DeriveAddress returns the enterprise (payment-only) address.
	DeriveAddress(mnemonic string, index uint32, network types.Network) (string, error)
	// DeriveBaseAddress returns the address carrying payment and stake parts.
	DeriveBaseAddress(mnemonic string, index uint32, network types.Network) (string, error)
	// Sign signs a hex payload with a key handle and returns the hex signature.
	Sign(payloadHex, privateKey string) (string, error)
}

// TransactionCodec turns a transaction into the hex payload that gets signed.
type TransactionCodec interface {
	SerializeToHex(t *tx.Transaction) (string, error)
}
