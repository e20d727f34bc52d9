package wallet

import (
	"encoding/hex"

	"github.com/Klingon-tech/kardano/pkg/crypto"
	"github.com/Klingon-tech/kardano/pkg/types"
)

// SchnorrEngine derives BIP-32 secp256k1 keys at m/44'/1815'/0'/chain/index
// and signs the BLAKE3 hash of the payload with Schnorr. Key hashes are
// BLAKE3-224 of the compressed public key.
type SchnorrEngine struct {
	Passphrase string
}

// GenerateMnemonic returns a fresh 24-word phrase.
func (e *SchnorrEngine) GenerateMnemonic() (string, error) {
	return GenerateMnemonic()
}

func (e *SchnorrEngine) key(mnemonic string, chain, index uint32) (*HDKey, error) {
	seed, err := SeedFromMnemonic(mnemonic, e.Passphrase)
	if err != nil {
		return nil, err
	}
	defer zero(seed)
	master, err := NewMasterKey(seed)
	if err != nil {
		return nil, err
	}
	return master.DeriveAccountKey(0, chain, index)
}

// DerivePrivateKey returns the base58 extended private key.
func (e *SchnorrEngine) DerivePrivateKey(mnemonic string, index uint32) (string, error) {
	k, err := e.key(mnemonic, ChainExternal, index)
	if err != nil {
		return "", err
	}
	return k.String(), nil
}

// DerivePrivateKeyBytes returns the 32-byte secp256k1 scalar.
func (e *SchnorrEngine) DerivePrivateKeyBytes(mnemonic string, index uint32) ([]byte, error) {
	k, err := e.key(mnemonic, ChainExternal, index)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), k.PrivateKeyBytes()...), nil
}

// DerivePublicKeyBytes returns the 33-byte compressed public key.
func (e *SchnorrEngine) DerivePublicKeyBytes(mnemonic string, index uint32) ([]byte, error) {
	k, err := e.key(mnemonic, ChainExternal, index)
	if err != nil {
		return nil, err
	}
	return k.PublicKeyBytes(), nil
}

// DeriveAddress returns the enterprise address of the key at index.
func (e *SchnorrEngine) DeriveAddress(mnemonic string, index uint32, network types.Network) (string, error) {
	k, err := e.key(mnemonic, ChainExternal, index)
	if err != nil {
		return "", err
	}
	return encodeAddress(network, types.EnterpriseAddressBytes(network.NetworkID, k.KeyHash()))
}

// DeriveBaseAddress pairs the key at index with the stake key at chain 2.
func (e *SchnorrEngine) DeriveBaseAddress(mnemonic string, index uint32, network types.Network) (string, error) {
	pay, err := e.key(mnemonic, ChainExternal, index)
	if err != nil {
		return "", err
	}
	stake, err := e.key(mnemonic, ChainStake, 0)
	if err != nil {
		return "", err
	}
	return encodeAddress(network, types.BaseAddressBytes(network.NetworkID, pay.KeyHash(), stake.KeyHash()))
}

// Sign signs BLAKE3(payload) with the base58 key handle and returns hex.
func (e *SchnorrEngine) Sign(payloadHex, privateKey string) (string, error) {
	payload, err := decodePayload(payloadHex)
	if err != nil {
		return "", err
	}
	k, err := ParseHDKey(privateKey)
	if err != nil {
		return "", err
	}
	signer, err := k.Signer()
	if err != nil {
		return "", err
	}
	defer signer.Zero()
	digest := crypto.Hash(payload)
	sig, err := signer.Sign(digest[:])
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sig), nil
}
