package wallet

import (
	"encoding/hex"

	"github.com/Klingon-tech/kardano/pkg/crypto"
	"github.com/Klingon-tech/kardano/pkg/types"
)

// ShelleyEngine derives CIP-1852 BIP32-Ed25519 keys from an Icarus master key.
// Payment keys live at m/1852'/1815'/0'/0/index and the stake key at
// m/1852'/1815'/0'/2/0. Signatures cover the BLAKE2b-256 hash of the payload.
type ShelleyEngine struct {
	Passphrase string
}

// GenerateMnemonic returns a fresh 24-word phrase.
func (e *ShelleyEngine) GenerateMnemonic() (string, error) {
	return GenerateMnemonic()
}

// AccountKey derives m/1852'/1815'/0'.
func (e *ShelleyEngine) AccountKey(mnemonic string) (*XPrv, error) {
	root, err := NewIcarusMaster(mnemonic, e.Passphrase)
	if err != nil {
		return nil, err
	}
	defer root.Zero()
	return root.DerivePath(Harden(PurposeCIP1852), Harden(CoinTypeADA), Harden(0)), nil
}

func (e *ShelleyEngine) roleKey(mnemonic string, role, index uint32) (*XPrv, error) {
	acct, err := e.AccountKey(mnemonic)
	if err != nil {
		return nil, err
	}
	defer acct.Zero()
	return acct.DerivePath(role, index), nil
}

// DerivePrivateKey returns the Bech32 xprv of the payment key at index.
func (e *ShelleyEngine) DerivePrivateKey(mnemonic string, index uint32) (string, error) {
	k, err := e.roleKey(mnemonic, RoleExternal, index)
	if err != nil {
		return "", err
	}
	defer k.Zero()
	return k.String(), nil
}

// DerivePrivateKeyBytes returns the 64-byte extended secret of the payment key.
func (e *ShelleyEngine) DerivePrivateKeyBytes(mnemonic string, index uint32) ([]byte, error) {
	k, err := e.roleKey(mnemonic, RoleExternal, index)
	if err != nil {
		return nil, err
	}
	defer k.Zero()
	return k.SecretBytes(), nil
}

// DerivePublicKeyBytes returns the 32-byte payment public key.
func (e *ShelleyEngine) DerivePublicKeyBytes(mnemonic string, index uint32) ([]byte, error) {
	k, err := e.roleKey(mnemonic, RoleExternal, index)
	if err != nil {
		return nil, err
	}
	defer k.Zero()
	return k.PublicKey(), nil
}

// DeriveAddress returns the enterprise address of the payment key.
func (e *ShelleyEngine) DeriveAddress(mnemonic string, index uint32, network types.Network) (string, error) {
	k, err := e.roleKey(mnemonic, RoleExternal, index)
	if err != nil {
		return "", err
	}
	defer k.Zero()
	return encodeAddress(network, types.EnterpriseAddressBytes(network.NetworkID, k.KeyHash()))
}

// DeriveBaseAddress returns the base address pairing the payment key at index
// with the account stake key.
func (e *ShelleyEngine) DeriveBaseAddress(mnemonic string, index uint32, network types.Network) (string, error) {
	acct, err := e.AccountKey(mnemonic)
	if err != nil {
		return "", err
	}
	defer acct.Zero()
	pay := acct.DerivePath(RoleExternal, index)
	stake := acct.DerivePath(RoleStake, 0)
	defer pay.Zero()
	defer stake.Zero()
	return encodeAddress(network, types.BaseAddressBytes(network.NetworkID, pay.KeyHash(), stake.KeyHash()))
}

// Sign signs BLAKE2b-256(payload) with the xprv handle and returns hex.
func (e *ShelleyEngine) Sign(payloadHex, privateKey string) (string, error) {
	payload, err := decodePayload(payloadHex)
	if err != nil {
		return "", err
	}
	k, err := ParseXPrv(privateKey)
	if err != nil {
		return "", err
	}
	defer k.Zero()
	digest := crypto.TxHash(payload)
	return hex.EncodeToString(k.Sign(digest[:])), nil
}
