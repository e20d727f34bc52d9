package wallet

import (
	"fmt"

	"github.com/Klingon-tech/kardano/pkg/account"
	"github.com/Klingon-tech/kardano/pkg/types"
)

// AccountXPub returns the public half of m/1852'/1815'/0'. Every payment and
// stake key of the account is a soft child of it.
func (e *ShelleyEngine) AccountXPub(mnemonic string) (*XPub, error) {
	k, err := e.AccountKey(mnemonic)
	if err != nil {
		return nil, err
	}
	defer k.Zero()
	return k.Public(), nil
}

// WatchAddresses derives the enterprise and base addresses at index from an
// account xpub, without any private key.
func WatchAddresses(xpub *XPub, index uint32, network types.Network) (enterprise, base string, err error) {
	if index >= HardenedOffset {
		return "", "", ErrHardenedPublic
	}
	external, err := xpub.DerivePublicChild(RoleExternal)
	if err != nil {
		return "", "", err
	}
	pay, err := external.DerivePublicChild(index)
	if err != nil {
		return "", "", err
	}
	stakeRole, err := xpub.DerivePublicChild(RoleStake)
	if err != nil {
		return "", "", err
	}
	stake, err := stakeRole.DerivePublicChild(0)
	if err != nil {
		return "", "", err
	}

	enterprise, err = encodeAddress(network, types.EnterpriseAddressBytes(network.NetworkID, pay.KeyHash()))
	if err != nil {
		return "", "", err
	}
	base, err = encodeAddress(network, types.BaseAddressBytes(network.NetworkID, pay.KeyHash(), stake.KeyHash()))
	if err != nil {
		return "", "", err
	}
	return enterprise, base, nil
}

// WatchAccount returns an address-only account for index under xpub.
func WatchAccount(xpub *XPub, network types.Network, index uint32) (*account.Account, error) {
	enterprise, base, err := WatchAddresses(xpub, index, network)
	if err != nil {
		return nil, fmt.Errorf("watch account %d: %w", index, err)
	}
	return account.FromKnownAddresses(network, base, enterprise)
}
