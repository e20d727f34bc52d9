package types

import (
	"fmt"
	"strings"
)

// Bech32 HRPs (human-readable parts) for Shelley payment addresses.
const (
	MainnetHRP = "addr"
	TestnetHRP = "addr_test"
)

// Network IDs carried in the low nibble of a Shelley address header.
const (
	TestnetNetworkID byte = 0
	MainnetNetworkID byte = 1
)

// Network identifies a target ledger. It is an immutable value.
type Network struct {
	Name          string `json:"name"`
	NetworkID     byte   `json:"network_id"`
	ProtocolMagic uint32 `json:"protocol_magic"`
}

// Mainnet returns the production network.
func Mainnet() Network {
	return Network{Name: "mainnet", NetworkID: MainnetNetworkID, ProtocolMagic: 764824073}
}

// Testnet returns the legacy public testnet.
func Testnet() Network {
	return Network{Name: "testnet", NetworkID: TestnetNetworkID, ProtocolMagic: 1097911063}
}

// Preprod returns the pre-production testnet.
func Preprod() Network {
	return Network{Name: "preprod", NetworkID: TestnetNetworkID, ProtocolMagic: 1}
}

// Preview returns the preview testnet.
func Preview() Network {
	return Network{Name: "preview", NetworkID: TestnetNetworkID, ProtocolMagic: 2}
}

// NetworkByName returns the well-known network with the given name.
func NetworkByName(name string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mainnet", "":
		return Mainnet(), nil
	case "testnet":
		return Testnet(), nil
	case "preprod":
		return Preprod(), nil
	case "preview":
		return Preview(), nil
	default:
		return Network{}, fmt.Errorf("unknown network %q", name)
	}
}

// IsMainnet reports whether addresses on this network use the mainnet ID.
func (n Network) IsMainnet() bool {
	return n.NetworkID == MainnetNetworkID
}

// AddressHRP returns the Bech32 prefix for payment addresses on this network.
func (n Network) AddressHRP() string {
	if n.IsMainnet() {
		return MainnetHRP
	}
	return TestnetHRP
}

// Validate checks that the network ID fits in an address header nibble.
func (n Network) Validate() error {
	if n.NetworkID > 0x0f {
		return fmt.Errorf("network id %d does not fit in 4 bits", n.NetworkID)
	}
	return nil
}

// String returns the network name.
func (n Network) String() string {
	if n.Name == "" {
		return fmt.Sprintf("network(%d/%d)", n.NetworkID, n.ProtocolMagic)
	}
	return n.Name
}
