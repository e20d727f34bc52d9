package types

import "fmt"

// AddressType is the high nibble of a Shelley address header.
type AddressType uint8

// Address types used by this package. Types 1-3, 5, 7 and 15 are the script
// variants of their neighbours.
const (
	TypeBase       AddressType = 0x0
	TypePointer    AddressType = 0x4
	TypeEnterprise AddressType = 0x6
	TypeByron      AddressType = 0x8
	TypeReward     AddressType = 0xe
)

// Sizes of the address payloads built here, header included.
const (
	EnterpriseAddressSize = 1 + KeyHashSize
	BaseAddressSize       = 1 + 2*KeyHashSize
)

// String names the address family.
func (t AddressType) String() string {
	switch {
	case t <= 0x3:
		return "base"
	case t <= 0x5:
		return "pointer"
	case t <= 0x7:
		return "enterprise"
	case t == TypeByron:
		return "byron"
	case t == 0xe || t == 0xf:
		return "reward"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Header builds an address header byte from a type and network ID.
func Header(t AddressType, networkID byte) byte {
	return byte(t)<<4 | networkID&0x0f
}

// ParseHeader splits an address header byte into its type and network ID.
func ParseHeader(h byte) (AddressType, byte) {
	return AddressType(h >> 4), h & 0x0f
}

// EnterpriseAddressBytes builds header || paymentHash.
func EnterpriseAddressBytes(networkID byte, payment KeyHash) []byte {
	out := make([]byte, 0, EnterpriseAddressSize)
	out = append(out, Header(TypeEnterprise, networkID))
	return append(out, payment[:]...)
}

// BaseAddressBytes builds header || paymentHash || stakeHash.
func BaseAddressBytes(networkID byte, payment, stake KeyHash) []byte {
	out := make([]byte, 0, BaseAddressSize)
	out = append(out, Header(TypeBase, networkID))
	out = append(out, payment[:]...)
	return append(out, stake[:]...)
}

// AddressInfo describes decoded address bytes.
type AddressInfo struct {
	Type        AddressType
	NetworkID   byte
	PaymentHash []byte
	StakeHash   []byte
}

// DescribeAddress inspects raw address bytes. Byron addresses are checked for
// a valid CRC envelope; Shelley key-hash addresses are split into their parts.
func DescribeAddress(b []byte) (AddressInfo, error) {
	if len(b) == 0 {
		return AddressInfo{}, fmt.Errorf("empty address")
	}
	t, net := ParseHeader(b[0])
	info := AddressInfo{Type: t, NetworkID: net}

	switch {
	case t == TypeByron:
		if _, err := OpenByronEnvelope(b); err != nil {
			return AddressInfo{}, err
		}
		info.NetworkID = 0
		return info, nil
	case t <= 0x3:
		if len(b) != BaseAddressSize {
			return AddressInfo{}, fmt.Errorf("base address must be %d bytes, got %d", BaseAddressSize, len(b))
		}
		info.PaymentHash = b[1 : 1+KeyHashSize]
		info.StakeHash = b[1+KeyHashSize:]
	case t == 0x6 || t == 0x7:
		if len(b) != EnterpriseAddressSize {
			return AddressInfo{}, fmt.Errorf("enterprise address must be %d bytes, got %d", EnterpriseAddressSize, len(b))
		}
		info.PaymentHash = b[1:]
	case t == 0xe || t == 0xf:
		if len(b) != EnterpriseAddressSize {
			return AddressInfo{}, fmt.Errorf("reward address must be %d bytes, got %d", EnterpriseAddressSize, len(b))
		}
		info.StakeHash = b[1:]
	case t == 0x4 || t == 0x5:
		if len(b) <= EnterpriseAddressSize {
			return AddressInfo{}, fmt.Errorf("pointer address too short: %d bytes", len(b))
		}
		info.PaymentHash = b[1 : 1+KeyHashSize]
	default:
		return AddressInfo{}, fmt.Errorf("unsupported address type %d", uint8(t))
	}
	return info, nil
}
