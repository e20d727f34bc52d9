package wallet

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/Klingon-tech/kardano/pkg/account"
	"github.com/Klingon-tech/kardano/pkg/codec"
	"github.com/Klingon-tech/kardano/pkg/types"
)

// Engine names accepted by NewEngine.
const (
	EngineEd25519   = "ed25519"
	EngineSecp256k1 = "secp256k1"
)

// ErrUnknownEngine is returned by NewEngine for unrecognised scheme names.
var ErrUnknownEngine = errors.New("unknown key engine")

var (
	_ account.KeyEngine = (*ShelleyEngine)(nil)
	_ account.KeyEngine = (*SchnorrEngine)(nil)
)

// NewEngine returns the key engine for a scheme name. An empty name selects
// the Ed25519 engine.
func NewEngine(scheme, passphrase string) (account.KeyEngine, error) {
	switch strings.ToLower(scheme) {
	case EngineEd25519, "":
		return &ShelleyEngine{Passphrase: passphrase}, nil
	case EngineSecp256k1:
		return &SchnorrEngine{Passphrase: passphrase}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, scheme)
	}
}

func decodePayload(payloadHex string) ([]byte, error) {
	if payloadHex == "" {
		return nil, fmt.Errorf("empty payload")
	}
	b, err := hex.DecodeString(payloadHex)
	if err != nil {
		return nil, fmt.Errorf("payload hex: %w", err)
	}
	return b, nil
}

func encodeAddress(network types.Network, raw []byte) (string, error) {
	if err := network.Validate(); err != nil {
		return "", err
	}
	return codec.BytesToBech32WithHRP(network.AddressHRP(), raw)
}
