package account

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/Klingon-tech/kardano/pkg/codec"
	"github.com/Klingon-tech/kardano/pkg/tx"
	"github.com/Klingon-tech/kardano/pkg/types"
)

const testMnemonic = "stub words for a deterministic test account"

// stubEngine derives everything from SHA-256 of (mnemonic, index, tag) and
// counts calls.
type stubEngine struct {
	calls map[string]int
	fail  string
}

func newStubEngine() *stubEngine {
	return &stubEngine{calls: map[string]int{}}
}

var errStub = errors.New("stub failure")

func (e *stubEngine) hit(name string) error {
	e.calls[name]++
	if e.fail == name {
		return errStub
	}
	return nil
}

func digest(mnemonic string, index uint32, tag string) []byte {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%s", mnemonic, index, tag)))
	return h[:]
}

func stubAddress(network types.Network, payload []byte) string {
	var kh types.KeyHash
	copy(kh[:], payload)
	addr, err := codec.BytesToBech32WithHRP(network.AddressHRP(), types.EnterpriseAddressBytes(network.NetworkID, kh))
	if err != nil {
		panic(err)
	}
	return addr
}

func (e *stubEngine) GenerateMnemonic() (string, error) {
	if err := e.hit("GenerateMnemonic"); err != nil {
		return "", err
	}
	return fmt.Sprintf("generated mnemonic %d", e.calls["GenerateMnemonic"]), nil
}

func (e *stubEngine) DerivePrivateKey(m string, index uint32) (string, error) {
	if err := e.hit("DerivePrivateKey"); err != nil {
		return "", err
	}
	return "key:" + hex.EncodeToString(digest(m, index, "priv")), nil
}

func (e *stubEngine) DerivePrivateKeyBytes(m string, index uint32) ([]byte, error) {
	if err := e.hit("DerivePrivateKeyBytes"); err != nil {
		return nil, err
	}
	return digest(m, index, "priv"), nil
}

func (e *stubEngine) DerivePublicKeyBytes(m string, index uint32) ([]byte, error) {
	if err := e.hit("DerivePublicKeyBytes"); err != nil {
		return nil, err
	}
	return digest(m, index, "pub"), nil
}

func (e *stubEngine) DeriveAddress(m string, index uint32, network types.Network) (string, error) {
	if err := e.hit("DeriveAddress"); err != nil {
		return "", err
	}
	return stubAddress(network, digest(m, index, "enterprise")), nil
}

func (e *stubEngine) DeriveBaseAddress(m string, index uint32, network types.Network) (string, error) {
	if err := e.hit("DeriveBaseAddress"); err != nil {
		return "", err
	}
	var pay, stake types.KeyHash
	copy(pay[:], digest(m, index, "pay"))
	copy(stake[:], digest(m, 0, "stake"))
	return codec.BytesToBech32WithHRP(network.AddressHRP(), types.BaseAddressBytes(network.NetworkID, pay, stake))
}

func (e *stubEngine) Sign(payloadHex, key string) (string, error) {
	if err := e.hit("Sign"); err != nil {
		return "", err
	}
	h := sha256.Sum256([]byte(key + "/" + payloadHex))
	return hex.EncodeToString(h[:]), nil
}

// stubCodec returns a fixed serialization.
type stubCodec struct {
	out string
	err error
}

func (c stubCodec) SerializeToHex(*tx.Transaction) (string, error) {
	return c.out, c.err
}
