// Package account models a Cardano account identity: a network, a derivation
// index and either a mnemonic (keyed) or a pair of known addresses
// (address-only). Cryptography is delegated to an injected KeyEngine.
package account

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Klingon-tech/kardano/pkg/codec"
	"github.com/Klingon-tech/kardano/pkg/tx"
	"github.com/Klingon-tech/kardano/pkg/types"
	"github.com/rs/zerolog"
)

var logger = zerolog.Nop()

// SetLogger sets the logger used for account events. Secrets are never logged.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// Account is a keyed or address-only identity. It is safe for concurrent use.
type Account struct {
	network types.Network
	index   uint32
	engine  KeyEngine

	mu         sync.Mutex
	mnemonic   string
	privateKey string
	privBytes  []byte
	pubBytes   []byte
	enterprise *string
	base       *string
	closed     bool
}

// Generate creates a keyed account from a freshly generated mnemonic.
func Generate(engine KeyEngine, network types.Network, index uint32) (*Account, error) {
	return FromMnemonic(engine, network, "", index)
}

// FromMnemonic creates a keyed account. An empty mnemonic asks the engine for a
// new one. Keys and the enterprise address are derived before returning.
func FromMnemonic(engine KeyEngine, network types.Network, mnemonic string, index uint32) (*Account, error) {
	if engine == nil {
		return nil, fmt.Errorf("%w: nil key engine", ErrInvalidInput)
	}
	if err := network.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if mnemonic == "" {
		m, err := engine.GenerateMnemonic()
		if err != nil {
			return nil, fmt.Errorf("generate mnemonic: %w", err)
		}
		mnemonic = m
	}

	a := &Account{network: network, index: index, engine: engine, mnemonic: mnemonic}

	var err error
	if a.privateKey, err = engine.DerivePrivateKey(mnemonic, index); err != nil {
		return nil, fmt.Errorf("derive private key: %w", err)
	}
	if a.privBytes, err = engine.DerivePrivateKeyBytes(mnemonic, index); err != nil {
		return nil, fmt.Errorf("derive private key bytes: %w", err)
	}
	if a.pubBytes, err = engine.DerivePublicKeyBytes(mnemonic, index); err != nil {
		return nil, fmt.Errorf("derive public key bytes: %w", err)
	}
	addr, err := a.Address()
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("network", network.String()).
		Uint32("index", index).
		Str("address", addr).
		Msg("Account derived")
	return a, nil
}

// FromKnownAddresses creates an address-only account. The enterprise address
// is required; base may be empty. Shelley addresses must carry the network's
// ID in their header.
func FromKnownAddresses(network types.Network, base, enterprise string) (*Account, error) {
	if err := network.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if enterprise == "" {
		return nil, fmt.Errorf("%w: enterprise address is required", ErrInvalidInput)
	}
	if err := checkAddress(network, enterprise); err != nil {
		return nil, fmt.Errorf("enterprise address: %w", err)
	}
	a := &Account{network: network, enterprise: &enterprise}
	if base != "" {
		if err := checkAddress(network, base); err != nil {
			return nil, fmt.Errorf("base address: %w", err)
		}
		a.base = &base
	}
	return a, nil
}

func checkAddress(network types.Network, address string) error {
	raw, err := codec.ToBytes(address)
	if err != nil {
		return err
	}
	if t, id := types.ParseHeader(raw[0]); t != types.TypeByron && id != network.NetworkID {
		return fmt.Errorf("%w: address is for network id %d, want %d", ErrInvalidInput, id, network.NetworkID)
	}
	return nil
}

// Network returns the account's network.
func (a *Account) Network() types.Network {
	return a.network
}

// Index returns the derivation index.
func (a *Account) Index() uint32 {
	return a.index
}

// IsReadOnly reports whether the account lacks a private key.
func (a *Account) IsReadOnly() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.privateKey == ""
}

// Address returns the enterprise address, deriving and caching it on first
// use. A failed derivation leaves the cache empty.
func (a *Account) Address() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return "", errClosed
	}
	if a.enterprise != nil {
		return *a.enterprise, nil
	}
	if a.mnemonic == "" {
		return "", fmt.Errorf("%w: no mnemonic to derive an address from", ErrUnsupportedOperation)
	}
	addr, err := a.engine.DeriveAddress(a.mnemonic, a.index, a.network)
	if err != nil {
		return "", fmt.Errorf("derive address: %w", err)
	}
	if addr == "" {
		return "", fmt.Errorf("%w: engine returned an empty address", ErrAddress)
	}
	a.enterprise = &addr
	return addr, nil
}

// EnterpriseAddress is an alias for Address.
func (a *Account) EnterpriseAddress() (string, error) {
	return a.Address()
}

// BaseAddress returns the base address. Keyed accounts derive it on first use;
// address-only accounts return the one they were given.
func (a *Account) BaseAddress() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return "", errClosed
	}
	if a.base != nil {
		return *a.base, nil
	}
	if a.mnemonic == "" {
		return "", fmt.Errorf("%w: no base address known", ErrUnsupportedOperation)
	}
	addr, err := a.engine.DeriveBaseAddress(a.mnemonic, a.index, a.network)
	if err != nil {
		return "", fmt.Errorf("derive base address: %w", err)
	}
	if addr == "" {
		return "", fmt.Errorf("%w: engine returned an empty base address", ErrAddress)
	}
	a.base = &addr
	return addr, nil
}

// Mnemonic returns the seed phrase, if the account has one.
func (a *Account) Mnemonic() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mnemonic, a.mnemonic != ""
}

// PrivateKey returns the engine's encoded key handle.
func (a *Account) PrivateKey() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.privateKey, a.privateKey != ""
}

// PrivateKeyBytes returns a copy of the raw private key.
func (a *Account) PrivateKeyBytes() ([]byte, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.privBytes == nil {
		return nil, false
	}
	return append([]byte(nil), a.privBytes...), true
}

// PublicKeyBytes returns a copy of the raw public key.
func (a *Account) PublicKeyBytes() ([]byte, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pubBytes == nil {
		return nil, false
	}
	return append([]byte(nil), a.pubBytes...), true
}

// SignTransaction serializes t with c and signs the resulting hex.
func (a *Account) SignTransaction(c TransactionCodec, t *tx.Transaction) (string, error) {
	key, err := a.signingKey()
	if err != nil {
		return "", err
	}
	if c == nil {
		return "", fmt.Errorf("%w: nil transaction codec", ErrSerialization)
	}
	payload, err := c.SerializeToHex(t)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	if payload == "" {
		return "", fmt.Errorf("%w: empty serialization", ErrSerialization)
	}
	return a.sign(payload, key)
}

// Sign signs an already serialized hex payload.
func (a *Account) Sign(txHex string) (string, error) {
	key, err := a.signingKey()
	if err != nil {
		return "", err
	}
	if txHex == "" {
		return "", fmt.Errorf("%w: empty transaction hex", ErrInvalidInput)
	}
	return a.sign(txHex, key)
}

func (a *Account) sign(payload, key string) (string, error) {
	sig, err := a.engine.Sign(payload, key)
	if err != nil {
		return "", fmt.Errorf("sign: %w", err)
	}
	logger.Debug().Uint32("index", a.index).Int("payload_len", len(payload)/2).Msg("Payload signed")
	return sig, nil
}

func (a *Account) signingKey() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return "", errClosed
	}
	if a.privateKey == "" {
		return "", fmt.Errorf("%w: account has no private key", ErrUnsupportedOperation)
	}
	return a.privateKey, nil
}

// Close wipes the mnemonic and key material and disposes of the account.
// Every address, key and signing operation fails afterwards; only Network,
// Index and the text renderings remain. Close is idempotent.
func (a *Account) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.privBytes {
		a.privBytes[i] = 0
	}
	a.privBytes = nil
	a.pubBytes = nil
	a.privateKey = ""
	a.mnemonic = ""
	a.closed = true
	return nil
}

// String returns the enterprise address, or a placeholder if none is cached.
func (a *Account) String() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.enterprise == nil {
		return "<underived account>"
	}
	return *a.enterprise
}

// GoString keeps secrets out of %#v output.
func (a *Account) GoString() string {
	return fmt.Sprintf("account.Account{network: %q, index: %d, address: %q, readOnly: %t}",
		a.network.String(), a.index, a.String(), a.IsReadOnly())
}

type accountJSON struct {
	Network     string `json:"network"`
	Index       uint32 `json:"index"`
	Address     string `json:"address,omitempty"`
	BaseAddress string `json:"base_address,omitempty"`
	ReadOnly    bool   `json:"read_only"`
}

// MarshalJSON encodes the public identity only.
func (a *Account) MarshalJSON() ([]byte, error) {
	a.mu.Lock()
	j := accountJSON{
		Network:  a.network.String(),
		Index:    a.index,
		ReadOnly: a.privateKey == "",
	}
	if a.enterprise != nil {
		j.Address = *a.enterprise
	}
	if a.base != nil {
		j.BaseAddress = *a.base
	}
	a.mu.Unlock()
	return json.Marshal(j)
}
