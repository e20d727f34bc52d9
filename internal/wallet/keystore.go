package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	klog "github.com/Klingon-tech/kardano/internal/log"
)

const keystoreVersion = 1

// Keystore errors.
var (
	ErrWalletExists   = errors.New("wallet already exists")
	ErrWalletNotFound = errors.New("wallet not found")
)

// keystoreFile is the on-disk JSON format for an encrypted wallet.
type keystoreFile struct {
	Version           int            `json:"version"`
	CreatedAt         time.Time      `json:"created_at"`
	Engine            string         `json:"engine"`
	Network           string         `json:"network"`
	EncryptedMnemonic []byte         `json:"encrypted_mnemonic"`
	AccountXPub       string         `json:"account_xpub,omitempty"`
	Accounts          []AccountEntry `json:"accounts"`
	NextIndex         uint32         `json:"next_index"`
}

// AccountEntry records a derived account's public identity.
type AccountEntry struct {
	Index       uint32 `json:"index"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	BaseAddress string `json:"base_address,omitempty"`
}

// WalletInfo is the unencrypted part of a wallet file.
type WalletInfo struct {
	Name      string
	CreatedAt time.Time
	Engine    string
	Network   string
	NextIndex uint32
	Accounts  []AccountEntry
	// AccountXPub is set for Ed25519 wallets and allows deriving new
	// addresses without the password.
	AccountXPub string
}

// Keystore manages encrypted mnemonic files in a directory.
type Keystore struct {
	path string
}

// NewKeystore opens a keystore directory, creating it if needed.
func NewKeystore(path string) (*Keystore, error) {
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, fmt.Errorf("create keystore dir: %w", err)
	}
	return &Keystore{path: path}, nil
}

func (ks *Keystore) walletPath(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid wallet name %q", name)
	}
	return filepath.Join(ks.path, name+".wallet"), nil
}

// Create writes a new wallet holding the encrypted mnemonic. Engine and
// network are stored in the clear so addresses can be listed without the
// password.
func (ks *Keystore) Create(name, mnemonic string, password []byte, params EncryptionParams, engine, network string) error {
	path, err := ks.walletPath(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %q", ErrWalletExists, name)
	}
	mnemonic = NormalizeMnemonic(mnemonic)
	if !ValidateMnemonic(mnemonic) {
		return ErrInvalidMnemonic
	}

	encrypted, err := Encrypt([]byte(mnemonic), password, params)
	if err != nil {
		return fmt.Errorf("encrypt mnemonic: %w", err)
	}
	kf := keystoreFile{
		Version:           keystoreVersion,
		CreatedAt:         time.Now().UTC(),
		Engine:            engine,
		Network:           network,
		EncryptedMnemonic: encrypted,
		Accounts:          []AccountEntry{},
	}
	if err := writeKeystoreFile(path, &kf); err != nil {
		return err
	}
	klog.Keystore.Info().Str("wallet", name).Str("engine", engine).Str("network", network).Msg("Wallet created")
	return nil
}

// Load decrypts and returns a wallet's mnemonic.
func (ks *Keystore) Load(name string, password []byte) (string, error) {
	kf, _, err := ks.read(name)
	if err != nil {
		return "", err
	}
	plain, err := Decrypt(kf.EncryptedMnemonic, password)
	if err != nil {
		return "", fmt.Errorf("decrypt wallet %q: %w", name, err)
	}
	defer zero(plain)
	return string(plain), nil
}

// Info returns the wallet's unencrypted metadata.
func (ks *Keystore) Info(name string) (*WalletInfo, error) {
	kf, _, err := ks.read(name)
	if err != nil {
		return nil, err
	}
	return &WalletInfo{
		Name:      name,
		CreatedAt: kf.CreatedAt,
		Engine:    kf.Engine,
		Network:   kf.Network,
		NextIndex: kf.NextIndex,
		Accounts:  kf.Accounts,

		AccountXPub: kf.AccountXPub,
	}, nil
}

// SetAccountXPub stores the account extended public key in the clear.
func (ks *Keystore) SetAccountXPub(walletName, xpub string) error {
	if _, err := ParseXPub(xpub); err != nil {
		return err
	}
	kf, path, err := ks.read(walletName)
	if err != nil {
		return err
	}
	if e := strings.ToLower(kf.Engine); e != "" && e != EngineEd25519 {
		return fmt.Errorf("wallet %q uses engine %s; only %s wallets have an xpub", walletName, kf.Engine, EngineEd25519)
	}
	kf.AccountXPub = xpub
	return writeKeystoreFile(path, kf)
}

// AddAccount records a derived account. Re-adding an identical entry is a
// no-op; a different address at a recorded index is an error. NextIndex is
// moved past the entry's index.
func (ks *Keystore) AddAccount(walletName string, acct AccountEntry) error {
	kf, path, err := ks.read(walletName)
	if err != nil {
		return err
	}
	for _, existing := range kf.Accounts {
		if existing.Index != acct.Index {
			continue
		}
		if existing.Address == acct.Address {
			return nil
		}
		return fmt.Errorf("account index %d already recorded with address %s", acct.Index, existing.Address)
	}
	kf.Accounts = append(kf.Accounts, acct)
	if acct.Index >= kf.NextIndex {
		kf.NextIndex = acct.Index + 1
	}
	if err := writeKeystoreFile(path, kf); err != nil {
		return err
	}
	klog.Keystore.Debug().Str("wallet", walletName).Uint32("index", acct.Index).Str("address", acct.Address).Msg("Account recorded")
	return nil
}

// ListAccounts returns the recorded accounts of a wallet.
func (ks *Keystore) ListAccounts(walletName string) ([]AccountEntry, error) {
	kf, _, err := ks.read(walletName)
	if err != nil {
		return nil, err
	}
	return kf.Accounts, nil
}

// NextIndex returns the first unused account index.
func (ks *Keystore) NextIndex(walletName string) (uint32, error) {
	kf, _, err := ks.read(walletName)
	if err != nil {
		return 0, err
	}
	return kf.NextIndex, nil
}

// List returns the names of all wallets in the keystore.
func (ks *Keystore) List() ([]string, error) {
	entries, err := os.ReadDir(ks.path)
	if err != nil {
		return nil, fmt.Errorf("read keystore dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(e.Name(), ".wallet"); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// Delete removes a wallet file.
func (ks *Keystore) Delete(name string) error {
	path, err := ks.walletPath(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("%w: %q", ErrWalletNotFound, name)
	}
	return os.Remove(path)
}

func (ks *Keystore) read(name string) (*keystoreFile, string, error) {
	path, err := ks.walletPath(name)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, "", fmt.Errorf("%w: %q", ErrWalletNotFound, name)
	}
	if err != nil {
		return nil, "", fmt.Errorf("read wallet: %w", err)
	}
	var kf keystoreFile
	if err := json.Unmarshal(data, &kf); err != nil {
		return nil, "", fmt.Errorf("parse wallet: %w", err)
	}
	if kf.Version != keystoreVersion {
		return nil, "", fmt.Errorf("unsupported wallet version: %d", kf.Version)
	}
	return &kf, path, nil
}

// writeKeystoreFile writes via a temp file and rename so a crash never leaves
// a truncated wallet.
func writeKeystoreFile(path string, kf *keystoreFile) error {
	data, err := json.MarshalIndent(kf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal wallet: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write wallet: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write wallet: %w", err)
	}
	return nil
}
