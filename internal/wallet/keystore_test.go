package wallet

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func testKeystore(t *testing.T) *Keystore {
	t.Helper()
	ks, err := NewKeystore(t.TempDir())
	if err != nil {
		t.Fatalf("NewKeystore() error: %v", err)
	}
	return ks
}

func createWallet(t *testing.T, ks *Keystore, name string) {
	t.Helper()
	if err := ks.Create(name, testMnemonic, []byte("pw"), fastParams(), EngineEd25519, "preprod"); err != nil {
		t.Fatalf("Create(%q) error: %v", name, err)
	}
}

func TestKeystore_CreateAndLoad(t *testing.T) {
	ks := testKeystore(t)
	createWallet(t, ks, "main")

	m, err := ks.Load("main", []byte("pw"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if m != testMnemonic {
		t.Errorf("loaded mnemonic = %q", m)
	}

	info, err := ks.Info("main")
	if err != nil {
		t.Fatal(err)
	}
	if info.Engine != EngineEd25519 || info.Network != "preprod" || info.NextIndex != 0 {
		t.Errorf("info = %+v", info)
	}
}

func TestKeystore_CreateNormalizesMnemonic(t *testing.T) {
	ks := testKeystore(t)
	messy := "  ABANDON abandon\tabandon abandon abandon abandon abandon abandon abandon abandon abandon about "
	if err := ks.Create("w", messy, []byte("pw"), fastParams(), EngineEd25519, "mainnet"); err != nil {
		t.Fatal(err)
	}
	m, _ := ks.Load("w", []byte("pw"))
	if m != "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about" {
		t.Errorf("mnemonic not normalized: %q", m)
	}
}

func TestKeystore_CreateErrors(t *testing.T) {
	ks := testKeystore(t)
	createWallet(t, ks, "dup")

	if err := ks.Create("dup", testMnemonic, []byte("pw"), fastParams(), "", ""); !errors.Is(err, ErrWalletExists) {
		t.Errorf("duplicate: expected ErrWalletExists, got %v", err)
	}
	if err := ks.Create("bad", "not a mnemonic", []byte("pw"), fastParams(), "", ""); !errors.Is(err, ErrInvalidMnemonic) {
		t.Errorf("bad mnemonic: expected ErrInvalidMnemonic, got %v", err)
	}
	for _, name := range []string{"", "../escape", "a/b", ".."} {
		if err := ks.Create(name, testMnemonic, []byte("pw"), fastParams(), "", ""); err == nil {
			t.Errorf("name %q should be rejected", name)
		}
	}
}

func TestKeystore_LoadErrors(t *testing.T) {
	ks := testKeystore(t)
	createWallet(t, ks, "w")

	if _, err := ks.Load("w", []byte("wrong")); !errors.Is(err, ErrDecrypt) {
		t.Errorf("wrong password: expected ErrDecrypt, got %v", err)
	}
	if _, err := ks.Load("missing", []byte("pw")); !errors.Is(err, ErrWalletNotFound) {
		t.Errorf("missing: expected ErrWalletNotFound, got %v", err)
	}
}

func TestKeystore_ListAndDelete(t *testing.T) {
	ks := testKeystore(t)
	createWallet(t, ks, "alpha")
	createWallet(t, ks, "beta")
	os.WriteFile(filepath.Join(ks.path, "notes.txt"), []byte("x"), 0600)

	names, err := ks.List()
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(names)
	if len(names) != 2 || names[0] != "alpha" || names[1] != "beta" {
		t.Errorf("List() = %v", names)
	}

	if err := ks.Delete("alpha"); err != nil {
		t.Fatal(err)
	}
	if err := ks.Delete("alpha"); !errors.Is(err, ErrWalletNotFound) {
		t.Errorf("second delete: expected ErrWalletNotFound, got %v", err)
	}
}

func TestKeystore_AddAccount(t *testing.T) {
	ks := testKeystore(t)
	createWallet(t, ks, "w")

	a0 := AccountEntry{Index: 0, Name: "default", Address: "addr_test1a"}
	a3 := AccountEntry{Index: 3, Name: "savings", Address: "addr_test1b"}
	for _, a := range []AccountEntry{a0, a3, a0} {
		if err := ks.AddAccount("w", a); err != nil {
			t.Fatalf("AddAccount(%+v): %v", a, err)
		}
	}

	accts, err := ks.ListAccounts("w")
	if err != nil {
		t.Fatal(err)
	}
	if len(accts) != 2 {
		t.Fatalf("accounts = %d, want 2", len(accts))
	}
	next, _ := ks.NextIndex("w")
	if next != 4 {
		t.Errorf("NextIndex = %d, want 4", next)
	}

	clash := AccountEntry{Index: 3, Address: "addr_test1other"}
	if err := ks.AddAccount("w", clash); err == nil {
		t.Error("conflicting address at recorded index should fail")
	}
}

func TestKeystore_FilePermissions(t *testing.T) {
	ks := testKeystore(t)
	createWallet(t, ks, "secure")

	info, err := os.Stat(filepath.Join(ks.path, "secure.wallet"))
	if err != nil {
		t.Fatalf("Stat() error: %v", err)
	}
	if perm := info.Mode().Perm(); perm&0077 != 0 {
		t.Errorf("wallet file should be 0600, got %o", perm)
	}
}

func TestKeystore_FileHasNoPlaintextMnemonic(t *testing.T) {
	ks := testKeystore(t)
	createWallet(t, ks, "w")
	data, err := os.ReadFile(filepath.Join(ks.path, "w.wallet"))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(data, []byte("abandon")) {
		t.Error("wallet file contains plaintext mnemonic words")
	}
}

func TestKeystore_SetAccountXPub(t *testing.T) {
	ks := testKeystore(t)
	createWallet(t, ks, "main")

	info, err := ks.Info("main")
	if err != nil {
		t.Fatal(err)
	}
	if info.AccountXPub != "" {
		t.Error("new wallet should have no xpub")
	}

	xpub, err := (&ShelleyEngine{}).AccountXPub(testMnemonic)
	if err != nil {
		t.Fatal(err)
	}
	if err := ks.SetAccountXPub("main", xpub.String()); err != nil {
		t.Fatalf("SetAccountXPub: %v", err)
	}
	info, err = ks.Info("main")
	if err != nil {
		t.Fatal(err)
	}
	if info.AccountXPub != xpub.String() {
		t.Errorf("xpub = %q, want %q", info.AccountXPub, xpub.String())
	}
	if m, err := ks.Load("main", []byte("pw")); err != nil || m != testMnemonic {
		t.Errorf("Load after SetAccountXPub = %q, %v", m, err)
	}

	if err := ks.SetAccountXPub("main", "xpub1notakey"); err == nil {
		t.Error("invalid xpub should fail")
	}
	if err := ks.SetAccountXPub("missing", xpub.String()); !errors.Is(err, ErrWalletNotFound) {
		t.Errorf("expected ErrWalletNotFound, got %v", err)
	}

	if err := ks.Create("schnorr", testMnemonic, []byte("pw"), fastParams(), EngineSecp256k1, "preprod"); err != nil {
		t.Fatal(err)
	}
	if err := ks.SetAccountXPub("schnorr", xpub.String()); err == nil {
		t.Error("secp256k1 wallet should not accept an xpub")
	}
}
