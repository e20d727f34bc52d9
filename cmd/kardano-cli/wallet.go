package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/Klingon-tech/kardano/internal/log"
	"github.com/Klingon-tech/kardano/internal/wallet"
	"github.com/Klingon-tech/kardano/pkg/account"
)

// ── mnemonic ────────────────────────────────────────────────────────────

func (a *app) cmdMnemonic(args []string) {
	if len(args) < 1 {
		fatal("Usage: kardano-cli mnemonic <new|check> [words]")
	}
	switch args[0] {
	case "new":
		m, err := a.engineFor("").GenerateMnemonic()
		if err != nil {
			fatal("generate mnemonic: %v", err)
		}
		fmt.Println(m)
	case "check":
		if len(args) != 2 {
			fatal("Usage: kardano-cli mnemonic check \"word1 word2 ...\"")
		}
		if !wallet.ValidateMnemonic(args[1]) {
			fatal("invalid mnemonic")
		}
		fmt.Println("Mnemonic is valid.")
	default:
		fatal("Unknown mnemonic command: %s", args[0])
	}
}

// ── account ─────────────────────────────────────────────────────────────

func (a *app) cmdAccount(args []string) {
	if len(args) < 1 {
		fatal("Usage: kardano-cli account <show|watch> [flags]")
	}
	switch args[0] {
	case "show":
		a.cmdAccountShow(args[1:])
	case "watch":
		a.cmdAccountWatch(args[1:])
	default:
		fatal("Unknown account command: %s", args[0])
	}
}

func (a *app) cmdAccountShow(args []string) {
	fs := flag.NewFlagSet("account show", flag.ExitOnError)
	mnemonic := fs.String("mnemonic", "", "BIP-39 mnemonic")
	walletName := fs.String("wallet", "", "Wallet name")
	index := fs.Uint("index", uint(a.cfg.Account.Index), "Account index")
	asJSON := fs.Bool("json", false, "Print as JSON")
	secrets := fs.Bool("secrets", false, "Also print the mnemonic and private key")
	showXPub := fs.Bool("xpub", false, "Also print the account extended public key (ed25519 only)")
	fs.Parse(args)

	var (
		acct   *account.Account
		engine account.KeyEngine
	)
	switch {
	case *mnemonic != "" && *walletName != "":
		fatal("use either --mnemonic or --wallet, not both")
	case *mnemonic != "":
		var err error
		engine = a.engineFor("")
		acct, err = account.FromMnemonic(engine, a.network, wallet.NormalizeMnemonic(*mnemonic), uint32(*index))
		if err != nil {
			fatal("derive account: %v", err)
		}
	case *walletName != "":
		acct, engine = a.loadAccount(*walletName, uint32(*index))
	default:
		fatal("Usage: kardano-cli account show (--mnemonic \"...\" | --wallet <w>) [--index n]")
	}
	defer acct.Close()

	if *asJSON {
		out, err := json.MarshalIndent(acct, "", "  ")
		if err != nil {
			fatal("encode account: %v", err)
		}
		fmt.Println(string(out))
		return
	}

	addr, err := acct.Address()
	if err != nil {
		fatal("address: %v", err)
	}
	fmt.Printf("Network:      %s\n", a.network.Name)
	fmt.Printf("Index:        %d\n", acct.Index())
	fmt.Printf("Address:      %s\n", addr)
	if base, err := acct.BaseAddress(); err == nil {
		fmt.Printf("Base address: %s\n", base)
	} else {
		log.CLI.Debug().Err(err).Msg("No base address")
	}
	if pub, ok := acct.PublicKeyBytes(); ok {
		fmt.Printf("Public key:   %s\n", hex.EncodeToString(pub))
	}
	if *showXPub {
		fmt.Printf("Account xpub: %s\n", accountXPub(engine, acct))
	}
	if *secrets {
		if m, ok := acct.Mnemonic(); ok {
			fmt.Printf("Mnemonic:     %s\n", m)
		}
		if k, ok := acct.PrivateKey(); ok {
			fmt.Printf("Private key:  %s\n", k)
		}
	}
}

// accountXPub returns the Bech32 account xpub behind a keyed Ed25519 account.
func accountXPub(engine account.KeyEngine, acct *account.Account) string {
	se, ok := engine.(*wallet.ShelleyEngine)
	if !ok {
		fatal("extended public keys need the %s engine", wallet.EngineEd25519)
	}
	m, ok := acct.Mnemonic()
	if !ok {
		fatal("account has no mnemonic")
	}
	xpub, err := se.AccountXPub(m)
	if err != nil {
		fatal("account xpub: %v", err)
	}
	return xpub.String()
}

func (a *app) cmdAccountWatch(args []string) {
	fs := flag.NewFlagSet("account watch", flag.ExitOnError)
	xpubStr := fs.String("xpub", "", "Account extended public key")
	index := fs.Uint("index", uint(a.cfg.Account.Index), "Account index")
	asJSON := fs.Bool("json", false, "Print as JSON")
	fs.Parse(args)
	if *xpubStr == "" {
		fatal("Usage: kardano-cli account watch --xpub <xpub> [--index n] [--json]")
	}

	xpub, err := wallet.ParseXPub(*xpubStr)
	if err != nil {
		fatal("%v", err)
	}
	acct, err := wallet.WatchAccount(xpub, a.network, uint32(*index))
	if err != nil {
		fatal("%v", err)
	}
	defer acct.Close()

	if *asJSON {
		out, err := json.MarshalIndent(acct, "", "  ")
		if err != nil {
			fatal("encode account: %v", err)
		}
		fmt.Println(string(out))
		return
	}
	addr, err := acct.Address()
	if err != nil {
		fatal("address: %v", err)
	}
	base, err := acct.BaseAddress()
	if err != nil {
		fatal("base address: %v", err)
	}
	fmt.Printf("Network:      %s\n", a.network.Name)
	fmt.Printf("Index:        %d\n", *index)
	fmt.Printf("Address:      %s\n", addr)
	fmt.Printf("Base address: %s\n", base)
}

// ── wallet ──────────────────────────────────────────────────────────────

func (a *app) keystore() *wallet.Keystore {
	ks, err := wallet.NewKeystore(a.cfg.KeystoreDir())
	if err != nil {
		fatal("open keystore: %v", err)
	}
	return ks
}

// loadAccount decrypts a wallet and derives the account at index with the
// wallet's engine.
func (a *app) loadAccount(name string, index uint32) (*account.Account, account.KeyEngine) {
	ks := a.keystore()
	info, err := ks.Info(name)
	if err != nil {
		fatal("%v", err)
	}
	if info.Network != a.network.Name {
		fatal("wallet %q belongs to %s, not %s", name, info.Network, a.network.Name)
	}

	password, err := readPassword("Password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	mnemonic, err := ks.Load(name, password)
	if err != nil {
		fatal("%v", err)
	}
	engine := a.engineFor(info.Engine)
	acct, err := account.FromMnemonic(engine, a.network, mnemonic, index)
	if err != nil {
		fatal("derive account: %v", err)
	}
	return acct, engine
}

func (a *app) cmdWallet(args []string) {
	if len(args) < 1 {
		fatal("Usage: kardano-cli wallet <create|import|list|address|new-address> [flags]")
	}
	switch args[0] {
	case "create":
		a.cmdWalletCreate(args[1:])
	case "import":
		a.cmdWalletImport(args[1:])
	case "list":
		a.cmdWalletList()
	case "address":
		a.cmdWalletAddress(args[1:])
	case "new-address":
		a.cmdWalletNewAddress(args[1:])
	default:
		fatal("Unknown wallet command: %s\nUsage: kardano-cli wallet <create|import|list|address|new-address> [flags]", args[0])
	}
}

func (a *app) cmdWalletCreate(args []string) {
	fs := flag.NewFlagSet("wallet create", flag.ExitOnError)
	name := fs.String("name", "", "Wallet name")
	fs.Parse(args)
	if *name == "" {
		fatal("Usage: kardano-cli wallet create --name <name>")
	}

	mnemonic, err := a.engineFor("").GenerateMnemonic()
	if err != nil {
		fatal("generate mnemonic: %v", err)
	}
	fmt.Println("Mnemonic (write this down!):")
	fmt.Printf("  %s\n\n", mnemonic)

	addr := a.storeWallet(*name, mnemonic)
	fmt.Printf("\nWallet created: %s\n", *name)
	fmt.Printf("Address: %s\n", addr)
}

func (a *app) cmdWalletImport(args []string) {
	fs := flag.NewFlagSet("wallet import", flag.ExitOnError)
	name := fs.String("name", "", "Wallet name")
	mnemonic := fs.String("mnemonic", "", "BIP-39 mnemonic")
	fs.Parse(args)
	if *name == "" || *mnemonic == "" {
		fatal("Usage: kardano-cli wallet import --name <name> --mnemonic \"word1 word2 ...\"")
	}
	if !wallet.ValidateMnemonic(*mnemonic) {
		fatal("invalid mnemonic")
	}

	addr := a.storeWallet(*name, wallet.NormalizeMnemonic(*mnemonic))
	fmt.Printf("Wallet imported: %s\n", *name)
	fmt.Printf("Address: %s\n", addr)
}

// storeWallet encrypts mnemonic into a new wallet and records account 0.
func (a *app) storeWallet(name, mnemonic string) string {
	engine := a.engineFor("")
	acct, err := account.FromMnemonic(engine, a.network, mnemonic, 0)
	if err != nil {
		fatal("derive account: %v", err)
	}
	defer acct.Close()
	entry := accountEntry(acct, 0, "Default")

	password := readNewPassword()
	ks := a.keystore()
	if err := ks.Create(name, mnemonic, password, a.cfg.EncryptionParams(), a.cfg.Engine, a.network.Name); err != nil {
		fatal("create wallet: %v", err)
	}
	if err := ks.AddAccount(name, entry); err != nil {
		fatal("add account: %v", err)
	}
	if _, ok := engine.(*wallet.ShelleyEngine); ok {
		if err := ks.SetAccountXPub(name, accountXPub(engine, acct)); err != nil {
			fatal("store account xpub: %v", err)
		}
	}
	return entry.Address
}

func accountEntry(acct *account.Account, index uint32, name string) wallet.AccountEntry {
	addr, err := acct.Address()
	if err != nil {
		fatal("address: %v", err)
	}
	base, err := acct.BaseAddress()
	if err != nil {
		fatal("base address: %v", err)
	}
	return wallet.AccountEntry{Index: index, Name: name, Address: addr, BaseAddress: base}
}

func (a *app) cmdWalletList() {
	ks := a.keystore()
	names, err := ks.List()
	if err != nil {
		fatal("list wallets: %v", err)
	}
	if len(names) == 0 {
		fmt.Println("No wallets found.")
		return
	}
	for _, name := range names {
		info, err := ks.Info(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", name, err)
			continue
		}
		fmt.Printf("  %-20s %-10s %d account(s)  created %s\n",
			name, info.Engine, len(info.Accounts), info.CreatedAt.Format("2006-01-02"))
	}
}

func (a *app) cmdWalletAddress(args []string) {
	fs := flag.NewFlagSet("wallet address", flag.ExitOnError)
	name := fs.String("wallet", "", "Wallet name")
	fs.Parse(args)
	if *name == "" {
		fatal("Usage: kardano-cli wallet address --wallet <name>")
	}

	accounts, err := a.keystore().ListAccounts(*name)
	if err != nil {
		fatal("%v", err)
	}
	for _, acct := range accounts {
		fmt.Printf("  [%d] %-10s %s\n", acct.Index, acct.Name, acct.Address)
		if acct.BaseAddress != "" {
			fmt.Printf("       %-10s %s\n", "base", acct.BaseAddress)
		}
	}
}

func (a *app) cmdWalletNewAddress(args []string) {
	fs := flag.NewFlagSet("wallet new-address", flag.ExitOnError)
	name := fs.String("wallet", "", "Wallet name")
	label := fs.String("label", "", "Account label")
	fs.Parse(args)
	if *name == "" {
		fatal("Usage: kardano-cli wallet new-address --wallet <name> [--label <text>]")
	}

	ks := a.keystore()
	info, err := ks.Info(*name)
	if err != nil {
		fatal("%v", err)
	}
	if info.Network != a.network.Name {
		fatal("wallet %q belongs to %s, not %s", *name, info.Network, a.network.Name)
	}
	next := info.NextIndex

	// Ed25519 wallets derive new addresses from the stored xpub without
	// asking for the password.
	var acct *account.Account
	if info.AccountXPub != "" {
		xpub, err := wallet.ParseXPub(info.AccountXPub)
		if err != nil {
			fatal("wallet %q: %v", *name, err)
		}
		if acct, err = wallet.WatchAccount(xpub, a.network, next); err != nil {
			fatal("%v", err)
		}
		log.CLI.Debug().Str("wallet", *name).Uint32("index", next).Msg("Derived address from account xpub")
	} else {
		acct, _ = a.loadAccount(*name, next)
	}
	defer acct.Close()

	if *label == "" {
		*label = fmt.Sprintf("Account %d", next)
	}
	entry := accountEntry(acct, next, *label)
	if err := ks.AddAccount(*name, entry); err != nil {
		fatal("add account: %v", err)
	}
	fmt.Printf("[%d] %s\n", entry.Index, entry.Address)
}
