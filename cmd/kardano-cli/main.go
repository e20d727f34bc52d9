// kardano-cli manages Cardano mnemonics, wallets and addresses offline.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Klingon-tech/kardano/config"
	"github.com/Klingon-tech/kardano/internal/log"
	"github.com/Klingon-tech/kardano/internal/wallet"
	"github.com/Klingon-tech/kardano/pkg/account"
	"github.com/Klingon-tech/kardano/pkg/types"
	"golang.org/x/term"
)

const version = "0.1.0"

// app carries the resolved configuration into every command.
type app struct {
	cfg     *config.Config
	network types.Network
}

func main() {
	cfg, flags, err := config.Load(os.Args[1:])
	if err != nil {
		fatal("%v", err)
	}
	if flags.Help {
		usage()
		return
	}
	if flags.Version {
		fmt.Printf("kardano-cli version %s\n", version)
		return
	}

	if err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		fatal("init logging: %v", err)
	}
	account.SetLogger(log.Account)

	network, err := cfg.NetworkParams()
	if err != nil {
		fatal("%v", err)
	}
	a := &app{cfg: cfg, network: network}

	args := flags.Args
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}
	cmd, cmdArgs := args[0], args[1:]
	log.CLI.Debug().Str("command", cmd).Str("network", network.Name).Msg("Dispatch")

	switch cmd {
	case "mnemonic":
		a.cmdMnemonic(cmdArgs)
	case "account":
		a.cmdAccount(cmdArgs)
	case "wallet":
		a.cmdWallet(cmdArgs)
	case "address":
		a.cmdAddress(cmdArgs)
	case "sign":
		a.cmdSign(cmdArgs)
	case "tx":
		a.cmdTx(cmdArgs)
	case "book":
		a.cmdBook(cmdArgs)
	case "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: kardano-cli [global flags] <command> [flags]

Global flags:
  --network <net>     mainnet (default), testnet, preprod or preview
  --testnet           Shorthand for --network=testnet
  --datadir <path>    Data directory (default: ~/.kardano)
  --config, -c <file> Config file (default: <datadir>/kardano.conf)
  --engine <name>     Key engine: ed25519 (default) or secp256k1
  --index <n>         Default account index
  --log-level <lvl>   trace, debug, info, warn (default), error
  --log-file <path>   Also write JSON logs to a file
  --log-json          Console logs as JSON

Commands:
  mnemonic new                    Generate a 24-word mnemonic
  mnemonic check "<words>"        Validate a mnemonic

  account show (--mnemonic "..." | --wallet <w>) [--index n] [--json] [--secrets] [--xpub]
                                  Derive and show an account
  account watch --xpub <xpub> [--index n] [--json]
                                  Show the addresses of an account xpub

  wallet create --name <n>        Create a wallet with a new mnemonic
  wallet import --name <n> --mnemonic "..."
                                  Import a wallet from a mnemonic
  wallet list                     List wallets on this network
  wallet address --wallet <w>     List recorded addresses
  wallet new-address --wallet <w> Derive and record the next address
                                  (ed25519 wallets use the stored xpub)

  address decode <address>        Show the raw bytes of an address
  address bech32 <hex> [--hrp h]  Encode raw bytes as Bech32
  address base58 <hex>            Encode raw bytes as Base58
  address inspect <address>       Describe an address

  sign --wallet <w> [--index n] (--tx <cbor hex> | --payload <hex>)
                                  Sign a transaction or raw payload

  tx build --utxo <txid#i:amount>... --to <addr|name> --amount <ADA> [--change <addr>] [--ttl n]
                                  Build an unsigned payment
  tx inspect <cbor hex>           Decode a transaction
  tx verify <cbor hex>            Check every witness signature

  book add --name <n> --address <addr> [--base <addr>] [--note text]
  book list
  book show <name>
  book delete <name>
`)
}

// engineFor returns the key engine for a scheme name, falling back to the
// configured engine when scheme is empty.
func (a *app) engineFor(scheme string) account.KeyEngine {
	if scheme == "" {
		scheme = a.cfg.Engine
	}
	engine, err := wallet.NewEngine(scheme, "")
	if err != nil {
		fatal("%v", err)
	}
	return engine
}

// ── Password helpers ────────────────────────────────────────────────────

var stdinLines = bufio.NewReader(os.Stdin)

// readPassword prompts on a terminal without echo. When stdin is not a
// terminal the first line is read instead, so scripts can pipe a password.
func readPassword(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := stdinLines.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return nil, fmt.Errorf("read password from stdin: %w", err)
		}
		return []byte(strings.TrimRight(line, "\r\n")), nil
	}
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, err
	}
	return password, nil
}

func readNewPassword() []byte {
	password, err := readPassword("Enter password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	if string(password) != string(confirm) {
		fatal("passwords do not match")
	}
	if len(password) == 0 {
		fatal("password must not be empty")
	}
	return password
}

// ── Output helpers ──────────────────────────────────────────────────────

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
