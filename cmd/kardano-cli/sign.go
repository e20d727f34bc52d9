package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"strings"

	"github.com/Klingon-tech/kardano/config"
	"github.com/Klingon-tech/kardano/internal/log"
	"github.com/Klingon-tech/kardano/internal/wallet"
	"github.com/Klingon-tech/kardano/pkg/tx"
)

// ── sign ────────────────────────────────────────────────────────────────

func (a *app) cmdSign(args []string) {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	name := fs.String("wallet", "", "Wallet name")
	index := fs.Uint("index", uint(a.cfg.Account.Index), "Account index")
	txHex := fs.String("tx", "", "Transaction CBOR hex")
	payload := fs.String("payload", "", "Raw payload hex")
	fs.Parse(args)

	if *name == "" || (*txHex == "") == (*payload == "") {
		fatal("Usage: kardano-cli sign --wallet <w> [--index n] (--tx <cbor hex> | --payload <hex>)")
	}

	acct, _ := a.loadAccount(*name, uint32(*index))
	defer acct.Close()

	if *payload != "" {
		sig, err := acct.Sign(*payload)
		if err != nil {
			fatal("sign: %v", err)
		}
		fmt.Println(sig)
		return
	}

	c := tx.NewCodec()
	t, err := c.DecodeHex(strings.TrimSpace(*txHex))
	if err != nil {
		fatal("decode tx: %v", err)
	}
	if err := tx.Witness(acct, c, t); err != nil {
		fatal("sign: %v", err)
	}
	id, err := c.ID(t)
	if err != nil {
		fatal("tx id: %v", err)
	}
	out, err := c.EncodeHex(t)
	if err != nil {
		fatal("encode tx: %v", err)
	}
	log.CLI.Info().Str("tx", id.String()).Int("witnesses", len(t.Witnesses.VKeys)).Msg("Transaction signed")
	fmt.Println(out)
}

// ── tx ──────────────────────────────────────────────────────────────────

// stringList collects a repeatable string flag.
type stringList []string

func (s *stringList) String() string     { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error { *s = append(*s, v); return nil }

func (a *app) cmdTx(args []string) {
	if len(args) < 1 {
		fatal("Usage: kardano-cli tx <build|inspect|verify> [flags]")
	}
	switch args[0] {
	case "build":
		a.cmdTxBuild(args[1:])
	case "inspect":
		a.cmdTxInspect(args[1:])
	case "verify":
		a.cmdTxVerify(args[1:])
	default:
		fatal("Unknown tx command: %s", args[0])
	}
}

func (a *app) cmdTxBuild(args []string) {
	var utxoArgs stringList
	fs := flag.NewFlagSet("tx build", flag.ExitOnError)
	fs.Var(&utxoArgs, "utxo", "Spendable output as txid#index:lovelace (repeatable)")
	to := fs.String("to", "", "Recipient address or address book name")
	amountStr := fs.String("amount", "", "Amount in ADA")
	change := fs.String("change", "", "Change address")
	ttl := fs.Uint64("ttl", 0, "Slot after which the transaction is invalid (0 = none)")
	fs.Parse(args)

	if len(utxoArgs) == 0 || *to == "" || *amountStr == "" {
		fatal("Usage: kardano-cli tx build --utxo <txid#i:amount>... --to <addr|name> --amount <ADA> [--change <addr>] [--ttl n]")
	}

	params, err := config.LoadProtocolParams(a.cfg.ProtocolFile)
	if err != nil {
		fatal("%v", err)
	}
	amount, err := config.ParseAmount(*amountStr)
	if err != nil {
		fatal("invalid amount: %v", err)
	}
	if amount < params.MinOutput {
		fatal("amount %s is below the minimum output of %s ADA",
			config.FormatAmount(amount), config.FormatAmount(params.MinOutput))
	}

	utxos := make([]wallet.UTXO, 0, len(utxoArgs))
	for _, s := range utxoArgs {
		u, err := wallet.ParseUTXO(s)
		if err != nil {
			fatal("%v", err)
		}
		utxos = append(utxos, u)
	}

	recipient := *to
	changeAddr := *change
	if a.cfg.Book.Enabled {
		b, closeBook := a.openBook()
		recipient, err = b.Resolve(*to)
		if err == nil && changeAddr != "" {
			changeAddr, err = b.Resolve(changeAddr)
		}
		closeBook()
		if err != nil {
			fatal("%v", err)
		}
	}

	c := tx.NewCodec()
	t, err := wallet.BuildPayment(c, wallet.PaymentRequest{
		UTXOs:     utxos,
		To:        recipient,
		Amount:    amount,
		Change:    changeAddr,
		MinOutput: params.MinOutput,
		TTL:       *ttl,
		Fees:      params.FeeParams(),
	})
	if err != nil {
		fatal("build payment: %v", err)
	}

	raw, err := c.Encode(t)
	if err != nil {
		fatal("encode tx: %v", err)
	}
	if len(raw) > params.MaxTxSize {
		fatal("transaction is %d bytes, limit is %d", len(raw), params.MaxTxSize)
	}
	out, err := c.EncodeHex(t)
	if err != nil {
		fatal("encode tx: %v", err)
	}
	fmt.Printf("Fee: %s ADA\n", config.FormatAmount(t.Body.Fee))
	fmt.Println(out)
}

type txView struct {
	ID        string         `json:"id"`
	Inputs    []string       `json:"inputs"`
	Outputs   []txOutputView `json:"outputs"`
	Fee       string         `json:"fee"`
	TTL       uint64         `json:"ttl,omitempty"`
	Witnesses int            `json:"witnesses"`
	Valid     bool           `json:"valid"`
}

type txOutputView struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

func (a *app) decodeTxArg(args []string, cmd string) (*tx.Codec, *tx.Transaction) {
	if len(args) != 1 {
		fatal("Usage: kardano-cli tx %s <cbor hex>", cmd)
	}
	c := tx.NewCodec()
	t, err := c.DecodeHex(strings.TrimSpace(args[0]))
	if err != nil {
		fatal("decode tx: %v", err)
	}
	return c, t
}

func (a *app) cmdTxInspect(args []string) {
	c, t := a.decodeTxArg(args, "inspect")
	id, err := c.ID(t)
	if err != nil {
		fatal("tx id: %v", err)
	}

	v := txView{
		ID:        id.String(),
		Fee:       config.FormatAmount(t.Body.Fee),
		TTL:       t.Body.TTL,
		Witnesses: len(t.Witnesses.VKeys),
		Valid:     t.Valid,
	}
	for _, in := range t.Body.Inputs {
		v.Inputs = append(v.Inputs, fmt.Sprintf("%s#%d", in.TxID, in.Index))
	}
	for _, out := range t.Body.Outputs {
		addr, err := out.AddressString(a.network)
		if err != nil {
			fatal("output address: %v", err)
		}
		v.Outputs = append(v.Outputs, txOutputView{Address: addr, Amount: config.FormatAmount(out.Amount)})
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatal("encode: %v", err)
	}
	fmt.Println(string(data))
}

func (a *app) cmdTxVerify(args []string) {
	c, t := a.decodeTxArg(args, "verify")
	if err := c.VerifyWitnesses(t); err != nil {
		fatal("%v", err)
	}
	fmt.Printf("%d witness(es) valid.\n", len(t.Witnesses.VKeys))
}
