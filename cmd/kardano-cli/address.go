package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"strings"

	"github.com/Klingon-tech/kardano/pkg/account"
	"github.com/Klingon-tech/kardano/pkg/codec"
	"github.com/Klingon-tech/kardano/pkg/types"
)

func (a *app) cmdAddress(args []string) {
	if len(args) < 1 {
		fatal("Usage: kardano-cli address <decode|bech32|base58|inspect> <arg>")
	}
	switch args[0] {
	case "decode":
		raw := decodeAddressArg(args[1:], "decode")
		fmt.Println(hex.EncodeToString(raw))
	case "bech32":
		fs := flag.NewFlagSet("address bech32", flag.ExitOnError)
		hrp := fs.String("hrp", a.network.AddressHRP(), "Human-readable prefix")
		fs.Parse(args[1:])
		raw := hexArg(fs.Args(), "bech32")
		var (
			out string
			err error
		)
		if *hrp == codec.ShelleyHRP {
			out, err = account.BytesToBech32Address(raw)
		} else {
			out, err = codec.BytesToBech32WithHRP(*hrp, raw)
		}
		if err != nil {
			fatal("%v", err)
		}
		fmt.Println(out)
	case "base58":
		raw := hexArg(args[1:], "base58")
		out, err := account.BytesToBase58Address(raw)
		if err != nil {
			fatal("%v", err)
		}
		fmt.Println(out)
	case "inspect":
		a.cmdAddressInspect(args[1:])
	default:
		fatal("Unknown address command: %s", args[0])
	}
}

func decodeAddressArg(args []string, cmd string) []byte {
	if len(args) != 1 {
		fatal("Usage: kardano-cli address %s <address>", cmd)
	}
	raw, err := account.AddressToBytes(args[0])
	if err != nil {
		fatal("%v", err)
	}
	return raw
}

func hexArg(args []string, cmd string) []byte {
	if len(args) != 1 {
		fatal("Usage: kardano-cli address %s <hex bytes>", cmd)
	}
	raw, err := hex.DecodeString(strings.TrimPrefix(args[0], "0x"))
	if err != nil {
		fatal("invalid hex: %v", err)
	}
	return raw
}

func (a *app) cmdAddressInspect(args []string) {
	raw := decodeAddressArg(args, "inspect")
	info, err := types.DescribeAddress(raw)
	if err != nil {
		fatal("%v", err)
	}

	fmt.Printf("Encoding:     %s\n", codec.Classify(args[0]))
	fmt.Printf("Type:         %s\n", info.Type)
	fmt.Printf("Header:       0x%02x\n", raw[0])
	if info.Type != types.TypeByron {
		fmt.Printf("Network ID:   %d", info.NetworkID)
		if info.NetworkID == types.MainnetNetworkID {
			fmt.Print(" (mainnet)")
		} else {
			fmt.Print(" (test network)")
		}
		fmt.Println()
	}
	if len(info.PaymentHash) > 0 {
		fmt.Printf("Payment hash: %s\n", hex.EncodeToString(info.PaymentHash))
	}
	if len(info.StakeHash) > 0 {
		fmt.Printf("Stake hash:   %s\n", hex.EncodeToString(info.StakeHash))
	}
	fmt.Printf("Length:       %d bytes\n", len(raw))
}
