// derive_key.go prints the public key and enterprise address for a key file.
// The file holds either a Bech32 "xprv" extended key or a hex secp256k1 key.
// Usage: go run scripts/derive_key.go [--network preprod] <keyfile>
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Klingon-tech/kardano/internal/wallet"
	"github.com/Klingon-tech/kardano/pkg/codec"
	"github.com/Klingon-tech/kardano/pkg/crypto"
	"github.com/Klingon-tech/kardano/pkg/types"
)

func main() {
	networkName := flag.String("network", "mainnet", "mainnet, testnet, preprod or preview")
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: derive_key [--network <net>] <keyfile>")
		os.Exit(1)
	}
	network, err := types.NetworkByName(*networkName)
	if err != nil {
		fail(err)
	}
	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fail(err)
	}
	keyText := strings.TrimSpace(string(data))

	var (
		pub  []byte
		hash types.KeyHash
	)
	if strings.HasPrefix(keyText, wallet.XPrvHRP+"1") {
		key, err := wallet.ParseXPrv(keyText)
		if err != nil {
			fail(err)
		}
		pub, hash = key.PublicKey(), key.KeyHash()
	} else {
		keyBytes, err := hex.DecodeString(keyText)
		if err != nil {
			fail(err)
		}
		key, err := crypto.PrivateKeyFromBytes(keyBytes)
		if err != nil {
			fail(err)
		}
		pub = key.PublicKey()
		hash = crypto.Hash224(pub)
	}

	addr, err := codec.BytesToBech32WithHRP(network.AddressHRP(), types.EnterpriseAddressBytes(network.NetworkID, hash))
	if err != nil {
		fail(err)
	}
	fmt.Printf("pubkey=%s\n", hex.EncodeToString(pub))
	fmt.Printf("address=%s\n", addr)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
