package wallet

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Klingon-tech/kardano/pkg/types"
)

// Coin selection errors.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNoUTXOs           = errors.New("no UTXOs available")
)

// UTXO is an unspent output the wallet can spend.
type UTXO struct {
	TxID   types.Hash
	Index  uint32
	Amount uint64
}

// ParseUTXO parses "txid#index:amount".
func ParseUTXO(s string) (UTXO, error) {
	ref, amount, ok := strings.Cut(s, ":")
	if !ok {
		return UTXO{}, fmt.Errorf("utxo %q: want txid#index:amount", s)
	}
	id, idx, ok := strings.Cut(ref, "#")
	if !ok {
		return UTXO{}, fmt.Errorf("utxo %q: want txid#index:amount", s)
	}
	txID, err := types.HexToHash(id)
	if err != nil {
		return UTXO{}, fmt.Errorf("utxo %q: %w", s, err)
	}
	index, err := strconv.ParseUint(idx, 10, 32)
	if err != nil {
		return UTXO{}, fmt.Errorf("utxo %q: index: %w", s, err)
	}
	value, err := strconv.ParseUint(amount, 10, 64)
	if err != nil {
		return UTXO{}, fmt.Errorf("utxo %q: amount: %w", s, err)
	}
	return UTXO{TxID: txID, Index: uint32(index), Amount: value}, nil
}

// String formats the UTXO as "txid#index:amount".
func (u UTXO) String() string {
	return fmt.Sprintf("%s#%d:%d", u.TxID, u.Index, u.Amount)
}

// CoinSelection holds the result of coin selection.
type CoinSelection struct {
	Inputs []UTXO
	Total  uint64
	Change uint64
}

// SelectCoins picks UTXOs covering target. It compares the smallest single
// UTXO that covers the target against largest-first accumulation and keeps
// whichever leaves less change.
func SelectCoins(utxos []UTXO, target uint64) (*CoinSelection, error) {
	if target == 0 {
		return nil, fmt.Errorf("target must be positive")
	}
	candidates := make([]UTXO, 0, len(utxos))
	var available uint64
	for _, u := range utxos {
		if u.Amount > 0 {
			candidates = append(candidates, u)
			available += u.Amount
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoUTXOs
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Amount < candidates[j].Amount
	})

	var best *CoinSelection
	for _, u := range candidates {
		if u.Amount >= target {
			best = &CoinSelection{Inputs: []UTXO{u}, Total: u.Amount, Change: u.Amount - target}
			break
		}
	}

	var picked []UTXO
	var total uint64
	for i := len(candidates) - 1; i >= 0; i-- {
		picked = append(picked, candidates[i])
		total += candidates[i].Amount
		if total < target {
			continue
		}
		if best == nil || total-target < best.Change {
			best = &CoinSelection{Inputs: picked, Total: total, Change: total - target}
		}
		break
	}

	if best == nil {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientFunds, available, target)
	}
	return best, nil
}
