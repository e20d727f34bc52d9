package wallet

import (
	"fmt"

	klog "github.com/Klingon-tech/kardano/internal/log"
	"github.com/Klingon-tech/kardano/pkg/tx"
)

const maxFeeRounds = 8

// PaymentRequest describes a simple payment funded from known UTXOs.
type PaymentRequest struct {
	UTXOs  []UTXO
	To     string
	Amount uint64
	// Change receives the remainder. Required unless the remainder is zero
	// or folded into the fee.
	Change string
	// MinOutput is the smallest output the ledger accepts. A remainder
	// below it is added to the fee instead of paid as change.
	MinOutput uint64
	TTL       uint64
	Fees      tx.FeeParams
}

// BuildPayment selects inputs, sizes the fee for one vkey witness and returns
// the unsigned transaction. The fee is raised until it covers the encoded size.
// Change below req.MinOutput is folded into the fee.
func BuildPayment(c *tx.Codec, req PaymentRequest) (*tx.Transaction, error) {
	if req.Amount == 0 {
		return nil, fmt.Errorf("payment amount must be positive")
	}
	fee := req.Fees.B
	for round := 0; round < maxFeeRounds; round++ {
		sel, err := SelectCoins(req.UTXOs, req.Amount+fee)
		if err != nil {
			return nil, err
		}

		change, txFee := sel.Change, fee
		if change > 0 && change < req.MinOutput {
			txFee += change
			change = 0
		}

		b := tx.NewBuilder().SetFee(txFee).SetTTL(req.TTL)
		for _, in := range sel.Inputs {
			b.AddInput(in.TxID, in.Index)
		}
		b.AddOutput(req.To, req.Amount)
		if change > 0 {
			if req.Change == "" {
				return nil, fmt.Errorf("selection leaves %d lovelace change but no change address was given", change)
			}
			b.AddOutput(req.Change, change)
		}
		t, err := b.Build()
		if err != nil {
			return nil, err
		}

		minFee, err := c.MinFee(t, req.Fees, 1)
		if err != nil {
			return nil, err
		}
		if minFee <= txFee {
			klog.Wallet.Debug().
				Int("inputs", len(sel.Inputs)).
				Uint64("fee", txFee).
				Uint64("change", change).
				Uint64("folded", txFee-fee).
				Msg("Payment built")
			return t, nil
		}
		fee = minFee
	}
	return nil, fmt.Errorf("fee did not converge after %d rounds", maxFeeRounds)
}
