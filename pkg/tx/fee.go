package tx

import "fmt"

// FeeParams are the linear fee coefficients: fee = A*size + B.
type FeeParams struct {
	A uint64
	B uint64
}

// MainnetFeeParams are the long-standing mainnet coefficients.
var MainnetFeeParams = FeeParams{A: 44, B: 155381}

// Fee returns the fee for a transaction of size bytes.
func (p FeeParams) Fee(size int) uint64 {
	return p.A*uint64(size) + p.B
}

// MinFee returns the fee for t once it carries witnesses vkey witnesses.
// Missing witnesses are sized with zero-filled placeholders.
func (c *Codec) MinFee(t *Transaction, p FeeParams, witnesses int) (uint64, error) {
	if t == nil {
		return 0, ErrNilTransaction
	}
	sized := *t
	sized.Witnesses.VKeys = append([]VKeyWitness(nil), t.Witnesses.VKeys...)
	for len(sized.Witnesses.VKeys) < witnesses {
		sized.Witnesses.VKeys = append(sized.Witnesses.VKeys, VKeyWitness{
			VKey:      make([]byte, 32),
			Signature: make([]byte, 64),
		})
	}
	b, err := c.Encode(&sized)
	if err != nil {
		return 0, fmt.Errorf("size tx: %w", err)
	}
	return p.Fee(len(b)), nil
}
