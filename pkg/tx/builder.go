package tx

import (
	"fmt"

	"github.com/Klingon-tech/kardano/pkg/types"
)

// Builder constructs transactions incrementally. The first error sticks and is
// reported by Build.
type Builder struct {
	tx  *Transaction
	err error
}

// NewBuilder creates a new transaction builder.
func NewBuilder() *Builder {
	return &Builder{tx: New()}
}

// AddInput spends output index of transaction txID.
func (b *Builder) AddInput(txID types.Hash, index uint32) *Builder {
	b.tx.Body.Inputs = append(b.tx.Body.Inputs, Input{TxID: txID, Index: index})
	return b
}

// AddOutput pays amount to a textual address.
func (b *Builder) AddOutput(address string, amount uint64) *Builder {
	if b.err != nil {
		return b
	}
	out, err := NewOutput(address, amount)
	if err != nil {
		b.err = fmt.Errorf("output %d: %w", len(b.tx.Body.Outputs), err)
		return b
	}
	b.tx.Body.Outputs = append(b.tx.Body.Outputs, out)
	return b
}

// SetFee sets the declared fee.
func (b *Builder) SetFee(fee uint64) *Builder {
	b.tx.Body.Fee = fee
	return b
}

// SetTTL sets the slot after which the transaction is invalid.
func (b *Builder) SetTTL(slot uint64) *Builder {
	b.tx.Body.TTL = slot
	return b
}

// Build validates and returns the transaction.
func (b *Builder) Build() (*Transaction, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.tx.Validate(); err != nil {
		return nil, err
	}
	return b.tx, nil
}
