package tx

import (
	"errors"
	"fmt"

	"github.com/Klingon-tech/kardano/pkg/types"
)

// Structural limits for transactions built here.
const (
	MaxInputs  = 256
	MaxOutputs = 256
)

// Validation errors.
var (
	ErrNoInputs           = errors.New("transaction has no inputs")
	ErrNoOutputs          = errors.New("transaction has no outputs")
	ErrDuplicateInput     = errors.New("duplicate input")
	ErrZeroInputID        = errors.New("input references the zero transaction id")
	ErrOutputOverflow     = errors.New("output amounts overflow")
	ErrZeroOutput         = errors.New("output amount is zero")
	ErrBadOutputAddress   = errors.New("invalid output address")
	ErrTooManyInputs      = errors.New("too many inputs")
	ErrTooManyOutputs     = errors.New("too many outputs")
	ErrMissingWitnesses   = errors.New("transaction has no witnesses")
	ErrExpiredTransaction = errors.New("transaction ttl has passed")
)

// Validate checks transaction structure. It does not look at witnesses.
func (t *Transaction) Validate() error {
	b := t.Body
	if len(b.Inputs) == 0 {
		return ErrNoInputs
	}
	if len(b.Outputs) == 0 {
		return ErrNoOutputs
	}
	if len(b.Inputs) > MaxInputs {
		return fmt.Errorf("%w: %d inputs, max %d", ErrTooManyInputs, len(b.Inputs), MaxInputs)
	}
	if len(b.Outputs) > MaxOutputs {
		return fmt.Errorf("%w: %d outputs, max %d", ErrTooManyOutputs, len(b.Outputs), MaxOutputs)
	}

	type ref struct {
		id  types.Hash
		idx uint32
	}
	seen := make(map[ref]bool, len(b.Inputs))
	for i, in := range b.Inputs {
		if in.TxID.IsZero() {
			return fmt.Errorf("input %d: %w", i, ErrZeroInputID)
		}
		r := ref{in.TxID, in.Index}
		if seen[r] {
			return fmt.Errorf("input %d: %w", i, ErrDuplicateInput)
		}
		seen[r] = true
	}

	for i, out := range b.Outputs {
		if out.Amount == 0 {
			return fmt.Errorf("output %d: %w", i, ErrZeroOutput)
		}
		if _, err := types.DescribeAddress(out.Address); err != nil {
			return fmt.Errorf("output %d: %w: %v", i, ErrBadOutputAddress, err)
		}
	}
	if _, err := t.TotalOutput(); err != nil {
		return err
	}
	return nil
}

// ValidateAt runs Validate and rejects a transaction whose TTL is at or
// before slot. A zero TTL means no expiry.
func (t *Transaction) ValidateAt(slot uint64) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.Body.TTL != 0 && t.Body.TTL <= slot {
		return fmt.Errorf("%w: ttl %d, slot %d", ErrExpiredTransaction, t.Body.TTL, slot)
	}
	return nil
}
