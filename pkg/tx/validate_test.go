package tx

import (
	"errors"
	"testing"

	"github.com/Klingon-tech/kardano/pkg/types"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(tx *Transaction)
		want   error
	}{
		{"valid", func(*Transaction) {}, nil},
		{"no inputs", func(tx *Transaction) { tx.Body.Inputs = nil }, ErrNoInputs},
		{"no outputs", func(tx *Transaction) { tx.Body.Outputs = nil }, ErrNoOutputs},
		{"duplicate input", func(tx *Transaction) {
			tx.Body.Inputs = append(tx.Body.Inputs, tx.Body.Inputs[0])
		}, ErrDuplicateInput},
		{"zero input id", func(tx *Transaction) { tx.Body.Inputs[0].TxID = types.Hash{} }, ErrZeroInputID},
		{"zero output", func(tx *Transaction) { tx.Body.Outputs[0].Amount = 0 }, ErrZeroOutput},
		{"bad address", func(tx *Transaction) { tx.Body.Outputs[0].Address = []byte{0x61, 0x00} }, ErrBadOutputAddress},
		{"too many inputs", func(tx *Transaction) {
			tx.Body.Inputs = make([]Input, MaxInputs+1)
			for i := range tx.Body.Inputs {
				tx.Body.Inputs[i] = Input{TxID: types.Hash{0x01}, Index: uint32(i)}
			}
		}, ErrTooManyInputs},
		{"overflow", func(tx *Transaction) {
			out := tx.Body.Outputs[0]
			out.Amount = ^uint64(0)
			tx.Body.Outputs = append(tx.Body.Outputs, out)
		}, ErrOutputOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := testTx(t)
			tt.mutate(tx)
			err := tx.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateAt(t *testing.T) {
	tx := testTx(t) // ttl 5000
	if err := tx.ValidateAt(4999); err != nil {
		t.Errorf("before ttl: %v", err)
	}
	if err := tx.ValidateAt(5000); !errors.Is(err, ErrExpiredTransaction) {
		t.Errorf("at ttl: expected ErrExpiredTransaction, got %v", err)
	}
	tx.Body.TTL = 0
	if err := tx.ValidateAt(1 << 40); err != nil {
		t.Errorf("zero ttl never expires: %v", err)
	}
}

func TestBuilder_StickyError(t *testing.T) {
	_, err := NewBuilder().
		AddInput(types.Hash{0x01}, 0).
		AddOutput("not an address", 1).
		AddOutput(testAddress(t, 1), 1).
		Build()
	if err == nil {
		t.Fatal("expected error")
	}
}
