// Package tx defines a Cardano-shaped transaction and its CBOR codec.
package tx

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/Klingon-tech/kardano/pkg/codec"
	"github.com/Klingon-tech/kardano/pkg/types"
	"github.com/fxamacker/cbor/v2"
)

var (
	// ErrInvalidWitness is returned for malformed witness material.
	ErrInvalidWitness = errors.New("invalid witness")
	// ErrMalformedTx is returned for a transaction array of the wrong shape.
	ErrMalformedTx = errors.New("malformed transaction")
)

// Transaction is encoded as [body, witness_set, is_valid, auxiliary_data].
// The three element pre-Alonzo form [body, witness_set, auxiliary_data] is
// accepted on decode and re-encodes with is_valid set.
type Transaction struct {
	_             struct{} `cbor:",toarray"`
	Body          Body
	Witnesses     WitnessSet
	Valid         bool
	AuxiliaryData cbor.RawMessage
}

type alonzoTx Transaction

type shelleyTx struct {
	_             struct{} `cbor:",toarray"`
	Body          Body
	Witnesses     WitnessSet
	AuxiliaryData cbor.RawMessage
}

// UnmarshalCBOR decodes either transaction array shape.
func (t *Transaction) UnmarshalCBOR(data []byte) error {
	var items []cbor.RawMessage
	if err := cbor.Unmarshal(data, &items); err != nil {
		return err
	}
	switch len(items) {
	case 4:
		var a alonzoTx
		if err := cbor.Unmarshal(data, &a); err != nil {
			return err
		}
		*t = Transaction(a)
	case 3:
		var s shelleyTx
		if err := cbor.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Transaction{Body: s.Body, Witnesses: s.Witnesses, Valid: true, AuxiliaryData: s.AuxiliaryData}
	default:
		return fmt.Errorf("%w: array of %d elements", ErrMalformedTx, len(items))
	}
	return nil
}

// Body is the signable part of a transaction.
type Body struct {
	Inputs  []Input  `cbor:"0,keyasint"`
	Outputs []Output `cbor:"1,keyasint"`
	Fee     uint64   `cbor:"2,keyasint"`
	TTL     uint64   `cbor:"3,keyasint,omitempty"`
}

// Input references an output of a previous transaction.
type Input struct {
	_     struct{} `cbor:",toarray"`
	TxID  types.Hash
	Index uint32
}

// Output pays Amount lovelace to raw address bytes.
type Output struct {
	_       struct{} `cbor:",toarray"`
	Address []byte
	Amount  uint64
}

// WitnessSet holds the signatures attached to a transaction.
type WitnessSet struct {
	VKeys []VKeyWitness `cbor:"0,keyasint,omitempty"`
}

// VKeyWitness pairs a verification key with its signature over the body hash.
type VKeyWitness struct {
	_         struct{} `cbor:",toarray"`
	VKey      []byte
	Signature []byte
}

// New returns an empty, valid transaction.
func New() *Transaction {
	return &Transaction{Valid: true}
}

// NewOutput builds an output paying amount to a textual address.
func NewOutput(address string, amount uint64) (Output, error) {
	raw, err := codec.ToBytes(address)
	if err != nil {
		return Output{}, err
	}
	return Output{Address: raw, Amount: amount}, nil
}

// AddressString renders the output address in its display encoding: Bech32
// for Shelley headers, Base58 for Byron.
func (o Output) AddressString(network types.Network) (string, error) {
	if len(o.Address) == 0 {
		return "", fmt.Errorf("%w: empty output address", codec.ErrAddress)
	}
	if t, _ := types.ParseHeader(o.Address[0]); t == types.TypeByron {
		return codec.BytesToBase58(o.Address)
	}
	return codec.BytesToBech32WithHRP(network.AddressHRP(), o.Address)
}

// AddVKeyWitness attaches a signature for vkey. A witness for a key that is
// already present is ignored.
func (t *Transaction) AddVKeyWitness(vkey []byte, signatureHex string) error {
	if len(vkey) == 0 {
		return fmt.Errorf("%w: empty verification key", ErrInvalidWitness)
	}
	sig, err := hex.DecodeString(signatureHex)
	if err != nil {
		return fmt.Errorf("%w: signature hex: %v", ErrInvalidWitness, err)
	}
	if len(sig) == 0 {
		return fmt.Errorf("%w: empty signature", ErrInvalidWitness)
	}
	for _, w := range t.Witnesses.VKeys {
		if bytes.Equal(w.VKey, vkey) {
			return nil
		}
	}
	t.Witnesses.VKeys = append(t.Witnesses.VKeys, VKeyWitness{
		VKey:      append([]byte(nil), vkey...),
		Signature: sig,
	})
	return nil
}

// TotalOutput returns the sum of all output amounts.
func (t *Transaction) TotalOutput() (uint64, error) {
	var total uint64
	for i, out := range t.Body.Outputs {
		if total+out.Amount < total {
			return 0, fmt.Errorf("output %d: %w", i, ErrOutputOverflow)
		}
		total += out.Amount
	}
	return total, nil
}
