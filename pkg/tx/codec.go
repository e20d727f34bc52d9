package tx

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/Klingon-tech/kardano/pkg/crypto"
	"github.com/Klingon-tech/kardano/pkg/types"
	"github.com/fxamacker/cbor/v2"
)

// ErrNilTransaction is returned when a codec is handed no transaction.
var ErrNilTransaction = errors.New("nil transaction")

// Codec serializes transactions to deterministic CBOR.
type Codec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// NewCodec returns a codec using core deterministic encoding.
func NewCodec() *Codec {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("tx: cbor encoder: %v", err))
	}
	dec, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("tx: cbor decoder: %v", err))
	}
	return &Codec{enc: enc, dec: dec}
}

// BodyBytes returns the CBOR encoding of the transaction body.
func (c *Codec) BodyBytes(t *Transaction) ([]byte, error) {
	if t == nil {
		return nil, ErrNilTransaction
	}
	b, err := c.enc.Marshal(t.Body)
	if err != nil {
		return nil, fmt.Errorf("encode tx body: %w", err)
	}
	return b, nil
}

// SerializeToHex returns the hex CBOR of the body: the bytes a witness signs.
func (c *Codec) SerializeToHex(t *Transaction) (string, error) {
	b, err := c.BodyBytes(t)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// ID returns the BLAKE2b-256 hash of the encoded body.
func (c *Codec) ID(t *Transaction) (types.Hash, error) {
	b, err := c.BodyBytes(t)
	if err != nil {
		return types.Hash{}, err
	}
	return crypto.TxHash(b), nil
}

// Encode returns the CBOR of the full transaction, witnesses included.
func (c *Codec) Encode(t *Transaction) ([]byte, error) {
	if t == nil {
		return nil, ErrNilTransaction
	}
	b, err := c.enc.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encode tx: %w", err)
	}
	return b, nil
}

// EncodeHex is Encode followed by hex encoding.
func (c *Codec) EncodeHex(t *Transaction) (string, error) {
	b, err := c.Encode(t)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Decode parses a full transaction.
func (c *Codec) Decode(b []byte) (*Transaction, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("decode tx: empty input")
	}
	var t Transaction
	if err := c.dec.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("decode tx: %w", err)
	}
	return &t, nil
}

// DecodeHex parses a hex-encoded full transaction.
func (c *Codec) DecodeHex(s string) (*Transaction, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode tx hex: %w", err)
	}
	return c.Decode(b)
}
