package tx

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/Klingon-tech/kardano/pkg/crypto"
)

// ErrBadSignature is returned when a witness does not verify.
var ErrBadSignature = errors.New("witness signature does not verify")

// Signer produces a signature over a hex payload with a key whose public half
// it exposes.
type Signer interface {
	Sign(payloadHex string) (string, error)
	PublicKeyBytes() ([]byte, bool)
}

// Witness signs the body of t and attaches the resulting vkey witness.
func Witness(s Signer, c *Codec, t *Transaction) error {
	pub, ok := s.PublicKeyBytes()
	if !ok {
		return fmt.Errorf("%w: signer has no public key", ErrInvalidWitness)
	}
	body, err := c.SerializeToHex(t)
	if err != nil {
		return err
	}
	sig, err := s.Sign(body)
	if err != nil {
		return fmt.Errorf("sign tx body: %w", err)
	}
	return t.AddVKeyWitness(pub, sig)
}

// VerifyWitnesses checks every vkey witness against the body. 32-byte keys are
// Ed25519 over the BLAKE2b-256 body hash; 33-byte keys are Schnorr over the
// BLAKE3 body hash. A transaction without witnesses fails.
func (c *Codec) VerifyWitnesses(t *Transaction) error {
	body, err := c.BodyBytes(t)
	if err != nil {
		return err
	}
	if len(t.Witnesses.VKeys) == 0 {
		return ErrMissingWitnesses
	}
	for i, w := range t.Witnesses.VKeys {
		var ok bool
		switch len(w.VKey) {
		case crypto.Ed25519PublicKeySize:
			id := crypto.TxHash(body)
			ok = crypto.VerifyEd25519(w.VKey, id[:], w.Signature)
		case crypto.CompressedPubKeySize:
			digest := crypto.Hash(body)
			ok = crypto.VerifySignature(digest[:], w.Signature, w.VKey)
		default:
			return fmt.Errorf("witness %d: %w: vkey length %d", i, ErrInvalidWitness, len(w.VKey))
		}
		if !ok {
			return fmt.Errorf("witness %d (%s): %w", i, hex.EncodeToString(w.VKey), ErrBadSignature)
		}
	}
	return nil
}
