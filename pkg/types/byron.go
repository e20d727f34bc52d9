package types

import (
	"fmt"
	"hash/crc32"

	"github.com/fxamacker/cbor/v2"
)

// cborTagEncoded is the CBOR tag for embedded CBOR data items.
const cborTagEncoded = 24

// byronEnvelope is the outer structure of a Byron address: the tagged inner
// payload followed by its CRC32.
type byronEnvelope struct {
	_       struct{} `cbor:",toarray"`
	Payload cbor.RawTag
	CRC     uint32
}

// NewByronEnvelope wraps an inner CBOR payload into a Byron address envelope.
func NewByronEnvelope(payload []byte) ([]byte, error) {
	inner, err := cbor.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode byron payload: %w", err)
	}
	env := byronEnvelope{
		Payload: cbor.RawTag{Number: cborTagEncoded, Content: inner},
		CRC:     crc32.ChecksumIEEE(payload),
	}
	out, err := cbor.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode byron envelope: %w", err)
	}
	return out, nil
}

// OpenByronEnvelope verifies a Byron address envelope and returns the inner
// payload.
func OpenByronEnvelope(b []byte) ([]byte, error) {
	var env byronEnvelope
	if err := cbor.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("decode byron envelope: %w", err)
	}
	if env.Payload.Number != cborTagEncoded {
		return nil, fmt.Errorf("byron envelope: unexpected tag %d", env.Payload.Number)
	}
	var payload []byte
	if err := cbor.Unmarshal(env.Payload.Content, &payload); err != nil {
		return nil, fmt.Errorf("byron envelope payload: %w", err)
	}
	if crc := crc32.ChecksumIEEE(payload); crc != env.CRC {
		return nil, fmt.Errorf("byron envelope: crc mismatch (got %08x, want %08x)", crc, env.CRC)
	}
	return payload, nil
}
