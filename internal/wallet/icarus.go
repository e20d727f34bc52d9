package wallet

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/Klingon-tech/kardano/pkg/codec"
	"github.com/Klingon-tech/kardano/pkg/crypto"
	"github.com/Klingon-tech/kardano/pkg/types"
	"golang.org/x/crypto/pbkdf2"
)

// CIP-1852 path constants for the Ed25519 engine.
// Full path: m/1852'/1815'/account'/role/index
const (
	HardenedOffset uint32 = 0x80000000

	PurposeCIP1852 uint32 = 1852
	CoinTypeADA    uint32 = 1815

	RoleExternal uint32 = 0
	RoleInternal uint32 = 1
	RoleStake    uint32 = 2
)

// Extended key sizes.
const (
	XPrvSize = 96
	XPubSize = 64

	icarusIterations = 4096
)

// Bech32 prefixes for extended keys.
const (
	XPrvHRP = "xprv"
	XPubHRP = "xpub"
)

// ErrHardenedPublic is returned when a public key is asked for a hardened child.
var ErrHardenedPublic = errors.New("hardened derivation requires a private key")

// Harden returns the hardened form of index.
func Harden(index uint32) uint32 {
	return index | HardenedOffset
}

// XPrv is a BIP32-Ed25519 extended private key: kL || kR || chain code.
type XPrv struct {
	kl, kr, chain [32]byte
}

// XPub is an extended public key: A || chain code.
type XPub struct {
	pub, chain [32]byte
}

// NewIcarusMaster derives the root key from mnemonic entropy and an optional
// passphrase: PBKDF2-HMAC-SHA512(passphrase, entropy, 4096, 96), clamped.
func NewIcarusMaster(mnemonic, passphrase string) (*XPrv, error) {
	entropy, err := MnemonicEntropy(mnemonic)
	if err != nil {
		return nil, err
	}
	raw := pbkdf2.Key([]byte(passphrase), entropy, icarusIterations, XPrvSize, sha512.New)
	raw[0] &= 0xf8
	raw[31] &= 0x1f
	raw[31] |= 0x40

	var k XPrv
	copy(k.kl[:], raw[:32])
	copy(k.kr[:], raw[32:64])
	copy(k.chain[:], raw[64:])
	zero(raw)
	zero(entropy)
	return &k, nil
}

// ParseXPrv decodes a Bech32 xprv string.
func ParseXPrv(s string) (*XPrv, error) {
	hrp, data, err := codec.Bech32Decode(s)
	if err != nil {
		return nil, fmt.Errorf("parse xprv: %w", err)
	}
	if hrp != XPrvHRP {
		return nil, fmt.Errorf("parse xprv: unexpected prefix %q", hrp)
	}
	return XPrvFromBytes(data)
}

// XPrvFromBytes builds a key from its 96-byte serialization.
func XPrvFromBytes(b []byte) (*XPrv, error) {
	if len(b) != XPrvSize {
		return nil, fmt.Errorf("extended private key must be %d bytes, got %d", XPrvSize, len(b))
	}
	if b[0]&0x07 != 0 || b[31]&0x80 != 0 {
		return nil, fmt.Errorf("extended private key is not clamped")
	}
	var k XPrv
	copy(k.kl[:], b[:32])
	copy(k.kr[:], b[32:64])
	copy(k.chain[:], b[64:])
	return &k, nil
}

// Bytes returns kL || kR || chain code.
func (k *XPrv) Bytes() []byte {
	out := make([]byte, 0, XPrvSize)
	out = append(out, k.kl[:]...)
	out = append(out, k.kr[:]...)
	return append(out, k.chain[:]...)
}

// SecretBytes returns the 64-byte extended secret kL || kR.
func (k *XPrv) SecretBytes() []byte {
	out := make([]byte, 0, 64)
	out = append(out, k.kl[:]...)
	return append(out, k.kr[:]...)
}

// String returns the Bech32 xprv encoding.
func (k *XPrv) String() string {
	s, err := codec.Bech32Encode(XPrvHRP, k.Bytes())
	if err != nil {
		// 96 non-empty bytes under a fixed prefix always encode.
		panic(err)
	}
	return s
}

// Zero clears the key material.
func (k *XPrv) Zero() {
	zero(k.kl[:])
	zero(k.kr[:])
	zero(k.chain[:])
}

func (k *XPrv) scalar() *edwards25519.Scalar {
	var wide [64]byte
	copy(wide[:], k.kl[:])
	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		panic(err) // input is always 64 bytes
	}
	return s
}

// PublicKey returns the 32-byte Ed25519 public key A = kL·B.
func (k *XPrv) PublicKey() []byte {
	return new(edwards25519.Point).ScalarBaseMult(k.scalar()).Bytes()
}

// Public returns the extended public key.
func (k *XPrv) Public() *XPub {
	var p XPub
	copy(p.pub[:], k.PublicKey())
	p.chain = k.chain
	return &p
}

// KeyHash is BLAKE2b-224 of the public key.
func (k *XPrv) KeyHash() types.KeyHash {
	return crypto.KeyHash(k.PublicKey())
}

// Derive returns the child key at index. Indices at or above HardenedOffset
// derive hardened children.
func (k *XPrv) Derive(index uint32) *XPrv {
	var idx [4]byte
	binary.LittleEndian.PutUint32(idx[:], index)

	zMac := hmac.New(sha512.New, k.chain[:])
	cMac := hmac.New(sha512.New, k.chain[:])
	if index >= HardenedOffset {
		zMac.Write([]byte{0x00})
		zMac.Write(k.kl[:])
		zMac.Write(k.kr[:])
		cMac.Write([]byte{0x01})
		cMac.Write(k.kl[:])
		cMac.Write(k.kr[:])
	} else {
		pub := k.PublicKey()
		zMac.Write([]byte{0x02})
		zMac.Write(pub)
		cMac.Write([]byte{0x03})
		cMac.Write(pub)
	}
	zMac.Write(idx[:])
	cMac.Write(idx[:])
	z := zMac.Sum(nil)
	c := cMac.Sum(nil)

	var child XPrv
	child.kl = add28Mul8(k.kl, z[:32])
	child.kr = add256(k.kr, z[32:])
	copy(child.chain[:], c[32:])
	zero(z)
	return &child
}

// DerivePath derives along a sequence of indices.
func (k *XPrv) DerivePath(indices ...uint32) *XPrv {
	current := k
	for _, idx := range indices {
		current = current.Derive(idx)
	}
	return current
}

// Sign produces an Ed25519 signature of msg with the extended secret. The
// nonce comes from kR, so the signature verifies with crypto/ed25519 against
// PublicKey.
func (k *XPrv) Sign(msg []byte) []byte {
	a := k.scalar()
	pub := new(edwards25519.Point).ScalarBaseMult(a).Bytes()

	h := sha512.New()
	h.Write(k.kr[:])
	h.Write(msg)
	r, _ := edwards25519.NewScalar().SetUniformBytes(h.Sum(nil))
	R := new(edwards25519.Point).ScalarBaseMult(r).Bytes()

	h.Reset()
	h.Write(R)
	h.Write(pub)
	h.Write(msg)
	c, _ := edwards25519.NewScalar().SetUniformBytes(h.Sum(nil))

	s := edwards25519.NewScalar().MultiplyAdd(c, a, r)

	sig := make([]byte, 0, crypto.Ed25519SignatureSize)
	sig = append(sig, R...)
	return append(sig, s.Bytes()...)
}

// ParseXPub decodes a Bech32 xpub string.
func ParseXPub(s string) (*XPub, error) {
	hrp, data, err := codec.Bech32Decode(s)
	if err != nil {
		return nil, fmt.Errorf("parse xpub: %w", err)
	}
	if hrp != XPubHRP {
		return nil, fmt.Errorf("parse xpub: unexpected prefix %q", hrp)
	}
	if len(data) != XPubSize {
		return nil, fmt.Errorf("extended public key must be %d bytes, got %d", XPubSize, len(data))
	}
	if _, err := new(edwards25519.Point).SetBytes(data[:32]); err != nil {
		return nil, fmt.Errorf("parse xpub: %w", err)
	}
	var p XPub
	copy(p.pub[:], data[:32])
	copy(p.chain[:], data[32:])
	return &p, nil
}

// PublicKey returns the 32-byte Ed25519 public key.
func (p *XPub) PublicKey() []byte {
	return append([]byte(nil), p.pub[:]...)
}

// KeyHash is BLAKE2b-224 of the public key.
func (p *XPub) KeyHash() types.KeyHash {
	return crypto.KeyHash(p.pub[:])
}

// String returns the Bech32 xpub encoding.
func (p *XPub) String() string {
	data := make([]byte, 0, XPubSize)
	data = append(data, p.pub[:]...)
	data = append(data, p.chain[:]...)
	s, err := codec.Bech32Encode(XPubHRP, data)
	if err != nil {
		panic(err)
	}
	return s
}

// DerivePublicChild derives a soft child: A' = A + (8·ZL)·B.
func (p *XPub) DerivePublicChild(index uint32) (*XPub, error) {
	if index >= HardenedOffset {
		return nil, ErrHardenedPublic
	}
	var idx [4]byte
	binary.LittleEndian.PutUint32(idx[:], index)

	zMac := hmac.New(sha512.New, p.chain[:])
	zMac.Write([]byte{0x02})
	zMac.Write(p.pub[:])
	zMac.Write(idx[:])
	z := zMac.Sum(nil)

	cMac := hmac.New(sha512.New, p.chain[:])
	cMac.Write([]byte{0x03})
	cMac.Write(p.pub[:])
	cMac.Write(idx[:])
	c := cMac.Sum(nil)

	var zero32 [32]byte
	tweak := add28Mul8(zero32, z[:32])
	var wide [64]byte
	copy(wide[:], tweak[:])
	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		return nil, err
	}
	A, err := new(edwards25519.Point).SetBytes(p.pub[:])
	if err != nil {
		return nil, fmt.Errorf("parent public key: %w", err)
	}
	childA := new(edwards25519.Point).Add(A, new(edwards25519.Point).ScalarBaseMult(s))

	var child XPub
	copy(child.pub[:], childA.Bytes())
	copy(child.chain[:], c[32:])
	return &child, nil
}

// add28Mul8 returns x + 8·y[:28] over little-endian 256-bit integers.
func add28Mul8(x [32]byte, y []byte) [32]byte {
	var out [32]byte
	var carry uint16
	for i := 0; i < 28; i++ {
		r := uint16(x[i]) + uint16(y[i])<<3 + carry
		out[i] = byte(r)
		carry = r >> 8
	}
	for i := 28; i < 32; i++ {
		r := uint16(x[i]) + carry
		out[i] = byte(r)
		carry = r >> 8
	}
	return out
}

// add256 returns x + y mod 2^256 over little-endian integers.
func add256(x [32]byte, y []byte) [32]byte {
	var out [32]byte
	var carry uint16
	for i := 0; i < 32; i++ {
		r := uint16(x[i]) + uint16(y[i]) + carry
		out[i] = byte(r)
		carry = r >> 8
	}
	return out
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
