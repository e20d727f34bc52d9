package codec

import (
	"bytes"
	"strings"
	"testing"
)

func TestBech32_Roundtrip(t *testing.T) {
	data := []byte{0x8f, 0x3a, 0x44, 0xb8, 0x05, 0x6c, 0xaf, 0xec, 0x36, 0x8d,
		0xea, 0x0c, 0xbe, 0x0a, 0xd1, 0xd9, 0xbc, 0x3f, 0x43, 0x05}

	encoded, err := Bech32Encode("addr", data)
	if err != nil {
		t.Fatalf("Bech32Encode: %v", err)
	}

	hrp, decoded, err := Bech32Decode(encoded)
	if err != nil {
		t.Fatalf("Bech32Decode: %v", err)
	}

	if hrp != "addr" {
		t.Errorf("HRP = %q, want %q", hrp, "addr")
	}
	if !bytes.Equal(decoded, data) {
		t.Errorf("decoded = %x, want %x", decoded, data)
	}
}

func TestBech32_LongPayload(t *testing.T) {
	// Base addresses are 57 bytes, well past the BIP-173 90 character limit.
	data := make([]byte, 57)
	for i := range data {
		data[i] = byte(255 - i)
	}
	encoded, err := Bech32Encode("addr_test", data)
	if err != nil {
		t.Fatalf("Bech32Encode: %v", err)
	}
	if len(encoded) <= 90 {
		t.Fatalf("encoded length = %d, expected > 90", len(encoded))
	}
	_, decoded, err := Bech32Decode(encoded)
	if err != nil {
		t.Fatalf("Bech32Decode: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Errorf("decoded = %x, want %x", decoded, data)
	}
}

func TestBech32Decode_BIP173Valid(t *testing.T) {
	vectors := []string{
		"A12UEL5L",
		"a12uel5l",
		"abcdef1qpzry9x8gf2tvdw0s3jn54khce6mua7lmqqqxw",
		"split1checkupstagehandshakeupstreamerranterredcaperred2y9e3w",
		"?1ezyfcl",
	}
	for _, v := range vectors {
		hrp, words, err := Bech32DecodeWords(v)
		if err != nil {
			t.Errorf("Bech32DecodeWords(%q) error: %v", v, err)
			continue
		}
		reencoded, err := Bech32EncodeWords(hrp, words)
		if err != nil {
			t.Errorf("Bech32EncodeWords(%q) error: %v", hrp, err)
			continue
		}
		if reencoded != strings.ToLower(v) {
			t.Errorf("re-encoded %q, want %q", reencoded, strings.ToLower(v))
		}
	}
}

func TestBech32Decode_BIP173Invalid(t *testing.T) {
	vectors := []struct {
		name string
		in   string
	}{
		{"HRP character out of range", "\x201nwldj5"},
		{"no separator", "pzry9x0s0muk"},
		{"empty HRP", "1pzry9x0s0muk"},
		{"invalid data character", "x1b4n0q5v"},
		{"too short checksum", "li1dgmt3"},
		{"invalid character in checksum", "de1lg7wt\xff"},
		{"checksum over uppercase HRP", "A1G7SGD8"},
		{"empty HRP short", "10a06t8"},
		{"empty HRP only checksum", "1qzzfhee"},
	}
	for _, tt := range vectors {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Bech32DecodeWords(tt.in); err == nil {
				t.Errorf("Bech32DecodeWords(%q) should fail", tt.in)
			}
		})
	}
}

func TestBech32Decode_InvalidChecksum(t *testing.T) {
	data := make([]byte, 28)
	encoded, err := Bech32Encode("addr", data)
	if err != nil {
		t.Fatalf("Bech32Encode: %v", err)
	}

	// Corrupt last character.
	corrupted := encoded[:len(encoded)-1] + "q"
	if corrupted == encoded {
		corrupted = encoded[:len(encoded)-1] + "p"
	}

	_, _, err = Bech32Decode(corrupted)
	if err == nil {
		t.Error("expected error for invalid checksum")
	}
}

func TestBech32Decode_MixedCase(t *testing.T) {
	data := make([]byte, 20)
	encoded, err := Bech32Encode("addr", data)
	if err != nil {
		t.Fatalf("Bech32Encode: %v", err)
	}

	mixed := "ADDR" + encoded[4:]
	_, _, err = Bech32Decode(mixed)
	if err == nil {
		t.Error("expected error for mixed case")
	}
}

func TestBech32Encode_EmptyHRP(t *testing.T) {
	_, err := Bech32Encode("", []byte{0x01})
	if err == nil {
		t.Error("expected error for empty HRP")
	}
}

func TestBech32EncodeWords_RejectsWideWord(t *testing.T) {
	_, err := Bech32EncodeWords("addr", []byte{1, 32})
	if err == nil {
		t.Error("expected error for word > 31")
	}
}

func TestBech32Decode_Empty(t *testing.T) {
	_, _, err := Bech32Decode("")
	if err == nil {
		t.Error("expected error for empty string")
	}
}

func TestBech32_DifferentHRPs(t *testing.T) {
	data := []byte{0xab, 0xcd, 0xef, 0x01, 0x23, 0x45, 0x67, 0x89, 0x00, 0x11,
		0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb}

	enc1, err := Bech32Encode("addr", data)
	if err != nil {
		t.Fatalf("Bech32Encode addr: %v", err)
	}
	enc2, err := Bech32Encode("addr_test", data)
	if err != nil {
		t.Fatalf("Bech32Encode addr_test: %v", err)
	}

	if enc1 == enc2 {
		t.Error("different HRPs should produce different encodings")
	}

	hrp1, dec1, err := Bech32Decode(enc1)
	if err != nil {
		t.Fatalf("decode addr: %v", err)
	}
	hrp2, dec2, err := Bech32Decode(enc2)
	if err != nil {
		t.Fatalf("decode addr_test: %v", err)
	}

	if hrp1 != "addr" || hrp2 != "addr_test" {
		t.Errorf("hrps: got %q and %q", hrp1, hrp2)
	}
	if !bytes.Equal(dec1, data) || !bytes.Equal(dec2, data) {
		t.Error("decoded data mismatch")
	}
}
