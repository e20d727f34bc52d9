package codec

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

func sampleAddressBytes() []byte {
	b := make([]byte, 29)
	b[0] = 0x61
	for i := 1; i < len(b); i++ {
		b[i] = byte(i * 7)
	}
	return b
}

func TestClassify(t *testing.T) {
	tests := []struct {
		in   string
		want Encoding
	}{
		{"addr1vxyz", EncodingBech32},
		{"addr_test1vxyz", EncodingBech32},
		{"Ae2tdPwUPEZ", EncodingBase58},
		{"DdzFF", EncodingBase58},
		{"stake1u", EncodingBase58},
		{"ADDR1VX", EncodingBase58},
	}
	for _, tt := range tests {
		if got := Classify(tt.in); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestToBytes_Bech32Roundtrip(t *testing.T) {
	data := sampleAddressBytes()
	addr, err := BytesToBech32(data)
	if err != nil {
		t.Fatalf("BytesToBech32: %v", err)
	}
	if !strings.HasPrefix(addr, "addr1") {
		t.Errorf("address %q should start with addr1", addr)
	}
	got, err := ToBytes(addr)
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("ToBytes = %x, want %x", got, data)
	}
}

func TestToBytes_Base58Roundtrip(t *testing.T) {
	data := sampleAddressBytes()
	addr, err := BytesToBase58(data)
	if err != nil {
		t.Fatalf("BytesToBase58: %v", err)
	}
	got, err := ToBytes(addr)
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("ToBytes = %x, want %x", got, data)
	}
}

func TestToBytes_TestnetHRP(t *testing.T) {
	data := sampleAddressBytes()
	addr, err := BytesToBech32WithHRP("addr_test", data)
	if err != nil {
		t.Fatalf("BytesToBech32WithHRP: %v", err)
	}
	got, err := ToBytes(addr)
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("ToBytes = %x, want %x", got, data)
	}
}

func TestToBytes_InvalidChecksumDoesNotFallBack(t *testing.T) {
	addr, err := BytesToBech32(sampleAddressBytes())
	if err != nil {
		t.Fatalf("BytesToBech32: %v", err)
	}
	last := addr[len(addr)-1]
	repl := byte('q')
	if last == 'q' {
		repl = 'p'
	}
	corrupted := addr[:len(addr)-1] + string(repl)

	_, err = ToBytes(corrupted)
	if !errors.Is(err, ErrAddress) {
		t.Fatalf("ToBytes error = %v, want ErrAddress", err)
	}
	if !strings.Contains(err.Error(), "bech32") {
		t.Errorf("error %q should come from the bech32 decoder", err)
	}
}

func TestToBytes_BitWidthViolation(t *testing.T) {
	// A single trailing word is a leftover group as wide as its source width.
	addr, err := Bech32EncodeWords("addr", []byte{31})
	if err != nil {
		t.Fatalf("Bech32EncodeWords: %v", err)
	}
	_, err = ToBytes(addr)
	if !errors.Is(err, ErrAddress) {
		t.Errorf("error = %v, want ErrAddress", err)
	}
	if !errors.Is(err, ErrEncoding) {
		t.Errorf("error = %v, want ErrEncoding in chain", err)
	}
}

func TestToBytes_EmptyPayload(t *testing.T) {
	addr, err := Bech32EncodeWords("addr", nil)
	if err != nil {
		t.Fatalf("Bech32EncodeWords: %v", err)
	}
	if _, err := ToBytes(addr); !errors.Is(err, ErrAddress) {
		t.Errorf("ToBytes(%q) error = %v, want ErrAddress", addr, err)
	}
}

func TestToBytes_Invalid(t *testing.T) {
	for _, s := range []string{"", "0OIl", "addr", "addr1", "not an address"} {
		if _, err := ToBytes(s); !errors.Is(err, ErrAddress) {
			t.Errorf("ToBytes(%q) error = %v, want ErrAddress", s, err)
		}
	}
}

func TestBytesToAddress_Empty(t *testing.T) {
	if _, err := BytesToBech32([]byte{}); !errors.Is(err, ErrAddress) {
		t.Errorf("BytesToBech32(empty) error = %v, want ErrAddress", err)
	}
	if _, err := BytesToBase58([]byte{}); !errors.Is(err, ErrAddress) {
		t.Errorf("BytesToBase58(empty) error = %v, want ErrAddress", err)
	}
	if _, err := BytesToBech32(nil); !errors.Is(err, ErrAddress) {
		t.Errorf("BytesToBech32(nil) error = %v, want ErrAddress", err)
	}
}

func TestBytesToBech32_CIP19(t *testing.T) {
	const (
		pay   = "9493315cd92eb5d8c4304e67b7e16ae36d61d34502694657811a2c8e"
		stake = "337b62cfff6403a06a3acbc34f8c46003c69fe79a3628cefa9c47251"
	)
	tests := []struct {
		hrp, payload, want string
	}{
		{"addr", "01" + pay + stake, "addr1qx2fxv2umyhttkxyxp8x0dlpdt3k6cwng5pxj3jhsydzer3n0d3vllmyqwsx5wktcd8cc3sq835lu7drv2xwl2wywfgse35a3x"},
		{"addr", "61" + pay, "addr1vx2fxv2umyhttkxyxp8x0dlpdt3k6cwng5pxj3jhsydzers66hrl8"},
		{"addr_test", "00" + pay + stake, "addr_test1qz2fxv2umyhttkxyxp8x0dlpdt3k6cwng5pxj3jhsydzer3n0d3vllmyqwsx5wktcd8cc3sq835lu7drv2xwl2wywfgs68faae"},
		{"addr_test", "60" + pay, "addr_test1vz2fxv2umyhttkxyxp8x0dlpdt3k6cwng5pxj3jhsydzerspjrlsz"},
	}
	for _, tt := range tests {
		raw, _ := hex.DecodeString(tt.payload)
		got, err := BytesToBech32WithHRP(tt.hrp, raw)
		if err != nil {
			t.Fatalf("BytesToBech32WithHRP: %v", err)
		}
		if got != tt.want {
			t.Errorf("got %s, want %s", got, tt.want)
		}
		back, err := ToBytes(tt.want)
		if err != nil {
			t.Fatalf("ToBytes(%s): %v", tt.want, err)
		}
		if !bytes.Equal(back, raw) {
			t.Errorf("ToBytes(%s) = %x", tt.want, back)
		}
	}
}
