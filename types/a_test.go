package types

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/go-asn1/uper/lib/per"
)

func scenarioA() A {
	a := NewA()
	a.A = -1
	a.B = -2
	a.C = -3
	a.D = -4
	a.E = 1
	a.F = 2
	a.G = 3
	a.H = 4
	a.I = true
	for i := range a.J {
		a.J[i] = 5
	}
	return a
}

func TestAEncodePinnedBytes(t *testing.T) {
	want, err := hex.DecodeString(
		"7f7ffe7ffffffd7ffffffffffffffc" +
			"010002000000030000000000000004" +
			"828282828282828282828280")
	if err != nil {
		t.Fatalf("bad test fixture hex: %v", err)
	}

	buf := make([]byte, 42)
	n, err := scenarioA().Encode(buf)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if n != 42 {
		t.Fatalf("Encode returned %d bytes, want 42", n)
	}
	if !bytes.Equal(buf, want) {
		t.Fatalf("Encode = %x, want %x", buf, want)
	}
}

func TestAEncodeOutOfMemory(t *testing.T) {
	buf := make([]byte, 41)
	_, err := scenarioA().Encode(buf)
	if !errors.Is(err, per.ErrOutOfMemory) {
		t.Fatalf("Encode into 41 bytes: got %v, want ErrOutOfMemory", err)
	}
}

func TestADecodeRoundTrip(t *testing.T) {
	buf := make([]byte, 42)
	if _, err := scenarioA().Encode(buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, n, err := DecodeA(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != 42 {
		t.Fatalf("Decode consumed %d bytes, want 42", n)
	}
	if got != scenarioA() {
		t.Fatalf("Decode = %+v, want %+v", got, scenarioA())
	}
}

func TestADecodeOutOfData(t *testing.T) {
	buf := make([]byte, 42)
	if _, err := scenarioA().Encode(buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	_, _, err := DecodeA(buf[:41])
	if !errors.Is(err, per.ErrOutOfData) {
		t.Fatalf("Decode of truncated input: got %v, want ErrOutOfData", err)
	}
}
