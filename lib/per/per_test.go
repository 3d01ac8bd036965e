package per

import (
	"bytes"
	"errors"
	"testing"
)

func TestConstrainedWholeNumberRoundTrip(t *testing.T) {
	cases := []struct {
		lb, ub, n int64
	}{
		{0, 7, 3},
		{-128, 127, -1},
		{1, 1, 1},
		{0, 255, 255},
	}
	for _, tc := range cases {
		enc := NewEncoderBuffer(false, 8)
		if err := enc.EncodeConstrainedWholeNumber(tc.lb, tc.ub, tc.n); err != nil {
			t.Fatalf("Encode(%d,%d,%d): %v", tc.lb, tc.ub, tc.n, err)
		}
		dec := NewDecoder(enc.Bytes(), false)
		got, err := dec.DecodeConstrainedWholeNumber(tc.lb, tc.ub)
		if err != nil {
			t.Fatalf("Decode(%d,%d): %v", tc.lb, tc.ub, err)
		}
		if got != tc.n {
			t.Fatalf("round trip %d..%d: got %d, want %d", tc.lb, tc.ub, got, tc.n)
		}
	}
}

func TestLengthDeterminantFragmentation(t *testing.T) {
	value := make([]byte, 70000)
	for i := range value {
		value[i] = byte(i)
	}
	enc := NewEncoderBuffer(false, 1<<20)
	if err := enc.EncodeOctetStringFragments(value, nil, nil); err != nil {
		t.Fatalf("EncodeOctetStringFragments: %v", err)
	}
	dec := NewDecoder(enc.Bytes(), false)
	got, err := dec.DecodeOctetStringFragments(nil, nil)
	if err != nil {
		t.Fatalf("DecodeOctetStringFragments: %v", err)
	}
	if !bytes.Equal(got, value) {
		t.Fatalf("fragmented round trip mismatch: got %d bytes, want %d", len(got), len(value))
	}
}

func TestPresenceBitmapRoundTrip(t *testing.T) {
	present := []bool{true, false, true, true, false}
	enc := NewEncoderBuffer(false, 8)
	if err := enc.EncodePresenceBitmap(present); err != nil {
		t.Fatalf("EncodePresenceBitmap: %v", err)
	}
	dec := NewDecoder(enc.Bytes(), false)
	got, err := dec.DecodePresenceBitmap(len(present))
	if err != nil {
		t.Fatalf("DecodePresenceBitmap: %v", err)
	}
	for i := range present {
		if got[i] != present[i] {
			t.Fatalf("bit %d: got %v, want %v", i, got[i], present[i])
		}
	}
}

func TestChoiceIndexBadChoice(t *testing.T) {
	// A declared count of 3 (non-power-of-two) selects a 2-bit field
	// (range 0..2), so the wire value 3 (bits "11") is representable but
	// out of range. A power-of-two count (e.g. 4) would make every 2-bit
	// pattern valid and ErrBadChoice unreachable.
	dec := NewDecoder([]byte{0xC0}, false)
	if _, err := dec.DecodeChoiceIndex(3); !errors.Is(err, ErrBadChoice) {
		t.Fatalf("DecodeChoiceIndex: got %v, want ErrBadChoice", err)
	}
}

func TestEnumeratedBadEnum(t *testing.T) {
	enc := NewEncoderBuffer(false, 8)
	// Index 3 of a 4-variant enum is written as the 2-bit pattern "11";
	// read back against 3 variants (also a 2-bit index), 3 is out of range.
	if err := enc.EncodeEnumerated(3, 4, false); err != nil {
		t.Fatalf("EncodeEnumerated: %v", err)
	}
	dec := NewDecoder(enc.Bytes(), false)
	if _, err := dec.DecodeEnumerated(3, false); !errors.Is(err, ErrBadEnum) {
		t.Fatalf("DecodeEnumerated: got %v, want ErrBadEnum", err)
	}
}

func TestCapacityStrictness(t *testing.T) {
	enc := NewEncoderBuffer(false, 1)
	lb, ub := uint64(0), uint64(255)
	if _, err := enc.EncodeLengthDeterminant(0, &lb, &ub); err != nil {
		t.Fatalf("EncodeLengthDeterminant: %v", err)
	}
	if err := enc.EncodeOctetString([]byte{1, 2}, nil, nil, false); !errors.Is(err, ErrOutOfMemory) {
		t.Fatalf("EncodeOctetString past capacity: got %v, want ErrOutOfMemory", err)
	}
}

func TestTruncationStrictness(t *testing.T) {
	enc := NewEncoderBuffer(false, 8)
	if err := enc.EncodeFullRangeSignedInteger(32, -12345); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	full := enc.Bytes()
	dec := NewDecoder(full[:len(full)-1], false)
	if _, err := dec.DecodeFullRangeSignedInteger(32); !errors.Is(err, ErrOutOfData) {
		t.Fatalf("Decode truncated input: got %v, want ErrOutOfData", err)
	}
}

func TestUnconstrainedWholeNumberRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 1, -1, 127, -128, 70000, -70000} {
		enc := NewEncoderBuffer(false, 32)
		if err := enc.EncodeUnconstrainedWholeNumber(n); err != nil {
			t.Fatalf("Encode(%d): %v", n, err)
		}
		dec := NewDecoder(enc.Bytes(), false)
		got, err := dec.DecodeUnconstrainedWholeNumber()
		if err != nil {
			t.Fatalf("Decode(%d): %v", n, err)
		}
		if got != n {
			t.Fatalf("round trip %d: got %d", n, got)
		}
	}
}
