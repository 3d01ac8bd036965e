// Package types holds the generated-style typed message layer: one file per
// ASN.1 type, each composing lib/per primitives in declaration order. There
// is no schema compiler here — these routines are what such a compiler
// would emit for types A, B, D, and E.
package types

import "github.com/go-asn1/uper/lib/per"

// A is SEQUENCE A from the fixture schema: four signed fields of widths
// 8/16/32/64 bits spanning their full native range, four unsigned fields of
// the same widths, a BOOLEAN, and a fixed 11-byte OCTET STRING. The wide
// fields use the full-range constrained-integer special case (see
// per.EncodeFullRangeSignedInteger/EncodeFullRangeUnsignedInteger) since
// their range (2^64) doesn't fit the int64 lb/ub EncodeConstrainedWholeNumber
// takes — not the generic unconstrained-INTEGER length-prefixed form, and
// not raw two's complement (the pinned Scenario A bytes are the
// constrained-integer offset encoding, which for a symmetric signed range
// is two's complement with the sign bit flipped, not two's complement
// itself).
type A struct {
	A int8     `json:"a"`
	B int16    `json:"b"`
	C int32    `json:"c"`
	D int64    `json:"d"`
	E uint8    `json:"e"`
	F uint16   `json:"f"`
	G uint32   `json:"g"`
	H uint64   `json:"h"`
	I bool     `json:"i"`
	J [11]byte `json:"j"`
}

// NewA returns the all-zero default value of A.
func NewA() A {
	return A{}
}

const aSize = 42

// Encode writes a into buf, which must have capacity for at least aSize
// bytes, returning the number of bytes written.
func (a A) Encode(buf []byte) (int, error) {
	enc := per.NewEncoderBuffer(false, len(buf))
	if err := a.encode(enc); err != nil {
		return 0, err
	}
	n := enc.Len()
	copy(buf, enc.Bytes())
	return n, nil
}

func (a A) encode(enc *per.Encoder) error {
	if err := enc.EncodeFullRangeSignedInteger(8, int64(a.A)); err != nil {
		return err
	}
	if err := enc.EncodeFullRangeSignedInteger(16, int64(a.B)); err != nil {
		return err
	}
	if err := enc.EncodeFullRangeSignedInteger(32, int64(a.C)); err != nil {
		return err
	}
	if err := enc.EncodeFullRangeSignedInteger(64, a.D); err != nil {
		return err
	}
	if err := enc.EncodeFullRangeUnsignedInteger(8, uint64(a.E)); err != nil {
		return err
	}
	if err := enc.EncodeFullRangeUnsignedInteger(16, uint64(a.F)); err != nil {
		return err
	}
	if err := enc.EncodeFullRangeUnsignedInteger(32, uint64(a.G)); err != nil {
		return err
	}
	if err := enc.EncodeFullRangeUnsignedInteger(64, a.H); err != nil {
		return err
	}
	if err := enc.EncodeBoolean(a.I); err != nil {
		return err
	}
	size := uint64(len(a.J))
	return enc.EncodeOctetString(a.J[:], &size, &size, false)
}

// DecodeA decodes an A from the leading bytes of buf, returning the value
// and the number of bytes consumed.
func DecodeA(buf []byte) (A, int, error) {
	var a A
	dec := per.NewDecoder(buf, false)
	if err := a.decode(dec); err != nil {
		return A{}, 0, err
	}
	return a, dec.Len(), nil
}

func (a *A) decode(dec *per.Decoder) error {
	v8, err := dec.DecodeFullRangeSignedInteger(8)
	if err != nil {
		return err
	}
	a.A = int8(v8)

	v16, err := dec.DecodeFullRangeSignedInteger(16)
	if err != nil {
		return err
	}
	a.B = int16(v16)

	v32, err := dec.DecodeFullRangeSignedInteger(32)
	if err != nil {
		return err
	}
	a.C = int32(v32)

	v64, err := dec.DecodeFullRangeSignedInteger(64)
	if err != nil {
		return err
	}
	a.D = v64

	u8, err := dec.DecodeFullRangeUnsignedInteger(8)
	if err != nil {
		return err
	}
	a.E = uint8(u8)

	u16, err := dec.DecodeFullRangeUnsignedInteger(16)
	if err != nil {
		return err
	}
	a.F = uint16(u16)

	u32, err := dec.DecodeFullRangeUnsignedInteger(32)
	if err != nil {
		return err
	}
	a.G = uint32(u32)

	u64, err := dec.DecodeFullRangeUnsignedInteger(64)
	if err != nil {
		return err
	}
	a.H = u64

	i, err := dec.DecodeBoolean()
	if err != nil {
		return err
	}
	a.I = i

	size := uint64(len(a.J))
	j, err := dec.DecodeOctetString(&size, &size, false)
	if err != nil {
		return err
	}
	copy(a.J[:], j)
	return nil
}
