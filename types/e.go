package types

import "github.com/go-asn1/uper/lib/per"

// EInner is the innermost CHOICE of Scenario E: "CHOICE of CHOICE of
// BOOLEAN". It declares a single alternative, C, because the fixture never
// exercises a second one; per the CHOICE selector rule (4.9, built on the
// same range-1 case as constrained INTEGER in 4.2), a one-alternative
// CHOICE's selector contributes zero bits, so this is the only declaration
// consistent with the pinned single-bit payload in Scenario E without
// inventing an unexercised sibling alternative.
type EInner struct {
	C bool
}

func (v EInner) encode(enc *per.Encoder) error {
	if err := enc.EncodeChoiceIndex(0, 1); err != nil {
		return err
	}
	return enc.EncodeBoolean(v.C)
}

func (v *EInner) decode(dec *per.Decoder) error {
	if _, err := dec.DecodeChoiceIndex(1); err != nil {
		return err
	}
	b, err := dec.DecodeBoolean()
	if err != nil {
		return err
	}
	v.C = b
	return nil
}

// E is the outer CHOICE of Scenario E, likewise a single declared
// alternative A wrapping EInner.
type E struct {
	A EInner
}

// NewE returns the all-zero default value of E.
func NewE() E {
	return E{}
}

// Encode writes e into buf, returning the number of bytes written.
func (e E) Encode(buf []byte) (int, error) {
	enc := per.NewEncoderBuffer(false, len(buf))
	if err := e.encode(enc); err != nil {
		return 0, err
	}
	n := enc.Len()
	copy(buf, enc.Bytes())
	return n, nil
}

func (e E) encode(enc *per.Encoder) error {
	if err := enc.EncodeChoiceIndex(0, 1); err != nil {
		return err
	}
	return e.A.encode(enc)
}

// DecodeE decodes an E from the leading bytes of buf, returning the value
// and the number of bytes consumed.
func DecodeE(buf []byte) (E, int, error) {
	dec := per.NewDecoder(buf, false)
	var e E
	if _, err := dec.DecodeChoiceIndex(1); err != nil {
		return E{}, 0, err
	}
	if err := e.A.decode(dec); err != nil {
		return E{}, 0, err
	}
	return e, dec.Len(), nil
}
