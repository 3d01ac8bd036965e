package per

// Presence bitmaps (19.2) and choice selectors (23.6) are shared shapes
// used by every generated SEQUENCE and CHOICE type. Generated code composes
// these with the field-level Encode*/Decode* primitives in declaration
// order; there is no generic reflection-driven SEQUENCE/CHOICE walker here,
// since the typed layer already knows its own field order at compile time.

// EncodePresenceBitmap writes one bit per OPTIONAL/DEFAULT field, in
// declaration order, ahead of the field payloads (19.2). The bitmap itself
// carries no length determinant: its width is fixed by the type definition.
func (e *Encoder) EncodePresenceBitmap(present []bool) error {
	for _, p := range present {
		value := uint64(0)
		if p {
			value = 1
		}
		if err := e.codec.Write(1, value); err != nil {
			return err
		}
	}
	return nil
}

// DecodePresenceBitmap reads n presence bits in declaration order.
func (d *Decoder) DecodePresenceBitmap(n int) ([]bool, error) {
	present := make([]bool, n)
	for i := range present {
		value, err := d.codec.Read(1)
		if err != nil {
			return nil, err
		}
		present[i] = value == 1
	}
	return present, nil
}

// EncodeChoiceIndex writes a CHOICE selector (23.6): the index of the
// chosen alternative, constrained to 0..count-1.
func (e *Encoder) EncodeChoiceIndex(index, count uint64) error {
	return e.EncodeConstrainedWholeNumber(0, int64(count-1), int64(index))
}

// DecodeChoiceIndex reads a CHOICE selector and validates it against the
// declared alternative count, returning ErrBadChoice if the wire index is
// out of range.
func (d *Decoder) DecodeChoiceIndex(count uint64) (uint64, error) {
	value, err := d.DecodeConstrainedWholeNumber(0, int64(count-1))
	if err != nil {
		return 0, err
	}
	if value < 0 || uint64(value) >= count {
		return 0, ErrBadChoice
	}
	return uint64(value), nil
}
