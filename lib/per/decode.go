package per

import (
	"github.com/go-asn1/uper/lib/bitbuffer"
)

// Decoder represents a PER decoder
type Decoder struct {
	codec   *bitbuffer.Codec
	aligned bool
}

// NewDecoder creates a new PER decoder from encoded data
// aligned: true for APER, false for UPER
func NewDecoder(data []byte, aligned bool) *Decoder {
	return &Decoder{
		codec:   bitbuffer.CreateReader(data),
		aligned: aligned,
	}
}

// Len reports the number of whole bytes consumed so far, i.e. ceil(bits/8).
func (d *Decoder) Len() int {
	return (int(d.codec.NumRead()) + 7) / 8
}

// DecodeConstrainedWholeNumber is the decode mirror of
// Encoder.EncodeConstrainedWholeNumber (11.5): it reads back (n - lb) and
// adds lb. See encode.go for the clause-by-clause derivation; the ALIGNED
// branches below undo the corresponding encode branches bit for bit.
func (d *Decoder) DecodeConstrainedWholeNumber(lb, ub int64) (int64, error) {
	vr := ub - lb + 1
	if vr == 1 {
		return lb, nil
	}

	if !d.aligned {
		bits := BitsNonNegativeBinaryInteger(uint64(vr - 1))
		value, err := d.codec.Read(uint8(bits))
		if err != nil {
			return 0, err
		}
		return lb + int64(value), nil
	}

	if vr <= 0xFF {
		var bits int
		switch {
		case vr == 0x02:
			bits = 1
		case vr >= 0x03 && vr <= 0x04:
			bits = 2
		case vr >= 0x05 && vr <= 0x08:
			bits = 3
		case vr >= 0x09 && vr <= 0x10:
			bits = 4
		case vr >= 0x11 && vr <= 0x20:
			bits = 5
		case vr >= 0x21 && vr <= 0x40:
			bits = 6
		case vr >= 0x41 && vr <= 0x80:
			bits = 7
		case vr >= 0x81 && vr <= 0xFF:
			bits = 8
		}
		value, err := d.codec.Read(uint8(bits))
		if err != nil {
			return 0, err
		}
		return lb + int64(value), nil
	}
	if vr == 0x100 {
		if err := d.codec.Advance(); err != nil {
			return 0, err
		}
		value, err := d.codec.Read(8)
		if err != nil {
			return 0, err
		}
		return lb + int64(value), nil
	}
	if vr >= 0x101 && vr <= 0x10000 {
		if err := d.codec.Advance(); err != nil {
			return 0, err
		}
		value, err := d.codec.Read(16)
		if err != nil {
			return 0, err
		}
		return lb + int64(value), nil
	}

	octetsRange := OctetsNonNegativeBinaryIntegerLength(uint64(ub - lb))
	lbRange := uint64(1)
	ubRange := uint64(octetsRange)
	octets, _, err := d.DecodeLengthDeterminant(&lbRange, &ubRange)
	if err != nil {
		return 0, err
	}
	if err := d.codec.Advance(); err != nil {
		return 0, err
	}
	value, err := d.codec.Read(uint8(octets * 8))
	if err != nil {
		return 0, err
	}
	return lb + int64(value), nil
}

// DecodeNormallySmallNonNegativeWholeNumber is the decode mirror of
// Encoder.EncodeNormallySmallNonNegativeWholeNumber (11.6).
func (d *Decoder) DecodeNormallySmallNonNegativeWholeNumber() (uint64, error) {
	extended, err := d.codec.Read(1)
	if err != nil {
		return 0, err
	}
	if extended == 0 {
		return d.codec.Read(6)
	}
	v, err := d.DecodeSemiConstrainedWholeNumber(0)
	return uint64(v), err
}

// DecodeSemiConstrainedWholeNumber is the decode mirror of
// Encoder.EncodeSemiConstrainedWholeNumber (11.7).
func (d *Decoder) DecodeSemiConstrainedWholeNumber(lb int64) (int64, error) {
	if d.aligned {
		if err := d.codec.Advance(); err != nil {
			return 0, err
		}
	}
	octets, _, err := d.DecodeLengthDeterminant(nil, nil)
	if err != nil {
		return 0, err
	}
	value, err := d.codec.Read(uint8(octets * 8))
	if err != nil {
		return 0, err
	}
	return lb + int64(value), nil
}

// DecodeUnconstrainedWholeNumber is the decode mirror of
// Encoder.EncodeUnconstrainedWholeNumber (11.8): reads a length-prefixed
// 2's-complement integer of the minimum number of octets.
func (d *Decoder) DecodeUnconstrainedWholeNumber() (int64, error) {
	if d.aligned {
		if err := d.codec.Advance(); err != nil {
			return 0, err
		}
	}
	octets, _, err := d.DecodeLengthDeterminant(nil, nil)
	if err != nil {
		return 0, err
	}
	bits := uint8(octets * 8)
	raw, err := d.codec.Read(bits)
	if err != nil {
		return 0, err
	}
	// Sign-extend from `bits` bits.
	shift := 64 - bits
	return int64(raw<<shift) >> shift, nil
}

// DecodeLengthDeterminant is the decode mirror of
// Encoder.EncodeLengthDeterminant (11.9). The second return value reports
// whether the length decoded is a fragment prefix (i.e. more fragments of
// FRAGMENT_SIZE-aligned data follow), mirroring the "pending" value the
// encoder threads through EncodeOctetStringFragments. A constrained length
// read off the wire above "ub" fails with ErrBadLength.
func (d *Decoder) DecodeLengthDeterminant(lb, ub *uint64) (uint64, bool, error) {
	if ub != nil && lb != nil && *ub < MAX_CONSTRAINED_LENGTH {
		n, err := d.DecodeConstrainedWholeNumber(int64(*lb), int64(*ub))
		if err != nil {
			return 0, false, err
		}
		if uint64(n) > *ub {
			return 0, false, ErrBadLength
		}
		return uint64(n), false, nil
	}
	return d.DecodeUnconstrainedLength()
}

// DecodeUnconstrainedLength is the decode mirror of
// Encoder.EncodeUnconstrainedLength (11.9.3.6-11.9.3.8.4).
func (d *Decoder) DecodeUnconstrainedLength() (uint64, bool, error) {
	if d.aligned {
		if err := d.codec.Advance(); err != nil {
			return 0, false, err
		}
	}

	first, err := d.codec.Read(8)
	if err != nil {
		return 0, false, err
	}

	if first&0x80 == 0 {
		// 11.9.3.6: bit 8 = 0, n <= 127 in bits 7..1.
		return first, false, nil
	}
	if first&0x40 == 0 {
		// 11.9.3.7: bit 8 = 1, bit 7 = 0, two-octet form.
		second, err := d.codec.Read(8)
		if err != nil {
			return 0, false, err
		}
		n := ((first & 0x3F) << 8) | second
		return n, false, nil
	}
	// 11.9.3.8: bits 8,7 = 1,1. Bits 6..1 encode a fragment count 1-4.
	k := first & 0x3F
	return k * FRAGMENT_SIZE, true, nil
}

// DecodeNormallySmallLength is the decode mirror of
// Encoder.EncodeNormallySmallLength (11.9.3.4).
func (d *Decoder) DecodeNormallySmallLength() (uint64, error) {
	extended, err := d.codec.Read(1)
	if err != nil {
		return 0, err
	}
	if extended == 0 {
		value, err := d.codec.Read(6)
		if err != nil {
			return 0, err
		}
		return value + 1, nil
	}
	n, _, err := d.DecodeUnconstrainedLength()
	return n, err
}

// DecodeBoolean is the decode mirror of Encoder.EncodeBoolean (12).
func (d *Decoder) DecodeBoolean() (bool, error) {
	value, err := d.codec.Read(1)
	if err != nil {
		return false, err
	}
	return value == 1, nil
}

// DecodeInteger is the decode mirror of Encoder.EncodeInteger (13).
func (d *Decoder) DecodeInteger(lb, ub *int64, extensible bool) (int64, error) {
	if extensible {
		extended, err := d.codec.Read(1)
		if err != nil {
			return 0, err
		}
		if extended == 1 {
			return d.DecodeUnconstrainedWholeNumber()
		}
	}

	if lb != nil && ub != nil && *lb == *ub {
		return *lb, nil
	}

	if lb != nil && ub != nil {
		return d.DecodeConstrainedWholeNumber(*lb, *ub)
	} else if lb != nil && ub == nil {
		return d.DecodeSemiConstrainedWholeNumber(*lb)
	}
	return d.DecodeUnconstrainedWholeNumber()
}

// DecodeEnumerated is the decode mirror of Encoder.EncodeEnumerated (14).
// It rejects indices at or beyond count with ErrBadEnum, the decoder-only
// well-formedness check that has no encode-side counterpart.
func (d *Decoder) DecodeEnumerated(count uint64, extensible bool) (uint64, error) {
	if extensible {
		extended, err := d.codec.Read(1)
		if err != nil {
			return 0, err
		}
		if extended == 1 {
			addition, err := d.DecodeNormallySmallNonNegativeWholeNumber()
			if err != nil {
				return 0, err
			}
			return count + addition, nil
		}
	}

	ub := int64(count - 1)
	value, err := d.DecodeConstrainedWholeNumber(0, ub)
	if err != nil {
		return 0, err
	}
	if value < 0 || uint64(value) >= count {
		return 0, ErrBadEnum
	}
	return uint64(value), nil
}

// DecodeOctetString is the decode mirror of Encoder.EncodeOctetString (17).
func (d *Decoder) DecodeOctetString(lb, ub *uint64, extensible bool) ([]byte, error) {
	if extensible {
		extended, err := d.codec.Read(1)
		if err != nil {
			return nil, err
		}
		if extended == 1 {
			zero := uint64(0)
			return d.DecodeOctetStringFragments(&zero, nil)
		}
	}

	if ub != nil && *ub == 0 {
		return nil, nil
	}

	if lb != nil && ub != nil && *lb == *ub && *ub <= 2 {
		return d.codec.ReadBytes(int(*ub))
	}

	if lb != nil && ub != nil && *lb == *ub && *ub < 65536 {
		if d.aligned {
			if err := d.codec.Advance(); err != nil {
				return nil, err
			}
		}
		return d.codec.ReadBytes(int(*ub))
	}

	return d.DecodeOctetStringFragments(lb, ub)
}

// DecodeOctetStringFragments is the decode mirror of
// Encoder.EncodeOctetStringFragments, reassembling fragments produced by
// 11.9.3.8 until a non-fragment length determinant is read.
func (d *Decoder) DecodeOctetStringFragments(lb, ub *uint64) ([]byte, error) {
	if d.aligned {
		if err := d.codec.Advance(); err != nil {
			return nil, err
		}
	}

	var value []byte
	for {
		n, more, err := d.DecodeLengthDeterminant(lb, ub)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			chunk, err := d.codec.ReadBytes(int(n))
			if err != nil {
				return nil, err
			}
			value = append(value, chunk...)
		}
		if !more {
			break
		}
	}
	return value, nil
}
