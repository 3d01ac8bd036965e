package per

import (
	"errors"

	"github.com/go-asn1/uper/lib/bitbuffer"
)

// Errors returned by encode/decode operations. ErrOutOfMemory and
// ErrOutOfData are the bitbuffer cursor errors re-exported so callers of
// this package never need to import bitbuffer directly to check them with
// errors.Is. BadChoice, BadEnum, and BadLength are raised by the decode
// side once a value has been read off the wire and checked against its
// declared constraint; typed encoders also return BadChoice for a value
// whose selected alternative is not declared.
var (
	ErrOutOfMemory = bitbuffer.ErrOutOfMemory
	ErrOutOfData   = bitbuffer.ErrOutOfData
	ErrBadChoice   = errors.New("per: choice selector exceeds alternative count")
	ErrBadEnum     = errors.New("per: enumerated index exceeds variant count")
	ErrBadLength   = errors.New("per: length outside declared SIZE bounds")
)
