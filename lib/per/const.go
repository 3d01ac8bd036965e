package per

const (
	// MAX_CONSTRAINED_LENGTH is the exclusive limit on "ub" for which a length
	// determinant is encoded/decoded as a constrained whole number. At or beyond
	// this, it's unconstrained.
	// ITU-T X.691 Section 11.9.3.3 / 11.9.4.1
	MAX_CONSTRAINED_LENGTH = 65536 // 64K

	// FRAGMENT_SIZE is the size of each fragment for fragmented indefinite-length encoding.
	// Used when encoding/decoding unconstrained lengths of 16K or more.
	// ITU-T X.691 Section 11.9.4.2
	FRAGMENT_SIZE = 16384 // 16K = 16 * 1024
)
