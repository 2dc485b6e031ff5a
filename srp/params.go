package srp

import (
	"crypto"
	_ "crypto/sha1"   // register crypto.SHA1
	_ "crypto/sha256" // register crypto.SHA256
	_ "crypto/sha512" // register crypto.SHA384, crypto.SHA512

	_ "golang.org/x/crypto/blake2b" // register crypto.BLAKE2b_256
)

// BLAKE2b256 selects the BLAKE2b-256 hash as H. It is not one of the four
// mandatory hashes (SHA-1/256/384/512), but it is the hash the reference
// implementation this package descends from used for its own H(), and
// crypto.Hash's registration mechanism makes it free to keep around as
// one more selectable option.
const BLAKE2b256 = crypto.BLAKE2b_256

// Parameters is an immutable configuration binding a Group and a hash
// function. It is safe for concurrent use by any number of Routines,
// Client and Server sessions.
type Parameters struct {
	Group *Group
	Hash  crypto.Hash

	// NBytes is ceil(bitlen(N)/8), the length every PAD() operation
	// pads to.
	NBytes int
}

// NewParameters builds a Parameters from an explicit group and hash. Both
// must be usable: hash must have been linked into the binary (registered
// via its package's init, as this package does for SHA-1/256/384/512 and
// BLAKE2b-256) and group must have a non-nil N and G.
func NewParameters(group *Group, hash crypto.Hash) (*Parameters, error) {
	if group == nil || group.N == nil || group.G == nil {
		return nil, newErr(KindBadArgument, "srp: group is incomplete")
	}
	if !hash.Available() {
		return nil, newErr(KindBadArgument, "srp: hash function %v is not linked into the binary", hash)
	}

	return &Parameters{
		Group:  group,
		Hash:   hash,
		NBytes: group.Bytes(),
	}, nil
}

// DefaultParameters returns the mandatory default: the 2048-bit RFC 5054
// group with SHA-512.
func DefaultParameters() *Parameters {
	p, err := NewParameters(DefaultGroup(), crypto.SHA512)
	if err != nil {
		// DefaultGroup and SHA-512 are both always valid; this
		// cannot happen.
		panic(err)
	}
	return p
}

// NewParametersForBits is a convenience constructor selecting one of the
// seven RFC 5054 groups by bit size.
func NewParametersForBits(bits int, hash crypto.Hash) (*Parameters, error) {
	g, err := GroupForBits(bits)
	if err != nil {
		return nil, err
	}
	return NewParameters(g, hash)
}
