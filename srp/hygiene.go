package srp

import (
	"crypto/subtle"
	"math/big"
)

// zeroBytes overwrites b in place. Best-effort memory hygiene for secrets
// that are no longer needed: the Go runtime offers no guarantee against a
// copying GC having moved earlier copies, but this still removes the
// value from the one buffer the caller controls.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// constantTimeEqualBigInt compares two big.Ints for equality without
// short-circuiting on the first differing byte; evidence comparisons on
// both sides must run in constant time. Both values are left-padded to
// the longer of the two encodings before comparison so the byte lengths
// always match.
func constantTimeEqualBigInt(a, b *big.Int) bool {
	n := len(a.Bytes())
	if m := len(b.Bytes()); m > n {
		n = m
	}
	return subtle.ConstantTimeCompare(pad(a, n), pad(b, n)) == 1
}
