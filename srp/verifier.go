package srp

import (
	"crypto/sha256"
	"math/big"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// VerifierRecord is the (salt, verifier) pair produced at registration
// time. The caller stores this alongside the identity I; it never stores
// the password itself.
type VerifierRecord struct {
	Salt     []byte
	Verifier *big.Int
}

// CreateVerifier runs the registration-time routine: derive x from (I, P,
// salt) and compute v = g^x mod N. saltByteLen optionally overrides the
// generated salt's length (see Routines.GenerateRandomSalt).
func CreateVerifier(r *Routines, I, P string, saltByteLen ...int) (*VerifierRecord, error) {
	if strings.TrimSpace(I) == "" {
		return nil, newErr(KindBadArgument, "srp: identity must not be empty")
	}
	if P == "" {
		return nil, newErr(KindBadArgument, "srp: password must not be empty")
	}

	s, err := r.GenerateRandomSalt(saltByteLen...)
	if err != nil {
		return nil, err
	}
	if len(s) == 0 {
		return nil, newErr(KindBadArgument, "srp: generated salt is empty")
	}

	x := r.PrivateKey(s, I, P)
	v, err := r.VerifierValue(x)
	if err != nil {
		return nil, err
	}

	return &VerifierRecord{Salt: s, Verifier: v}, nil
}

// pbkdf2Iterations, pbkdf2KeyLen match the parameters posterity-srp uses
// for its PBKDF2-backed KDF (100000 iterations, 32-byte key).
const (
	pbkdf2Iterations = 100000
	pbkdf2KeyLen     = 32
)

// StretchPassword is a StretchFunc that runs the password (salted by the
// identity, in lieu of a per-user salt which isn't available at the point
// Stretch is called) through PBKDF2-HMAC-SHA256 before SRP's own x
// derivation hashes it. This hardens against offline dictionary attacks on
// a captured verifier when the underlying password is weak; it is not
// required by RFC 5054 and is off by default (Routines.Stretch is nil).
func StretchPassword(I, P string) string {
	key := pbkdf2.Key([]byte(P), []byte(I), pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
	return string(key)
}
