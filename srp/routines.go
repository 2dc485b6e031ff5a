package srp

import (
	"math/big"
)

// minPrivateValueBits is the minimum entropy, in bits, required of an
// ephemeral private value (a or b).
const minPrivateValueBits = 256

// minSaltBytes is the minimum salt length GenerateRandomSalt will use even
// if the hash's own output length is shorter.
const minSaltBytes = 16

// StretchFunc pre-hardens a password before it reaches SRP's own x
// derivation. It is optional: the zero value of Routines leaves passwords
// untouched, matching RFC 5054's x = H(s, H(I, ":", P)) exactly. See
// StretchPassword for the supplied PBKDF2-backed implementation.
type StretchFunc func(I, P string) string

// Routines is a stateless service bound to one Parameters, implementing
// every SRP-6a formula. It holds no per-session state and is safe for
// concurrent use.
type Routines struct {
	Params *Parameters

	// Stretch, if non-nil, pre-hardens the password before x is
	// derived from it. See StretchFunc.
	Stretch StretchFunc
}

// NewRoutines binds a Routines to the given Parameters.
func NewRoutines(p *Parameters) *Routines {
	return &Routines{Params: p}
}

// Multiplier computes k = H(PAD(N) || PAD(g)).
func (r *Routines) Multiplier() *big.Int {
	n := r.Params.NBytes
	return hashPaddedInt(r.Params, n, r.Params.Group.N, r.Params.Group.G)
}

// stretched applies Stretch to P if configured.
func (r *Routines) stretched(I, P string) string {
	if r.Stretch == nil {
		return P
	}
	return r.Stretch(I, P)
}

// PrivateKey computes x = H(s || H(I || ":" || P)). The inner hash runs
// over UTF-8 bytes of I, a literal colon, and P; the outer hash prepends
// the raw (unpadded) salt bytes, matching RFC 5054.
func (r *Routines) PrivateKey(s []byte, I, P string) *big.Int {
	P = r.stretched(I, P)
	inner := hashSum(r.Params, []byte(I), []byte(":"), []byte(P))
	return hashInt(r.Params, s, inner)
}

// VerifierValue computes v = g^x mod N.
func (r *Routines) VerifierValue(x *big.Int) (*big.Int, error) {
	return modPow(r.Params.Group.G, x, r.Params.Group.N)
}

// Scrambler computes u = H(PAD(A) || PAD(B)).
func (r *Routines) Scrambler(A, B *big.Int) *big.Int {
	n := r.Params.NBytes
	return hashPaddedInt(r.Params, n, A, B)
}

// ClientPublicValue computes A = g^a mod N.
func (r *Routines) ClientPublicValue(a *big.Int) (*big.Int, error) {
	return modPow(r.Params.Group.G, a, r.Params.Group.N)
}

// ServerPublicValue computes B = (k*v + g^b) mod N.
func (r *Routines) ServerPublicValue(k, v, b *big.Int) (*big.Int, error) {
	gb, err := modPow(r.Params.Group.G, b, r.Params.Group.N)
	if err != nil {
		return nil, err
	}

	N := r.Params.Group.N
	t := new(big.Int).Mul(k, v)
	t.Add(t, gb)
	t.Mod(t, N)
	return t, nil
}

// ClientPremaster computes S = (B - k*g^x)^(a + u*x) mod N.
func (r *Routines) ClientPremaster(k, x, u, a, B *big.Int) (*big.Int, error) {
	N := r.Params.Group.N

	gx, err := modPow(r.Params.Group.G, x, N)
	if err != nil {
		return nil, err
	}

	base := new(big.Int).Mul(k, gx)
	base.Sub(B, base)
	base.Mod(base, N)

	exp := new(big.Int).Mul(u, x)
	exp.Add(exp, a)

	return modPow(base, exp, N)
}

// ServerPremaster computes S = (A * v^u)^b mod N.
func (r *Routines) ServerPremaster(A, v, u, b *big.Int) (*big.Int, error) {
	N := r.Params.Group.N

	vu, err := modPow(v, u, N)
	if err != nil {
		return nil, err
	}

	base := new(big.Int).Mul(A, vu)
	base.Mod(base, N)

	return modPow(base, b, N)
}

// ClientEvidence computes M1 = H(PAD(A) || PAD(B) || PAD(S)).
func (r *Routines) ClientEvidence(A, B, S *big.Int) *big.Int {
	return hashPaddedInt(r.Params, r.Params.NBytes, A, B, S)
}

// ServerEvidence computes M2 = H(PAD(A) || M1 || PAD(S)). M1 is hashed as
// its raw digest bytes (restored to the hash's output length), not padded
// to Nbytes.
func (r *Routines) ServerEvidence(A, M1, S *big.Int) *big.Int {
	n := r.Params.NBytes
	return hashInt(r.Params, pad(A, n), pad(M1, r.Params.Hash.Size()), pad(S, n))
}

// SessionKey computes K = H(PAD(S)).
func (r *Routines) SessionKey(S *big.Int) []byte {
	return hashPaddedSum(r.Params, r.Params.NBytes, S)
}

// IsValidPublicValue reports whether x mod N != 0, the sole validity
// requirement placed on a public value crossing the wire.
func (r *Routines) IsValidPublicValue(x *big.Int) bool {
	m := new(big.Int).Mod(x, r.Params.Group.N)
	return m.Sign() != 0
}

// GeneratePrivateValue draws a fresh ephemeral private value: at least
// minPrivateValueBits bits of entropy, and strictly within [1, N-1]. A draw
// is max(Nbytes, 32) random bytes, so it lands outside that range whenever
// it is >= N (about a third of draws for the 2048-bit group, whose N starts
// with 0xAC); such draws are retried, and after 16 failed draws a
// bad-argument error is returned.
func (r *Routines) GeneratePrivateValue() (*big.Int, error) {
	nBytes := r.Params.NBytes
	minBytes := minPrivateValueBits / 8
	if nBytes < minBytes {
		nBytes = minBytes
	}

	one := big.NewInt(1)
	nMinusOne := new(big.Int).Sub(r.Params.Group.N, one)

	for i := 0; i < 16; i++ {
		v, err := generateRandomBigInt(nBytes)
		if err != nil {
			return nil, err
		}
		if v.Sign() > 0 && v.Cmp(nMinusOne) <= 0 {
			return v, nil
		}
	}
	return nil, newErr(KindBadArgument, "srp: could not draw a valid ephemeral private value")
}

// GenerateRandomSalt returns a random salt. byteLen, if given, sets the
// exact length; otherwise the salt is the hash's own output length,
// floored at minSaltBytes.
func (r *Routines) GenerateRandomSalt(byteLen ...int) ([]byte, error) {
	n := r.Params.Hash.Size()
	if n < minSaltBytes {
		n = minSaltBytes
	}
	if len(byteLen) > 0 && byteLen[0] > 0 {
		n = byteLen[0]
	}
	return generateRandomBytes(n)
}
