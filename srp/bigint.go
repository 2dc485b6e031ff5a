package srp

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
)

// pad left-pads x's big-endian byte encoding with zeros to n bytes. If x's
// natural encoding is already n bytes or longer, it is returned unchanged
// (SRP callers are expected to only pad values known to be < N).
func pad(x *big.Int, n int) []byte {
	b := x.Bytes()
	if len(b) >= n {
		return b
	}

	out := make([]byte, n)
	copy(out[n-len(b):], b)
	return out
}

// hashSum concatenates the raw bytes of every chunk and returns H(chunks).
func hashSum(p *Parameters, chunks ...[]byte) []byte {
	h := p.Hash.New()
	for _, c := range chunks {
		h.Write(c)
	}
	return h.Sum(nil)
}

// hashPaddedSum left-pads each of xs to n bytes before concatenating and
// hashing them. n is always Nbytes for SRP's own operations (k, u, M1, K),
// but is left as a parameter since PAD() is itself defined that way.
func hashPaddedSum(p *Parameters, n int, xs ...*big.Int) []byte {
	chunks := make([][]byte, len(xs))
	for i, x := range xs {
		chunks[i] = pad(x, n)
	}
	return hashSum(p, chunks...)
}

// hashInt is hashSum with the digest reinterpreted as an unsigned big-endian
// integer, used for x and M2.
func hashInt(p *Parameters, chunks ...[]byte) *big.Int {
	return new(big.Int).SetBytes(hashSum(p, chunks...))
}

// hashPaddedInt is hashPaddedSum reinterpreted as an integer, used for k, u
// and M1. K is not computed through it: SessionKey calls hashPaddedSum
// directly and returns bytes, since K is never a group element.
func hashPaddedInt(p *Parameters, n int, xs ...*big.Int) *big.Int {
	return new(big.Int).SetBytes(hashPaddedSum(p, n, xs...))
}

// modPow computes base^exp mod mod. It rejects a negative base or exponent
// and a non-positive modulus with a bad-argument error; math/big's Exp is
// used for the computation itself; for the private exponents (a, b, x)
// callers should treat the result as secret and avoid leaking timing via
// surrounding code, since math/big does not guarantee constant-time
// exponentiation.
func modPow(base, exp, mod *big.Int) (*big.Int, error) {
	if base.Sign() < 0 {
		return nil, newErr(KindBadArgument, "modPow: negative base")
	}
	if exp.Sign() < 0 {
		return nil, newErr(KindBadArgument, "modPow: negative exponent")
	}
	if mod.Sign() <= 0 {
		return nil, newErr(KindBadArgument, "modPow: non-positive modulus")
	}
	return new(big.Int).Exp(base, exp, mod), nil
}

// generateRandomBytes returns n bytes read from the process CSPRNG.
func generateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("srp: reading random bytes: %w", err)
	}
	return b, nil
}

// generateRandomBigInt draws a uniform random non-negative integer
// expressible in n bytes from the CSPRNG.
func generateRandomBigInt(n int) (*big.Int, error) {
	b, err := generateRandomBytes(n)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

// generateRandomString returns n ASCII hex characters drawn from the
// CSPRNG. It reads n/2+1 bytes, whose hex encoding is always longer than n
// characters, and trims it, so the result is always exactly n bytes long.
func generateRandomString(n int) (string, error) {
	b, err := generateRandomBytes(n/2 + 1)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b)[:n], nil
}
