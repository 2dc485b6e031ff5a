package srp

import (
	"math/big"
	"sync"
)

// maxServerAttempts bounds retries when a freshly drawn ephemeral b
// produces a degenerate B (B mod N == 0); this is astronomically unlikely
// for a real safe prime and exists only so a broken Group can't spin
// forever.
const maxServerAttempts = 16

// ServerSession is the bare, freshly-constructed server state (S0).
type ServerSession struct {
	routines *Routines
}

// NewServerSession constructs a server session (S0) bound to routines.
func NewServerSession(routines *Routines) *ServerSession {
	return &ServerSession{routines: routines}
}

// serverStep2 is the per-A terminal state (S2): the client's evidence has
// been verified and the server has computed its own evidence M2 for that
// specific A.
type serverStep2 struct {
	S  *big.Int
	M2 *big.Int
}

// ServerStep1 (S1), indexed by the client identity I, holds the salt,
// verifier and the server's own ephemeral key pair. A single ServerStep1
// can service Step2 for multiple concurrent candidate A values -- a
// legitimate client retries with a fresh ephemeral after its own local
// failures -- each producing an independent serverStep2 isolated by a
// mutex-guarded map.
type ServerStep1 struct {
	routines *Routines
	I        string
	s        []byte
	v        *big.Int
	b        *big.Int
	B        *big.Int

	mu  sync.Mutex
	byA map[string]*serverStep2
}

// Step1 validates the arguments, draws the server's ephemeral key pair and
// computes B = (k*v + g^b) mod N, redrawing b if B is degenerate.
func (s *ServerSession) Step1(I string, salt []byte, v *big.Int) (*ServerStep1, error) {
	if I == "" {
		return nil, newErr(KindBadArgument, "srp: identity must not be empty")
	}
	if salt == nil {
		return nil, newErr(KindBadArgument, "srp: salt must not be nil")
	}
	if v == nil {
		return nil, newErr(KindBadArgument, "srp: verifier must not be nil")
	}

	r := s.routines
	k := r.Multiplier()

	var b, B *big.Int
	for attempt := 0; attempt < maxServerAttempts; attempt++ {
		var err error
		b, err = r.GeneratePrivateValue()
		if err != nil {
			return nil, err
		}

		B, err = r.ServerPublicValue(k, v, b)
		if err != nil {
			return nil, err
		}

		if r.IsValidPublicValue(B) {
			return &ServerStep1{
				routines: r,
				I:        I,
				s:        salt,
				v:        v,
				b:        b,
				B:        B,
				byA:      make(map[string]*serverStep2),
			}, nil
		}
	}

	return nil, newErr(KindBadArgument, "srp: could not generate a non-degenerate server public value")
}

// PublicValue returns the server's public ephemeral value B, to send to
// the client alongside the salt.
func (s *ServerStep1) PublicValue() *big.Int { return s.B }

// Step2 validates the client's (A, M1), computes the shared premaster S
// for that specific A, verifies the client's evidence, and -- on success
// -- caches the resulting serverStep2 keyed by A and returns the server's
// own evidence M2. A failed verification for one A never affects state
// cached for another.
func (s *ServerStep1) Step2(A, M1 *big.Int) (*big.Int, error) {
	if A == nil {
		return nil, newErr(KindBadArgument, "srp: client public value must not be nil")
	}
	if M1 == nil {
		return nil, newErr(KindBadArgument, "srp: client evidence must not be nil")
	}

	r := s.routines
	if !r.IsValidPublicValue(A) {
		return nil, newErr(KindBadClientPublicValue, "srp: client public value A is degenerate (0 mod N)")
	}

	u := r.Scrambler(A, s.B)
	if u.Sign() == 0 {
		return nil, newErr(KindBadScrambler, "srp: scrambler u is zero")
	}

	S, err := r.ServerPremaster(A, s.v, u, s.b)
	if err != nil {
		return nil, err
	}

	expected := r.ClientEvidence(A, s.B, S)
	if !constantTimeEqualBigInt(expected, M1) {
		return nil, newErr(KindBadClientEvidence, "srp: client evidence does not match")
	}

	M2 := r.ServerEvidence(A, M1, S)

	key := A.Text(16)
	s.mu.Lock()
	s.byA[key] = &serverStep2{S: S, M2: M2}
	s.mu.Unlock()

	return M2, nil
}

func (s *ServerStep1) lookup(A *big.Int) (*serverStep2, error) {
	key := A.Text(16)
	s.mu.Lock()
	entry, ok := s.byA[key]
	s.mu.Unlock()
	if !ok {
		return nil, newErr(KindBadArgument, "srp: no verified session for this A")
	}
	return entry, nil
}

// Encrypt seals data under the session secret negotiated for the given A.
func (s *ServerStep1) Encrypt(A *big.Int, data []byte) (iv, ciphertext []byte, err error) {
	entry, err := s.lookup(A)
	if err != nil {
		return nil, nil, err
	}
	return encryptWithSecret(s.routines.Params, entry.S, data)
}

// EncryptString is Encrypt over the UTF-8 encoding of data.
func (s *ServerStep1) EncryptString(A *big.Int, data string) (iv, ciphertext []byte, err error) {
	return s.Encrypt(A, []byte(data))
}

// Decrypt opens a ciphertext under the session secret negotiated for the
// given A.
func (s *ServerStep1) Decrypt(A *big.Int, iv, ciphertext []byte) ([]byte, error) {
	entry, err := s.lookup(A)
	if err != nil {
		return nil, err
	}
	return decryptWithSecret(s.routines.Params, entry.S, iv, ciphertext)
}

// DecryptToString is Decrypt with the plaintext interpreted as UTF-8.
func (s *ServerStep1) DecryptToString(A *big.Int, iv, ciphertext []byte) (string, error) {
	pt, err := s.Decrypt(A, iv, ciphertext)
	if err != nil {
		return "", err
	}
	return string(pt), nil
}

// PremasterSecret returns the raw negotiated secret S for a verified A,
// for callers that need it directly rather than through Encrypt/Decrypt.
func (s *ServerStep1) PremasterSecret(A *big.Int) (*big.Int, error) {
	entry, err := s.lookup(A)
	if err != nil {
		return nil, err
	}
	return entry.S, nil
}
