package srp

import (
	"math/big"
	"strings"
)

// ClientSession is the bare, freshly-constructed client state (C0). It
// holds nothing but a reference to the routines it will use and
// transitions to ClientStep1 via Step1. Each state is one-shot: once a
// transition method has been called, the receiver should be discarded.
type ClientSession struct {
	routines *Routines
}

// NewClientSession constructs a client session (C0) bound to routines.
func NewClientSession(routines *Routines) *ClientSession {
	return &ClientSession{routines: routines}
}

// ClientStep1 (C1) holds the identity and password supplied to Step1,
// waiting for the server's salt and public value.
type ClientStep1 struct {
	routines *Routines
	I        string
	p        []byte
}

// Step1 validates and stores the identity and password. I is trimmed
// before the empty check (non-empty after trimming is the bar); the
// untrimmed I is what's actually used in later hashing, since RFC 5054
// does not itself specify trimming as part of the protocol, only as an
// input-validation courtesy.
func (c *ClientSession) Step1(I, P string) (*ClientStep1, error) {
	if strings.TrimSpace(I) == "" {
		return nil, newErr(KindBadArgument, "srp: identity must not be null or empty")
	}
	if P == "" {
		return nil, newErr(KindBadArgument, "srp: password must not be null or empty")
	}

	return &ClientStep1{
		routines: c.routines,
		I:        I,
		p:        []byte(P),
	}, nil
}

// ClientStep2 (C2) holds the client's public value A, its evidence M1, and
// the negotiated premaster S, produced by Step2. It exposes Encrypt/
// Decrypt so the session's confidentiality channel is usable immediately,
// without waiting on Step3's mutual-auth confirmation -- both C2 and C3
// carry the same S and can use it.
type ClientStep2 struct {
	routines *Routines
	I        string
	A        *big.Int
	M1       *big.Int
	S        *big.Int
	salt     []byte
}

// Step2 validates the server's (salt, B), derives the client's ephemeral
// key pair, computes the premaster secret and the client evidence M1.
func (c *ClientStep1) Step2(salt []byte, B *big.Int) (*ClientStep2, error) {
	if salt == nil {
		return nil, newErr(KindBadArgument, "srp: salt must not be nil")
	}
	if B == nil {
		return nil, newErr(KindBadArgument, "srp: server public value must not be nil")
	}

	r := c.routines
	if !r.IsValidPublicValue(B) {
		return nil, newErr(KindBadServerPublicValue, "srp: server public value B is degenerate (0 mod N)")
	}

	x := r.PrivateKey(salt, c.I, string(c.p))

	a, err := r.GeneratePrivateValue()
	if err != nil {
		return nil, err
	}

	A, err := r.ClientPublicValue(a)
	if err != nil {
		return nil, err
	}
	if !r.IsValidPublicValue(A) {
		return nil, newErr(KindBadArgument, "srp: generated client public value A is degenerate (0 mod N)")
	}

	u := r.Scrambler(A, B)
	if u.Sign() == 0 {
		return nil, newErr(KindBadScrambler, "srp: scrambler u is zero")
	}

	k := r.Multiplier()

	S, err := r.ClientPremaster(k, x, u, a, B)
	if err != nil {
		return nil, err
	}

	M1 := r.ClientEvidence(A, B, S)

	zeroBytes(c.p)

	return &ClientStep2{
		routines: r,
		I:        c.I,
		A:        A,
		M1:       M1,
		S:        S,
		salt:     salt,
	}, nil
}

// PublicValue returns the client's public ephemeral value, to send to the
// server alongside the identity.
func (c *ClientStep2) PublicValue() *big.Int { return c.A }

// Evidence returns M1, the client's proof of having derived S, to send to
// the server.
func (c *ClientStep2) Evidence() *big.Int { return c.M1 }

// ClientStep3 (C3) is the terminal success state: the client has verified
// the server's evidence M2 and both sides now agree on S.
type ClientStep3 struct {
	routines *Routines
	S        *big.Int
}

// Step3 validates the server's evidence M2 against the client's own
// recomputation and, on success, transitions to the terminal state C3.
func (c *ClientStep2) Step3(M2 *big.Int) (*ClientStep3, error) {
	if M2 == nil {
		return nil, newErr(KindBadArgument, "srp: server evidence must not be nil")
	}

	expected := c.routines.ServerEvidence(c.A, c.M1, c.S)
	if !constantTimeEqualBigInt(expected, M2) {
		return nil, newErr(KindBadServerEvidence, "srp: server evidence does not match; possible server impersonation")
	}

	return &ClientStep3{routines: c.routines, S: c.S}, nil
}

// PremasterSecret returns the raw negotiated secret S. Prefer Encrypt/
// Decrypt for message-level use; this accessor exists for callers that
// need the raw value, e.g. to derive their own session key.
func (c *ClientStep3) PremasterSecret() *big.Int { return c.S }

// Encrypt seals data under the session secret negotiated in Step2. See
// encrypt.go for the construction.
func (c *ClientStep2) Encrypt(data []byte) (iv, ciphertext []byte, err error) {
	return encryptWithSecret(c.routines.Params, c.S, data)
}

// EncryptString is Encrypt over the UTF-8 encoding of s.
func (c *ClientStep2) EncryptString(s string) (iv, ciphertext []byte, err error) {
	return c.Encrypt([]byte(s))
}

// Decrypt opens a ciphertext produced by the server's Encrypt for this
// session's S.
func (c *ClientStep2) Decrypt(iv, ciphertext []byte) ([]byte, error) {
	return decryptWithSecret(c.routines.Params, c.S, iv, ciphertext)
}

// DecryptToString is Decrypt with the plaintext interpreted as UTF-8.
func (c *ClientStep2) DecryptToString(iv, ciphertext []byte) (string, error) {
	pt, err := c.Decrypt(iv, ciphertext)
	if err != nil {
		return "", err
	}
	return string(pt), nil
}

// Encrypt seals data under the session secret. Available after Step3 for
// symmetry with ClientStep2; the underlying secret is identical.
func (c *ClientStep3) Encrypt(data []byte) (iv, ciphertext []byte, err error) {
	return encryptWithSecret(c.routines.Params, c.S, data)
}

// EncryptString is Encrypt over the UTF-8 encoding of s.
func (c *ClientStep3) EncryptString(s string) (iv, ciphertext []byte, err error) {
	return c.Encrypt([]byte(s))
}

// Decrypt opens a ciphertext produced by the server's Encrypt for this
// session's S.
func (c *ClientStep3) Decrypt(iv, ciphertext []byte) ([]byte, error) {
	return decryptWithSecret(c.routines.Params, c.S, iv, ciphertext)
}

// DecryptToString is Decrypt with the plaintext interpreted as UTF-8.
func (c *ClientStep3) DecryptToString(iv, ciphertext []byte) (string, error) {
	pt, err := c.Decrypt(iv, ciphertext)
	if err != nil {
		return "", err
	}
	return string(pt), nil
}
