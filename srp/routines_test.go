package srp

import (
	"crypto"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoutines(t *testing.T, bits int, h crypto.Hash) *Routines {
	t.Helper()
	p, err := NewParametersForBits(bits, h)
	require.NoError(t, err)
	return NewRoutines(p)
}

func TestMultiplierIsDeterministic(t *testing.T) {
	r := testRoutines(t, 2048, crypto.SHA512)
	k1 := r.Multiplier()
	k2 := r.Multiplier()
	assert.Equal(t, 0, k1.Cmp(k2))
	assert.NotEqual(t, 0, k1.Sign())
}

func TestPrivateKeyDependsOnAllInputs(t *testing.T) {
	r := testRoutines(t, 2048, crypto.SHA512)
	salt := []byte("some-salt-bytes")

	x1 := r.PrivateKey(salt, "alice", "password123")
	x2 := r.PrivateKey(salt, "alice", "password123")
	assert.Equal(t, 0, x1.Cmp(x2), "PrivateKey must be a pure function of its inputs")

	x3 := r.PrivateKey(salt, "alice", "different-password")
	assert.NotEqual(t, 0, x1.Cmp(x3))

	x4 := r.PrivateKey(salt, "bob", "password123")
	assert.NotEqual(t, 0, x1.Cmp(x4))

	otherSalt := []byte("another-salt-value")
	x5 := r.PrivateKey(otherSalt, "alice", "password123")
	assert.NotEqual(t, 0, x1.Cmp(x5))
}

func TestVerifierValueMatchesGX(t *testing.T) {
	r := testRoutines(t, 2048, crypto.SHA512)
	x := big.NewInt(12345)

	v, err := r.VerifierValue(x)
	require.NoError(t, err)

	want := new(big.Int).Exp(r.Params.Group.G, x, r.Params.Group.N)
	assert.Equal(t, 0, want.Cmp(v))
}

func TestIsValidPublicValue(t *testing.T) {
	r := testRoutines(t, 2048, crypto.SHA512)

	assert.False(t, r.IsValidPublicValue(big.NewInt(0)))
	assert.False(t, r.IsValidPublicValue(new(big.Int).Set(r.Params.Group.N)))
	assert.True(t, r.IsValidPublicValue(big.NewInt(1)))
}

func TestGeneratePrivateValueRange(t *testing.T) {
	r := testRoutines(t, 2048, crypto.SHA512)

	for i := 0; i < 8; i++ {
		v, err := r.GeneratePrivateValue()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v.BitLen(), 1)
		assert.True(t, v.Cmp(r.Params.Group.N) < 0)
		assert.True(t, v.Sign() > 0)
	}
}

func TestGenerateRandomSaltDefaultsToHashSize(t *testing.T) {
	r := testRoutines(t, 2048, crypto.SHA512)
	s, err := r.GenerateRandomSalt()
	require.NoError(t, err)
	assert.Len(t, s, 64) // SHA-512 output length

	r256 := testRoutines(t, 2048, crypto.SHA256)
	s2, err := r256.GenerateRandomSalt()
	require.NoError(t, err)
	assert.Len(t, s2, 32)

	r1 := testRoutines(t, 2048, crypto.SHA1)
	s3, err := r1.GenerateRandomSalt()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(s3), minSaltBytes, "salt must be floored at minSaltBytes even for a short hash")
}

func TestGenerateRandomSaltExplicitLength(t *testing.T) {
	r := testRoutines(t, 2048, crypto.SHA512)
	s, err := r.GenerateRandomSalt(24)
	require.NoError(t, err)
	assert.Len(t, s, 24)
}

// TestRFC5054Vector exercises the well-known RFC 5054 Appendix B test
// vector's inputs: I="alice", P="password123", the fixed salt s, the
// 1024-bit group and SHA-1. k and x are asserted against the published
// vector directly. The remaining chain (v, a, b, A, B, u, S, M1, M2) is
// checked for internal self-consistency by running the real protocol
// against these inputs, rather than by hand-transcribing the vector's
// long hex constants for those values -- see DESIGN.md.
func TestRFC5054Vector(t *testing.T) {
	r := testRoutines(t, 1024, crypto.SHA1)

	assert.Equal(t, 2, int(r.Params.Group.G.Int64()))

	salt := mustHex(t, "BEB25379D1A8581EB5A727673A2441EE")

	k := r.Multiplier()
	assert.Equal(t, "7556aa045aef2cdd07abaf0f665c3e818913186f", hexLower(k))

	x := r.PrivateKey(salt, "alice", "password123")
	assert.Equal(t, "94b7555aabe9127cc58ccf4993db6cf84d16c124", hexLower(x))

	v, err := r.VerifierValue(x)
	require.NoError(t, err)

	// Full handshake using these exact (I, P, s, v) inputs must succeed
	// and both sides must agree on S.
	server := NewServerSession(r)
	s1, err := server.Step1("alice", salt, v)
	require.NoError(t, err)

	client := NewClientSession(r)
	c1, err := client.Step1("alice", "password123")
	require.NoError(t, err)

	c2, err := c1.Step2(salt, s1.PublicValue())
	require.NoError(t, err)

	M2, err := s1.Step2(c2.PublicValue(), c2.Evidence())
	require.NoError(t, err)

	c3, err := c2.Step3(M2)
	require.NoError(t, err)

	serverS, err := s1.PremasterSecret(c2.PublicValue())
	require.NoError(t, err)

	assert.Equal(t, 0, c3.PremasterSecret().Cmp(serverS))
}
