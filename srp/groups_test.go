package srp

import (
	"crypto"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupForBitsKnownSizes(t *testing.T) {
	for _, bits := range []int{1024, 1536, 2048, 3072, 4096, 6144, 8192} {
		g, err := GroupForBits(bits)
		require.NoError(t, err, "bits=%d", bits)
		assert.Equal(t, bits, g.N.BitLen(), "N bit length for %d-bit group", bits)
		assert.True(t, g.N.ProbablyPrime(20), "N not prime for %d-bit group", bits)
		assert.Greater(t, g.G.Sign(), 0)
	}
}

func TestGroupForBitsUnknown(t *testing.T) {
	_, err := GroupForBits(777)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadArgument)
}

func TestDefaultGroupIs2048(t *testing.T) {
	g := DefaultGroup()
	assert.Equal(t, 2048, g.N.BitLen())
}

func TestDefaultParameters(t *testing.T) {
	p := DefaultParameters()
	assert.Equal(t, crypto.SHA512, p.Hash)
	assert.Equal(t, 2048, p.Group.N.BitLen())
	assert.Equal(t, 256, p.NBytes)
}

func TestNewParametersRejectsIncompleteGroup(t *testing.T) {
	_, err := NewParameters(&Group{}, crypto.SHA256)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadArgument)
}

func TestGenerateGroupProducesSafePrime(t *testing.T) {
	if testing.Short() {
		t.Skip("safe prime generation is slow; skipped in -short mode")
	}

	g, err := GenerateGroup(256)
	require.NoError(t, err)
	assert.True(t, g.N.ProbablyPrime(20))
	assert.True(t, new(big.Int).Rsh(g.N, 1).ProbablyPrime(20), "(N-1)/2 must also be prime")
	assert.Equal(t, 256, g.N.BitLen())
}
