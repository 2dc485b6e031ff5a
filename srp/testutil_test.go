package srp

import (
	"encoding/hex"
	"math/big"
	"testing"
)

// mustHex decodes a hex string, failing the test on error. Used for the
// known-answer vector inputs in routines_test.go.
func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("mustHex(%q): %s", s, err)
	}
	return b
}

// hexLower renders a big.Int as lowercase hex with no leading zero
// padding, matching the format RFC 5054's Appendix B uses for k and x.
func hexLower(x *big.Int) string {
	return hex.EncodeToString(x.Bytes())
}
