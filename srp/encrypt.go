package srp

import (
	"crypto/subtle"
	"math/big"
)

// ivLen is the fixed length of the fresh, per-message IV.
const ivLen = 16

// tagLen is the fixed length of the truncated authentication tag.
const tagLen = 16

// deriveSessionKeys derives the encryption and MAC keys from the raw,
// unpadded big-endian bytes of the premaster secret S:
//
//	encKey = H(S_bytes || "encryption")
//	macKey = H(S_bytes || "authentication")
//
// This locks to the RFC 5054-compatible choice of hashing raw S (not
// K = H(PAD(S))); a new deployment that doesn't need wire compatibility
// with that convention should prefer HKDF over K instead, but the contract
// of Encrypt/Decrypt stays identical either way. See DESIGN.md.
func deriveSessionKeys(p *Parameters, S *big.Int) (encKey, macKey []byte) {
	sBytes := S.Bytes()
	encKey = hashSum(p, sBytes, []byte("encryption"))
	macKey = hashSum(p, sBytes, []byte("authentication"))
	return encKey, macKey
}

// keystreamByte returns keystream byte i for the given encKey and IV:
// encKey[i mod |encKey|] XOR IV[i mod 16].
func keystreamByte(encKey, iv []byte, i int) byte {
	return encKey[i%len(encKey)] ^ iv[i%ivLen]
}

// xorKeystream XORs src against the keystream derived from encKey and iv,
// writing into dst. dst and src may be the same slice.
func xorKeystream(dst, src, encKey, iv []byte) {
	for i, b := range src {
		dst[i] = b ^ keystreamByte(encKey, iv, i)
	}
}

// encryptWithSecret implements the post-handshake message protocol: a
// fresh 16-byte IV, a stream cipher keyed by encKey XOR IV, and a 16-byte
// tag over H(macKey || IV || ciphertext). The wire form is (iv,
// ciphertext || tag).
func encryptWithSecret(p *Parameters, S *big.Int, plaintext []byte) (iv, ciphertextWithTag []byte, err error) {
	iv, err = generateRandomBytes(ivLen)
	if err != nil {
		return nil, nil, err
	}

	encKey, macKey := deriveSessionKeys(p, S)

	ciphertext := make([]byte, len(plaintext))
	xorKeystream(ciphertext, plaintext, encKey, iv)

	tag := hashSum(p, macKey, iv, ciphertext)[:tagLen]

	out := make([]byte, 0, len(ciphertext)+tagLen)
	out = append(out, ciphertext...)
	out = append(out, tag...)

	return iv, out, nil
}

// decryptWithSecret implements the inverse of encryptWithSecret: it
// requires at least tagLen bytes, recomputes the tag and compares it
// without short-circuiting, and only then recovers the plaintext.
func decryptWithSecret(p *Parameters, S *big.Int, iv, ciphertextWithTag []byte) ([]byte, error) {
	if len(ciphertextWithTag) < tagLen {
		return nil, newErr(KindShortCiphertext, "srp: ciphertext shorter than the %d-byte authentication tag", tagLen)
	}

	ciphertext := ciphertextWithTag[:len(ciphertextWithTag)-tagLen]
	receivedTag := ciphertextWithTag[len(ciphertextWithTag)-tagLen:]

	encKey, macKey := deriveSessionKeys(p, S)
	expectedTag := hashSum(p, macKey, iv, ciphertext)[:tagLen]

	if subtle.ConstantTimeCompare(expectedTag, receivedTag) != 1 {
		return nil, newErr(KindAuthTagMismatch, "srp: authentication tag mismatch; ciphertext may have been tampered with")
	}

	plaintext := make([]byte, len(ciphertext))
	xorKeystream(plaintext, ciphertext, encKey, iv)

	return plaintext, nil
}
