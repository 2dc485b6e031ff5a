// Generation of custom safe primes for GenerateGroup, in groups.go.
//
// This is largely a simplified copy of crypto/rand/util.go's internal
// prime search, extended with the extra check safe primes need: (p-1)/2
// must also be prime. It is licensed under the same terms as Go itself.

package srp

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
)

// safePrime searches for a prime p of the given bit size such that (p-1)/2
// is also prime.
func safePrime(bits int) (*big.Int, error) {
	half := new(big.Int)
	for {
		p, err := prime(bits)
		if err != nil {
			return nil, err
		}

		half.Rsh(p, 1)
		if half.ProbablyPrime(20) {
			return p, nil
		}
	}
}

// prime returns a number, p, of the given size, such that p is prime
// with high probability.
// prime will return error for any error returned by rand.Read or if bits < 2.
func prime(bits int) (p *big.Int, err error) {
	if bits < 2 {
		err = errors.New("crypto/rand: prime size must be at least 2-bit")
		return
	}

	b := uint(bits % 8)
	if b == 0 {
		b = 8
	}

	bytes := make([]byte, (bits+7)/8)
	p = new(big.Int)

	for {
		_, err = io.ReadFull(rand.Reader, bytes)
		if err != nil {
			return nil, err
		}

		// Clear bits in the first byte to make sure the candidate has a size <= bits.
		bytes[0] &= uint8(int(1<<b) - 1)

		// Don't let the value be too small, i.e, set the most significant two bits.
		// Setting the top two bits, rather than just the top bit,
		// means that when two of these values are multiplied together,
		// the result isn't ever one bit short.
		if b >= 2 {
			bytes[0] |= 3 << (b - 2)
		} else {
			// Here b==1, because b cannot be zero.
			bytes[0] |= 1
			if len(bytes) > 1 {
				bytes[1] |= 0x80
			}
		}

		// Set the first two bits since we will be looking for safe primes.
		// * if p is prime, we want (p-1)/2 to also be prime.
		// * (p-1)/2 is p >> 1
		// * and setting bit 1 guarantees that (p-1)/2 will be odd.
		bytes[len(bytes)-1] |= 3
		p.SetBytes(bytes)
		if p.ProbablyPrime(20) && p.BitLen() == bits {
			return
		}
	}
}
