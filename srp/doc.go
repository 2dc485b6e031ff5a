// Copyright 2013-2017 Sudhi Herle <sudhi.herle-at-gmail-dot-com>
// License: MIT
//
// Package srp implements SRP-6a (Secure Remote Password, revision 6a): a
// zero-knowledge password-authenticated key exchange. A client proves
// knowledge of a password to a server that stores only a verifier derived
// from it; both sides end up with an identical shared secret without the
// password, or a reversible function of it, ever crossing the wire.
//
// Conventions
// -----------
//
//	N    A large safe prime (N = 2q+1, where q is prime)
//	     All arithmetic is done modulo N.
//	g    A generator modulo N
//	k    Multiplier parameter (k = H(N, pad(g)) in SRP-6a)
//	s    User's salt
//	I    Username
//	P    Cleartext Password
//	H()  One-way hash function
//	^    (Modular) Exponentiation
//	u    Random scrambling parameter
//	a,b  Secret ephemeral values
//	A,B  Public ephemeral values
//	x    Private key (derived from P and s)
//	v    Password verifier
//
// The host stores passwords using the following formula:
//
//	s = randomsalt()
//	x = H(s, H(I, ":", P))
//	v = g^x % N
//
// The host then keeps {I, s, v} in its password database. Authentication
// runs the three-message handshake described by srp.ClientSession and
// srp.ServerSession, after which both sides hold an identical premaster
// secret S, proven equal via the mutual evidence values M1 and M2.
// Encrypt/Decrypt (see encrypt.go) turn S into a message-level
// confidentiality and integrity channel for use after the handshake
// completes.
//
// References
// ----------
// [1] http://srp.stanford.edu/design.html
// [2] RFC 5054 - Using SRP for TLS Authentication
package srp
