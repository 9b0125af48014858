// Package ecp implements the elliptic-curve arithmetic core of a TLS
// stack: NIST P-256 and P-384 in Jacobian coordinates, and X25519 in
// Montgomery x/z coordinates, with constant-time scalar multiplication,
// SEC1/TLS wire codecs, and keypair generation and validation.
//
// All scalar-dependent arithmetic is constant time: the comb method for
// short Weierstrass curves and the Montgomery ladder for X25519 never
// branch, index, or loop on secret data. Curve groups are immutable,
// process-wide singletons (see GroupFor) safe for concurrent use by any
// number of goroutines.
package ecp
