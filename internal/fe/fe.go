// Package fe adapts github.com/cronokirby/safenum's constant-time natural
// number arithmetic to the handful of extra primitives the ecp package needs:
// constant-time conditional swap (safenum only gives us conditional assign),
// best-effort zeroization on scope exit, and reading injected randomness.
//
// Every exported helper here is constant time in its Nat/Modulus arguments.
// None of them branch, index, or loop on a secret value.
package fe

import (
	"crypto/subtle"
	"io"

	"github.com/cronokirby/safenum"
)

// Elem is a field or scalar element, always kept reduced modulo some
// Modulus supplied by the caller. Capacity is tracked by safenum itself,
// which sizes intermediate products wide enough for reduction without
// this package needing to reimplement that bookkeeping.
type Elem = safenum.Nat

// Modulus is re-exported so callers of this package don't need a second
// import of safenum just for the modulus type.
type Modulus = safenum.Modulus

// Choice is re-exported for the same reason; 1 means true, 0 means false,
// and every operation that consumes one is defined not to branch on it.
type Choice = safenum.Choice

// NewModulus builds a Modulus from a big-endian byte string.
func NewModulus(b []byte) *Modulus {
	return safenum.ModulusFromBytes(b)
}

// FromBytes decodes a big-endian byte string into a fresh Elem.
func FromBytes(b []byte) *Elem {
	return new(Elem).SetBytes(b)
}

// FromUint64 builds a fresh Elem from a small constant.
func FromUint64(x uint64) *Elem {
	return new(Elem).SetUint64(x)
}

// Zero reports whether every limb of x is the zero value: a convenience
// wrapper that converts safenum's Choice into a plain bool for call sites
// that are allowed to branch (anything operating on public data, such as
// "is this the point at infinity").
func Zero(x *Elem) bool {
	return x.EqZero() == 1
}

// Choice constants, spelled out for readability at call sites.
const (
	No  Choice = 0
	Yes Choice = 1
)

// ChoiceFromBool converts a public bool into a Choice. Only ever call this
// with a value that is allowed to be public (loop trip counts, parity of a
// table index count) — never with a value derived from a secret bit.
func ChoiceFromBool(b bool) Choice {
	if b {
		return Yes
	}
	return No
}

// ChoiceAnd and ChoiceNot compose Choice values in constant time. Choice is
// safenum's 0/1 selector type; these are the bitwise AND/NOT any defined
// integer type already supports, named here so call sites read as boolean
// algebra on secret-derived conditions instead of raw bit twiddling.
func ChoiceAnd(a, b Choice) Choice {
	return a & b
}

func ChoiceNot(a Choice) Choice {
	return a ^ 1
}

// CondSwap conditionally exchanges x and y in constant time when cond == 1,
// leaving them untouched when cond == 0. safenum only exposes conditional
// *assignment*; this composes two of those into the swap the Montgomery
// ladder needs.
func CondSwap(x, y *Elem, cond Choice) {
	t := new(Elem).SetNat(x)
	x.CondAssign(cond, y)
	y.CondAssign(cond, t)
}

// Zeroize overwrites the backing words of x with zero. Best-effort: Go's
// garbage collector may have copied the backing array before this runs,
// which is the usual caveat for zeroization in a managed runtime —
// hygiene rather than a hard guarantee.
func Zeroize(x *Elem) {
	if x == nil {
		return
	}
	b := x.Bytes()
	for i := range b {
		b[i] = 0
	}
	x.SetBytes(b)
}

// ZeroizeBytes overwrites a raw secret byte buffer in place.
func ZeroizeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ConstantTimeCompareBytes is a thin re-export of crypto/subtle's
// constant-time comparison, used by callers comparing encoded points or
// shared secrets without leaking equality via branch timing.
func ConstantTimeCompareBytes(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// FillRandom reads exactly len(p) bytes of randomness from rng into p,
// returning an error only on exhausted or failing readers. The RNG is
// always an external capability injected at the operation boundary,
// never a package-global default.
func FillRandom(rng io.Reader, p []byte) error {
	_, err := io.ReadFull(rng, p)
	return err
}
