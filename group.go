package ecp

import (
	"sync"

	"github.com/tempesta-tls/ecp/internal/fe"
)

// Group is the immutable per-curve record. It is built once, on first
// lookup, and its curve parameters are never mutated afterwards; the only
// later write is the lazily built generator comb table, guarded by
// combOnce. Every operation borrows it read-only, and any number of
// goroutines may do so concurrently without further synchronization.
type Group struct {
	ID      CurveID
	Type    CurveType
	Bits    int
	Name    string
	byteLen int // ceil(Bits/8)

	P *fe.Modulus // field modulus
	N *fe.Modulus // group (sub)order
	A *fe.Elem    // nil means "A == -3" for ShortWeierstrass (NIST convention);
	// required and non-nil for Montgomery curves.
	B  *fe.Elem // curve constant; unused (nil) for Montgomery.
	Gx *fe.Elem
	Gy *fe.Elem // nil for Montgomery: the generator is carried as x-only.

	Cofactor uint

	// comb is the precomputed comb table for the standard generator,
	// built lazily and cached: expensive to build, shared read-only
	// across every MulG call thereafter.
	comb     *combTable
	combOnce sync.Once
}

// AIsMinus3 reports whether this (short Weierstrass) group uses the NIST
// A = -3 convention, which enables doubleJacobian's fast path.
func (g *Group) AIsMinus3() bool {
	return g.A == nil
}

// byteLength returns ceil(Bits/8), the fixed-width encoding length for
// this curve's field and scalar elements.
func (g *Group) byteLength() int {
	return g.byteLen
}

// generator returns the affine base point G as a fresh, independent copy:
// callers are free to mutate the result.
func (g *Group) generator() *JacobianPoint {
	pt := &JacobianPoint{
		X: new(fe.Elem).SetNat(g.Gx),
		Z: fe.FromUint64(1),
	}
	if g.Gy != nil {
		pt.Y = new(fe.Elem).SetNat(g.Gy)
	} else {
		pt.Y = fe.FromUint64(1)
	}
	return pt
}

// mulMod and sqrMod are the field-multiply/square primitives every curve
// operation in this package is built from. Picking an efficient reduction
// strategy for a given modulus (curve-specialized vs. schoolbook) is left
// entirely to the underlying MPI library: safenum.Modulus already chooses
// that internally for the modulus it was built from (see DESIGN.md for why
// this subsumes a hand-written Solinas reduction rather than reimplementing
// one here).
func mulMod(g *Group, z, a, b *fe.Elem) *fe.Elem {
	return z.ModMul(a, b, g.P)
}

func sqrMod(g *Group, z, a *fe.Elem) *fe.Elem {
	return z.ModMul(a, a, g.P)
}

func addMod(g *Group, z, a, b *fe.Elem) *fe.Elem {
	return z.ModAdd(a, b, g.P)
}

func subMod(g *Group, z, a, b *fe.Elem) *fe.Elem {
	return z.ModSub(a, b, g.P)
}

func negMod(g *Group, z, a *fe.Elem) *fe.Elem {
	return z.ModNeg(a, g.P)
}

func hex(s string) []byte {
	b := make([]byte, len(s)/2)
	for i := range b {
		hi := hexDigit(s[2*i])
		lo := hexDigit(s[2*i+1])
		b[i] = hi<<4 | lo
	}
	return b
}

func hexDigit(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		panic("ecp: invalid hex constant")
	}
}

var (
	p256once sync.Once
	p256grp  *Group

	p384once sync.Once
	p384grp  *Group

	x25519once sync.Once
	x25519grp  *Group
)

// p256Group builds (once) the NIST P-256 / secp256r1 group, FIPS 186-3
// §D.2.3. A is omitted (nil): P-256 uses the A = -3 convention.
func p256Group() *Group {
	p256once.Do(func() {
		p256grp = &Group{
			ID:      Secp256r1,
			Type:    ShortWeierstrass,
			Bits:    256,
			Name:    "secp256r1",
			byteLen: 32,
			P: fe.NewModulus(hex("ffffffff00000001000000000000000000000000ffffffffffffffffffffffff")),
			N: fe.NewModulus(hex("ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551")),
			B: fe.FromBytes(hex("5ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53b0f63bce3c3e27d2604b")),
			Gx: fe.FromBytes(hex("6b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296")),
			Gy: fe.FromBytes(hex("4fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5")),
			Cofactor: 1,
		}
	})
	return p256grp
}

// p384Group builds (once) the NIST P-384 / secp384r1 group, FIPS 186-3
// §D.2.4. Also A = -3.
func p384Group() *Group {
	p384once.Do(func() {
		p384grp = &Group{
			ID:      Secp384r1,
			Type:    ShortWeierstrass,
			Bits:    384,
			Name:    "secp384r1",
			byteLen: 48,
			P: fe.NewModulus(hex("fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffeffffffff0000000000000000ffffffff")),
			N: fe.NewModulus(hex("ffffffffffffffffffffffffffffffffffffffffffffffffc7634d81f4372ddf581a0db248b0a77aecec196accc52973")),
			B: fe.FromBytes(hex("b3312fa7e23ee7e4988e056be3f82d19181d9c6efe8141120314088f5013875ac656398d8a2ed19d2a85c8edd3ec2aef")),
			Gx: fe.FromBytes(hex("aa87ca22be8b05378eb1c71ef320ad746e1d3b628ba79b9859f741e082542a385502f25dbf55296c3a545e3872760ab7")),
			Gy: fe.FromBytes(hex("3617de4a96262c6f5d9e98bf9292dc29f8f41dbd289a147ce9da3113b5f0b8c00a60b1ce1d7e819d7a431d7c90ea0e5f")),
			Cofactor: 1,
		}
	})
	return p384grp
}

// x25519Group builds (once) the Montgomery group, Curve25519. Gy is left
// nil: the wire format and internal arithmetic for this curve type are
// x-only.
func x25519Group() *Group {
	x25519once.Do(func() {
		x25519grp = &Group{
			ID:      X25519,
			Type:    Montgomery,
			Bits:    255,
			Name:    "x25519",
			byteLen: 32,
			P: fe.NewModulus(hex("7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffed")),
			N: fe.NewModulus(hex("1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed")),
			// A holds (486662 + 2) / 4 = 121666, not the raw curve
			// coefficient: that is the only form the ladder ever
			// consumes (montgomery.go's doubleAddMxz), so it is
			// precomputed once here instead of on every step.
			A:        fe.FromUint64(121666),
			Gx:       fe.FromUint64(9),
			Cofactor: 8,
		}
	})
	return x25519grp
}
