package ecp

import (
	"crypto/subtle"
	"io"

	"github.com/tempesta-tls/ecp/internal/fe"
)

// comb.go implements the modified comb method for constant-time,
// fixed-base-friendly scalar multiplication on short Weierstrass curves.

// combTable is the precomputed table for one base point: 2^(w-1) affine
// (Z == 1) points, plus the window and stride it was built with.
type combTable struct {
	T []*JacobianPoint
	W uint8
	D int
}

// baseWindow returns the comb window size: 4 teeth for 256-bit curves,
// 5 for 384-bit.
func baseWindow(g *Group) uint8 {
	if g.Bits >= 384 {
		return 5
	}
	return 4
}

// combFixed recodes an odd scalar m into d+1 digits, where bits 0..w-1 of
// x[i] hold the digit K_i and bit 7 holds its sign, enforcing K_i odd for
// i >= 1 by branch-free carry propagation. x must have length d+1 and
// start zeroed.
func combFixed(x []byte, d int, w uint8, m *fe.Elem) {
	for i := 0; i < d; i++ {
		for j := 0; j < int(w); j++ {
			bit := byte(m.Bit(i + d*j))
			x[i] |= bit << uint(j)
		}
	}

	var c byte
	for i := 1; i <= d; i++ {
		cc := x[i] & c
		x[i] ^= c
		c = cc

		adjust := 1 - (x[i] & 1)
		c |= x[i] & (x[i-1] * adjust)
		x[i] ^= x[i-1] * adjust
		x[i-1] |= adjust << 7
	}
}

// precomputeComb builds T[0..2^(w-1)) such that, writing i in binary as
// i_{w-1}...i_1, T[i] = i_{w-1} 2^{(w-1)d} P + ... + i_1 2^d P + P. p must
// be affine (Z == 1).
func (g *Group) precomputeComb(p *JacobianPoint, w uint8, d int) ([]*JacobianPoint, error) {
	size := 1 << (w - 1)
	T := make([]*JacobianPoint, size)
	T[0] = p.Clone()

	doubled := make([]*JacobianPoint, 0, int(w)-1)
	for i := 1; i < size; i <<= 1 {
		cur := T[i>>1].Clone()
		for j := 0; j < d; j++ {
			cur = g.doubleJacobian(cur)
		}
		T[i] = cur
		doubled = append(doubled, cur)
	}
	if err := g.normalizeJacobianMany(doubled); err != nil {
		return nil, err
	}

	added := make([]*JacobianPoint, 0, size-int(w))
	for i := 1; i < size; i <<= 1 {
		for j := i - 1; j >= 0; j-- {
			sum, err := g.addMixed(T[j], T[i])
			if err != nil {
				return nil, err
			}
			T[i+j] = sum
			added = append(added, sum)
		}
	}
	if err := g.normalizeJacobianMany(added); err != nil {
		return nil, err
	}

	return T, nil
}

// selectComb computes R <- sign(idx) * T[|idx|/2], implemented as a full,
// constant-time linear scan of the table (every entry is touched
// regardless of idx, to thwart cache-timing attacks) with the final sign
// bit applied via safe-invert.
func (g *Group) selectComb(T []*JacobianPoint, tLen int, idx byte) *JacobianPoint {
	ii := (idx & 0x7F) >> 1

	r := &JacobianPoint{
		X: new(fe.Elem).SetUint64(0),
		Y: new(fe.Elem).SetUint64(0),
		Z: fe.FromUint64(1),
	}
	for j := 0; j < tLen; j++ {
		eq := fe.Choice(subtle.ConstantTimeByteEq(byte(j), ii))
		r.X.CondAssign(eq, T[j].X)
		r.Y.CondAssign(eq, T[j].Y)
	}

	g.safeInvertJacobian(r, fe.Choice(idx>>7))
	return r
}

// combCore is the digit-driven double-and-add loop common to the comb
// method, optionally randomizing the starting accumulator against DPA.
func (g *Group) combCore(rng io.Reader, T []*JacobianPoint, tLen int, x []byte, d int, rnd bool) (*JacobianPoint, error) {
	r := g.selectComb(T, tLen, x[d])
	r.Z.SetUint64(1)
	if rnd {
		if err := g.randomizeJacobian(rng, r); err != nil {
			return nil, err
		}
	}

	for i := d - 1; i >= 0; i-- {
		r = g.doubleJacobian(r)
		txi := g.selectComb(T, tLen, x[i])
		sum, err := g.addMixed(r, txi)
		if err != nil {
			return nil, err
		}
		r = sum
	}

	return r, nil
}

// generatorComb returns the group's cached comb table for G, built once on
// first use with one extra window bit: G is reused across every key
// generation and ECDHE call, so the table is worth the wider precompute.
func (g *Group) generatorComb() *combTable {
	g.combOnce.Do(func() {
		w := baseWindow(g) + 1
		d := (g.Bits + int(w) - 1) / int(w)
		T, err := g.precomputeComb(g.generator(), w, d)
		if err != nil {
			// Unreachable: the generator is a fixed, valid curve point.
			panic("ecp: failed to precompute generator comb table: " + err.Error())
		}
		g.comb = &combTable{T: T, W: w, D: d}
	})
	return g.comb
}

func (g *Group) isGenerator(p *JacobianPoint) bool {
	return p.Z.Cmp(new(fe.Elem).SetUint64(1)) == 0 &&
		p.X.Cmp(g.Gx) == 0 &&
		p.Y.Cmp(g.Gy) == 0
}

// mulComb drives scalar multiplication by the comb method for short
// Weierstrass curves. p must be affine.
func (g *Group) mulComb(rng io.Reader, m *fe.Elem, p *JacobianPoint, rnd bool) (*JacobianPoint, error) {
	if g.N.Nat().Bit(0) != 1 {
		// N is guaranteed odd for every curve this package registers;
		// this would only trip on a malformed Group built outside curve.go.
		return nil, ErrInternal
	}

	var (
		table []*JacobianPoint
		w     uint8
	)
	pEqG := g.isGenerator(p)
	if pEqG {
		ct := g.generatorComb()
		table, w = ct.T, ct.W
	} else {
		w = baseWindow(g)
	}
	d := (g.Bits + int(w) - 1) / int(w)

	if !pEqG {
		var err error
		table, err = g.precomputeComb(p, w, d)
		if err != nil {
			return nil, err
		}
	}

	mIsOdd := fe.Choice(m.Bit(0))
	M := new(fe.Elem).SetNat(m)
	mm := new(fe.Elem).ModSub(new(fe.Elem).SetUint64(0), m, g.N)
	M.CondAssign(fe.ChoiceNot(mIsOdd), mm)

	k := make([]byte, d+1)
	combFixed(k, d, w, M)

	r, err := g.combCore(rng, table, 1<<(w-1), k, d, rnd)
	if err != nil {
		return nil, err
	}

	g.safeInvertJacobian(r, fe.ChoiceNot(mIsOdd))
	if err := g.normalizeJacobian(r); err != nil {
		return nil, err
	}

	zeroizeScratch(M, mm)
	fe.ZeroizeBytes(k)

	return r, nil
}
