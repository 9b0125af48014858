package ecp

import (
	"io"

	"github.com/tempesta-tls/ecp/internal/fe"
)

// montgomery.go implements the projective x/z Montgomery ladder used by
// Montgomery curves (X25519). Only X and Z of a JacobianPoint are
// meaningful here; Y is carried as the constant 1 so the struct stays
// uniform with the Weierstrass path.

// normalizeMxz rescales pt so X <- X/Z, Z <- 1.
func (g *Group) normalizeMxz(pt *JacobianPoint) error {
	if fe.Zero(pt.Z) {
		return ErrInvalid
	}
	zInv := new(fe.Elem).ModInverse(pt.Z, g.P)
	mulMod(g, pt.X, pt.X, zInv)
	pt.Z.SetUint64(1)
	return nil
}

// randomizeMxz is the X25519 analogue of randomizeJacobian —
// (X, Z) -> (l X, l Z) for a fresh random l in (1, P), the same DPA
// countermeasure applied to the 2-coordinate representation.
func (g *Group) randomizeMxz(rng io.Reader, pt *JacobianPoint) error {
	pLen := (g.Bits + 7) / 8
	buf := make([]byte, pLen)
	defer fe.ZeroizeBytes(buf)

	one := new(fe.Elem).SetUint64(1)
	var l *fe.Elem
	for attempt := 0; ; attempt++ {
		if attempt >= 10 {
			return ErrRandomFailed
		}
		if err := fe.FillRandom(rng, buf); err != nil {
			return ErrRandomFailed
		}
		l = fe.FromBytes(buf)
		for l.CmpMod(g.P) >= 0 {
			l.Rsh(l, 1, l.AnnouncedLen())
		}
		if l.Cmp(one) > 0 {
			break
		}
	}
	defer fe.Zeroize(l)

	mulMod(g, pt.X, pt.X, l)
	mulMod(g, pt.Z, pt.Z, l)
	return nil
}

// mxzState bundles the ladder's two running points, (X1:Z1) and (X2:Z2).
type mxzState struct {
	X1, Z1, X2, Z2 *fe.Elem
}

// doubleAddMxz is a combined differential-addition and doubling step,
// given the fixed affine x-coordinate x of the original point. Costs
// 5M + 4S, reused unconditionally regardless of the ladder's secret bit
// (the bit only drives the earlier cswap, never an additional branch
// here).
func (g *Group) doubleAddMxz(x *fe.Elem, s *mxzState) {
	a := new(fe.Elem)
	aa := new(fe.Elem)
	b := new(fe.Elem)
	bb := new(fe.Elem)
	e := new(fe.Elem)
	c := new(fe.Elem)
	d := new(fe.Elem)
	da := new(fe.Elem)
	cb := new(fe.Elem)

	addMod(g, a, s.X1, s.Z1)
	sqrMod(g, aa, a)
	subMod(g, b, s.X1, s.Z1)
	sqrMod(g, bb, b)
	subMod(g, e, aa, bb)

	addMod(g, c, s.X2, s.Z2)
	subMod(g, d, s.X2, s.Z2)
	mulMod(g, da, d, a)
	mulMod(g, cb, c, b)

	sum := new(fe.Elem)
	diff := new(fe.Elem)
	addMod(g, sum, da, cb)
	subMod(g, diff, da, cb)

	sqrMod(g, s.X2, sum)

	sqrMod(g, s.Z2, diff)
	mulMod(g, s.Z2, x, s.Z2)

	mulMod(g, s.X1, aa, bb)

	t := new(fe.Elem)
	mulMod(g, t, e, g.A) // ((A + 2) / 4) * e, A here already holds that constant
	addMod(g, t, bb, t)
	mulMod(g, s.Z1, e, t)
}

// mulMxz drives the Montgomery-ladder scalar multiplication. p must be
// affine (Z == 1); m is consumed bit by bit from the top, and cswap keeps
// both the ladder's memory access pattern and its instruction sequence
// independent of m.
func (g *Group) mulMxz(rng io.Reader, m *fe.Elem, p *JacobianPoint, rnd bool) (*JacobianPoint, error) {
	s := &mxzState{
		X1: fe.FromUint64(1),
		Z1: fe.FromUint64(0),
		X2: new(fe.Elem).SetNat(p.X),
		Z2: fe.FromUint64(1),
	}

	if rnd {
		if err := g.randomizeMxz(rng, &JacobianPoint{X: s.X2, Y: fe.FromUint64(1), Z: s.Z2}); err != nil {
			return nil, err
		}
	}

	nBits := g.Bits
	var prevBit fe.Choice
	for i := nBits - 1; i >= 0; i-- {
		bit := fe.Choice(m.Bit(i))
		swap := fe.Choice(bit ^ prevBit)
		fe.CondSwap(s.X1, s.X2, swap)
		fe.CondSwap(s.Z1, s.Z2, swap)
		prevBit = bit

		g.doubleAddMxz(p.X, s)
	}
	fe.CondSwap(s.X1, s.X2, prevBit)
	fe.CondSwap(s.Z1, s.Z2, prevBit)

	r := &JacobianPoint{X: s.X1, Y: fe.FromUint64(1), Z: s.Z1}
	if err := g.normalizeMxz(r); err != nil {
		return nil, err
	}

	zeroizeScratch(s.X2, s.Z2)
	return r, nil
}
