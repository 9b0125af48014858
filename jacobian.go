package ecp

import (
	"io"

	"github.com/tempesta-tls/ecp/internal/fe"
)

// These primitives cover Jacobian-coordinate arithmetic for short
// Weierstrass curves: normalize, batch-normalize (Montgomery's trick),
// double, mixed add, safe-invert, and coordinate randomization, all
// expressed against the safenum-backed fe.Elem substrate.

// double2 computes 2*a mod P into z, expressed as a self-add since the
// field layer's natural doubling primitive is ModAdd rather than a raw
// shift+normalize.
func double2(g *Group, z, a *fe.Elem) *fe.Elem {
	return addMod(g, z, a, a)
}

// normalizeJacobian rescales pt so Z == 1. No-op on the point at infinity.
// Cost: one modular inversion.
func (g *Group) normalizeJacobian(pt *JacobianPoint) error {
	if pt.IsZero() {
		return nil
	}

	zi := new(fe.Elem).ModInverse(pt.Z, g.P)
	zzi := sqrMod(g, new(fe.Elem), zi)

	mulMod(g, pt.X, pt.X, zzi)
	mulMod(g, pt.Y, pt.Y, zzi)
	mulMod(g, pt.Y, pt.Y, zi)
	pt.Z.SetUint64(1)

	return nil
}

// normalizeJacobianMany batch-normalizes pts with a single inversion using
// Montgomery's trick. Returns ErrInvalid if any input Z is zero — callers
// (the comb precompute path) must guarantee this by construction.
func (g *Group) normalizeJacobianMany(pts []*JacobianPoint) error {
	t := len(pts)
	if t == 0 {
		return nil
	}
	if t == 1 {
		if pts[0].IsZero() {
			return ErrInvalid
		}
		return g.normalizeJacobian(pts[0])
	}

	c := make([]*fe.Elem, t)
	c[0] = new(fe.Elem).SetNat(pts[0].Z)
	for i := 1; i < t; i++ {
		c[i] = mulMod(g, new(fe.Elem), c[i-1], pts[i].Z)
	}

	if fe.Zero(c[t-1]) {
		return ErrInvalid
	}
	u := new(fe.Elem).ModInverse(c[t-1], g.P)

	for i := t - 1; i >= 0; i-- {
		var zi *fe.Elem
		if i == 0 {
			zi = new(fe.Elem).SetNat(u)
		} else {
			zi = mulMod(g, new(fe.Elem), u, c[i-1])
			mulMod(g, u, u, pts[i].Z)
		}

		zzi := sqrMod(g, new(fe.Elem), zi)
		mulMod(g, pts[i].X, pts[i].X, zzi)
		mulMod(g, pts[i].Y, pts[i].Y, zzi)
		mulMod(g, pts[i].Y, pts[i].Y, zi)
		pts[i].Z.SetUint64(1)
	}

	return nil
}

// doubleJacobian computes R = 2P, formula dbl-1998-cmo-2. Two paths by
// curve parameter A: the NIST A = -3 fast path (g.A == nil) and the
// generic path.
func (g *Group) doubleJacobian(p *JacobianPoint) *JacobianPoint {
	m := new(fe.Elem)
	s := new(fe.Elem)
	t := new(fe.Elem)
	u := new(fe.Elem)

	zIsOne := p.Z.Cmp(new(fe.Elem).SetUint64(1)) == 0

	if g.AIsMinus3() {
		// M = 3(X + Z^2)(X - Z^2)
		if !zIsOne {
			sqrMod(g, s, p.Z)
		} else {
			s.SetUint64(1)
		}
		addMod(g, t, p.X, s)
		subMod(g, u, p.X, s)
		mulMod(g, s, t, u)
		m.SetNat(s)
		double2(g, m, m)
		addMod(g, m, m, s)
	} else {
		// M = 3 X^2 + A Z^4
		sqrMod(g, s, p.X)
		m.SetNat(s)
		double2(g, m, m)
		addMod(g, m, m, s)
		sqrMod(g, t, p.Z)
		sqrMod(g, t, t)
		mulMod(g, t, t, g.A)
		addMod(g, m, m, t)
	}

	// S = 4 X Y^2
	sqrMod(g, t, p.Y)
	double2(g, t, t)
	mulMod(g, s, p.X, t)
	double2(g, s, s)

	// U = 8 Y^4
	sqrMod(g, u, t)
	double2(g, u, u)

	// T = M^2 - 2S
	sqrMod(g, t, m)
	subMod(g, t, t, s)
	subMod(g, t, t, s)

	// S = M(S - T) - U
	subMod(g, s, s, t)
	mulMod(g, s, s, m)
	subMod(g, s, s, u)

	// U = 2 Y Z
	if !zIsOne {
		mulMod(g, u, p.Y, p.Z)
	} else {
		u.SetNat(p.Y)
	}
	double2(g, u, u)

	return &JacobianPoint{X: t, Y: s, Z: u}
}

// addMixed computes R = P + Q, mixed Jacobian/affine addition (formula
// madd-2008-g). Q must be affine (Z == 1); this invariant is guaranteed by
// construction everywhere this is called internally (comb table entries
// and MulAdd's second operand are always normalized before use).
func (g *Group) addMixed(p, q *JacobianPoint) (*JacobianPoint, error) {
	if p.IsZero() {
		return q.Clone(), nil
	}
	if q.Z.Cmp(new(fe.Elem).SetUint64(1)) != 0 {
		return nil, ErrInvalid
	}
	if q.IsZero() {
		// Unreachable given Q.Z == 1 was just checked, kept for clarity:
		// a Z == 1 point can never also be Z == 0.
		return p.Clone(), nil
	}

	t1 := new(fe.Elem)
	t2 := new(fe.Elem)
	t3 := new(fe.Elem)
	t4 := new(fe.Elem)

	pzIsOne := p.Z.Cmp(new(fe.Elem).SetUint64(1)) == 0
	if pzIsOne {
		subMod(g, t1, q.X, p.X)
		subMod(g, t2, q.Y, p.Y)
	} else {
		sqrMod(g, t1, p.Z)
		mulMod(g, t2, t1, p.Z)
		mulMod(g, t1, t1, q.X)
		mulMod(g, t2, t2, q.Y)
		subMod(g, t1, t1, p.X)
		subMod(g, t2, t2, p.Y)
	}

	if fe.Zero(t1) {
		if fe.Zero(t2) {
			return g.doubleJacobian(p), nil
		}
		return infinity(), nil
	}

	z := new(fe.Elem)
	if pzIsOne {
		z.SetNat(t1)
	} else {
		mulMod(g, z, p.Z, t1)
	}

	sqrMod(g, t3, t1)
	mulMod(g, t4, t3, t1)
	mulMod(g, t3, t3, p.X)
	double2(g, t1, t3)

	x := new(fe.Elem)
	sqrMod(g, x, t2)
	subMod(g, x, x, t1)
	subMod(g, x, x, t4)

	subMod(g, t3, t3, x)
	mulMod(g, t3, t3, t2)
	mulMod(g, t4, t4, p.Y)
	y := new(fe.Elem)
	subMod(g, y, t3, t4)

	return &JacobianPoint{X: x, Y: y, Z: z}, nil
}

// safeInvertJacobian conditionally negates q in place: q.Y ← P - q.Y when
// inv == fe.Yes and q.Y != 0, without branching on inv. The caller ensures
// its recoded sign digit comes from the constant-time comb path, so
// "invert or not" itself is secret.
func (g *Group) safeInvertJacobian(q *JacobianPoint, inv fe.Choice) {
	negY := new(fe.Elem)
	negMod(g, negY, q.Y)

	nonzero := fe.ChoiceNot(q.Y.EqZero())
	cond := fe.ChoiceAnd(inv, nonzero)

	q.Y.CondAssign(cond, negY)
}

// randomizeJacobian is a DPA countermeasure:
// (X, Y, Z) -> (l^2 X, l^3 Y, l Z) for a fresh random l in (1, P). Bounded
// to 10 attempts, returning ErrRandomFailed on exhaustion.
func (g *Group) randomizeJacobian(rng io.Reader, pt *JacobianPoint) error {
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

	zIsOne := pt.Z.Cmp(one) == 0
	if !zIsOne {
		mulMod(g, pt.Z, pt.Z, l)
	} else {
		pt.Z.SetNat(l)
	}

	ll := sqrMod(g, new(fe.Elem), l)
	mulMod(g, pt.X, pt.X, ll)

	mulMod(g, ll, ll, l)
	mulMod(g, pt.Y, pt.Y, ll)

	zeroizeScratch(ll)
	return nil
}
