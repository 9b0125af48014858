package ecp

import (
	"io"

	"github.com/tempesta-tls/ecp/internal/fe"
)

// scalarmult.go holds the general-purpose entry points that dispatch to
// the comb method or the Montgomery ladder depending on curve type, plus
// the non-constant-time shortcut path and the two-scalar muladd helper
// used by signature verification.

// Mul computes R = m*P on group g, dispatching to the comb method
// (ShortWeierstrass) or the Montgomery ladder (Montgomery), and validates
// both the scalar and the input point first: m == 0 and P at infinity are
// rejected before any arithmetic runs (P is not checked against the curve
// equation here). rnd selects whether the DPA
// coordinate-randomization countermeasure runs; callers computing a value
// that will be revealed to an adversary (e.g. in a side-channel-exposed
// setting) should always pass true.
//
// Mul always takes the constant-time comb/ladder path: it never consults
// mulShortcuts, so it executes the same sequence of operations regardless
// of m, including when m is a secret scalar (e.g. GenerateKey's freshly
// sampled private key). The shortcut path is only ever taken from
// MulAdd, whose scalars are public by construction.
func (g *Group) Mul(rng io.Reader, m *fe.Elem, p *JacobianPoint, rnd bool) (*JacobianPoint, error) {
	if fe.Zero(m) {
		return nil, ErrBadInputData
	}
	if err := g.CheckPubkeyJacobian(p); err != nil {
		return nil, err
	}

	switch g.Type {
	case ShortWeierstrass:
		aff := p.Clone()
		if err := g.normalizeJacobian(aff); err != nil {
			return nil, err
		}
		return g.mulComb(rng, m, aff, rnd)
	case Montgomery:
		aff := p.Clone()
		if err := g.normalizeMxz(aff); err != nil {
			return nil, err
		}
		return g.mulMxz(rng, m, aff, rnd)
	default:
		return nil, ErrFeatureUnavailable
	}
}

// MulG is Mul specialized to the group generator, the hot path of key
// generation and ECDHE. ShortWeierstrass dispatch reuses the group's
// cached comb table for G transparently (comb.go's generatorComb).
func (g *Group) MulG(rng io.Reader, m *fe.Elem, rnd bool) (*JacobianPoint, error) {
	return g.Mul(rng, m, g.generator(), rnd)
}

// mulShortcuts is a fast path for the two scalar values m == 1 and
// m == -1 (== N-1). It is NOT constant time and must only ever be called
// with a public scalar: mulPublic is its sole caller, reached only from
// MulAdd's public-scalar verification path. Returns (nil, false) when
// neither applies, in which case the caller falls through to the
// constant-time comb/ladder path via Mul.
func (g *Group) mulShortcuts(m *fe.Elem, p *JacobianPoint) (*JacobianPoint, bool) {
	one := new(fe.Elem).SetUint64(1)
	if m.Cmp(one) == 0 {
		return p.Clone(), true
	}

	if g.Type != ShortWeierstrass {
		// Montgomery's x-only representation can't express "negate Y"
		// meaningfully (P and -P already share an x-coordinate), so
		// there's no m == -1 shortcut to take here.
		return nil, false
	}

	nMinus1 := new(fe.Elem).ModSub(new(fe.Elem).SetUint64(0), one, g.N)
	if m.Cmp(nMinus1) == 0 {
		r := p.Clone()
		if err := g.normalizeJacobian(r); err != nil {
			return nil, false
		}
		negMod(g, r.Y, r.Y)
		return r, true
	}

	return nil, false
}

// mulPublic computes m*P for a scalar and point that are both public,
// taking the mulShortcuts fast path when it applies before falling back
// to the general Mul. Only ever call this with a public scalar — never
// with a private key or any value derived from one.
func (g *Group) mulPublic(rng io.Reader, m *fe.Elem, p *JacobianPoint) (*JacobianPoint, error) {
	if fe.Zero(m) {
		return nil, ErrBadInputData
	}
	if err := g.CheckPubkeyJacobian(p); err != nil {
		return nil, err
	}

	if shortcut, ok := g.mulShortcuts(m, p); ok {
		return shortcut, nil
	}

	return g.Mul(rng, m, p, false)
}

// MulAdd computes R = m*G + n*Q, the muladd operation used for
// two-scalar verification equations (e.g. ECDSA). It is deliberately NOT
// constant time: both scalars and Q are public in every caller of this
// operation (signature verification never handles a secret scalar through
// this path), so it forgoes the DPA countermeasures Mul/MulG apply, and
// takes the mulShortcuts fast path through mulPublic.
func (g *Group) MulAdd(rng io.Reader, m *fe.Elem, n *fe.Elem, q *JacobianPoint) (*JacobianPoint, error) {
	mg, err := g.mulPublic(rng, m, g.generator())
	if err != nil {
		return nil, err
	}
	nq, err := g.mulPublic(rng, n, q)
	if err != nil {
		return nil, err
	}

	if err := g.normalizeJacobian(nq); err != nil {
		return nil, err
	}
	sum, err := g.addMixed(mg, nq)
	if err != nil {
		return nil, err
	}
	if err := g.normalizeJacobian(sum); err != nil {
		return nil, err
	}
	return sum, nil
}

// CheckPubkeyJacobian is the Jacobian-stage half of CheckPublicKey
// (keys.go): rejects the point at infinity unconditionally, since no
// curve's well-formed public key is ever the identity element.
func (g *Group) CheckPubkeyJacobian(p *JacobianPoint) error {
	if p.IsZero() {
		return ErrInvalid
	}
	return nil
}
