package ecp

import (
	"io"

	"github.com/tempesta-tls/ecp/internal/fe"
)

// keys.go covers keypair generation and the two public/private validation
// checks.

// Keypair is a private scalar D and its corresponding public point Q,
// tagged with the curve they belong to. D MUST be zeroized once the
// keypair is no longer needed — call Destroy.
type Keypair struct {
	Curve CurveID
	D     *fe.Elem
	Q     *AffinePoint
}

// Destroy zeroizes the private scalar in place. Safe to call more than
// once; safe to call on a zero-value Keypair.
func (k *Keypair) Destroy() {
	if k == nil || k.D == nil {
		return
	}
	fe.Zeroize(k.D)
}

// GenerateKey draws a private scalar appropriate to the curve's type,
// then derives the public point as D*G (with the DPA
// coordinate-randomization countermeasure enabled).
func GenerateKey(rng io.Reader, id CurveID) (*Keypair, error) {
	g, err := GroupFor(id)
	if err != nil {
		return nil, err
	}

	var d *fe.Elem
	switch g.Type {
	case Montgomery:
		d, err = genPrivateMontgomery(rng, g)
	case ShortWeierstrass:
		d, err = genPrivateWeierstrass(rng, g)
	default:
		err = ErrFeatureUnavailable
	}
	if err != nil {
		return nil, err
	}

	q, err := g.MulG(rng, d, true)
	if err != nil {
		fe.Zeroize(d)
		return nil, err
	}
	aff, isInf := g.Affine(q)
	if isInf {
		fe.Zeroize(d)
		return nil, ErrInternal
	}

	log().Debug("ecp: generated keypair", "curve", g.Name)
	return &Keypair{Curve: id, D: d, Q: aff}, nil
}

// genPrivateMontgomery draws a clamped X25519 scalar per RFC 7748 §5:
// clear the low 3 bits (cofactor-8 clearing), clear the top bit, set the
// second-highest bit. The buffer is big-endian (this package's byte
// convention throughout), so clamping touches buf[len-1] and buf[0].
func genPrivateMontgomery(rng io.Reader, g *Group) (*fe.Elem, error) {
	buf := make([]byte, g.byteLength())
	defer fe.ZeroizeBytes(buf)
	if err := fe.FillRandom(rng, buf); err != nil {
		return nil, ErrRandomFailed
	}

	buf[len(buf)-1] &= 0xf8
	buf[0] &= 0x7f
	buf[0] |= 0x40

	return fe.FromBytes(buf), nil
}

// genPrivateWeierstrass is a rejection-sampling loop: draw bytes until
// 1 <= d < N, bounded to 10 attempts, the same retry budget every
// bounded-random loop in this package uses.
func genPrivateWeierstrass(rng io.Reader, g *Group) (*fe.Elem, error) {
	buf := make([]byte, g.byteLength())
	defer fe.ZeroizeBytes(buf)
	one := new(fe.Elem).SetUint64(1)

	for attempt := 0; attempt < 10; attempt++ {
		if err := fe.FillRandom(rng, buf); err != nil {
			return nil, ErrRandomFailed
		}
		d := fe.FromBytes(buf)
		if d.Cmp(one) >= 0 && d.CmpMod(g.N) < 0 {
			return d, nil
		}
	}
	return nil, ErrRandomFailed
}

// CheckPublicKey validates an incoming public point. For short
// Weierstrass curves this checks the point lies on the curve
// (y^2 = x^3 + A x + B mod P, with the A = -3 fast path), unconditionally
// rather than only in debug builds (see DESIGN.md for that decision). For
// Montgomery curves only the encoded x-coordinate's range is checked, per
// RFC 7748: every x in [0, P) is a valid input to the ladder.
func (g *Group) CheckPublicKey(a *AffinePoint) error {
	switch g.Type {
	case Montgomery:
		if a.X.CmpMod(g.P) >= 0 {
			log().Warn("ecp: rejected public key", "curve", g.Name, "reason", "x out of range")
			return ErrInvalid
		}
		return nil
	case ShortWeierstrass:
		return g.checkWeierstrassPoint(a)
	default:
		return ErrFeatureUnavailable
	}
}

func (g *Group) checkWeierstrassPoint(a *AffinePoint) error {
	if a.X.CmpMod(g.P) >= 0 || a.Y.CmpMod(g.P) >= 0 {
		log().Warn("ecp: rejected public key", "curve", g.Name, "reason", "coordinate out of range")
		return ErrInvalid
	}

	lhs := sqrMod(g, new(fe.Elem), a.Y)

	rhs := new(fe.Elem)
	sqrMod(g, rhs, a.X)
	mulMod(g, rhs, rhs, a.X)

	if g.AIsMinus3() {
		ax3 := new(fe.Elem)
		double2(g, ax3, a.X)
		addMod(g, ax3, ax3, a.X)
		subMod(g, rhs, rhs, ax3)
	} else {
		ax := mulMod(g, new(fe.Elem), g.A, a.X)
		addMod(g, rhs, rhs, ax)
	}
	addMod(g, rhs, rhs, g.B)

	if lhs.Cmp(rhs) != 0 {
		log().Warn("ecp: rejected public key", "curve", g.Name, "reason", "not on curve")
		return ErrInvalid
	}
	return nil
}

// CheckPrivateKey validates a private scalar. Short Weierstrass:
// 1 <= d < N. Montgomery: d must have the RFC 7748 clamped shape (this
// only rejects scalars that could not have come from genPrivateMontgomery
// or an equivalently clamped peer implementation).
func (g *Group) CheckPrivateKey(d *fe.Elem) error {
	switch g.Type {
	case Montgomery:
		buf := d.Bytes()
		want := make([]byte, g.byteLength())
		copy(want[len(want)-len(buf):], buf)
		if want[len(want)-1]&0x07 != 0 {
			return ErrInvalid
		}
		if want[0]&0x80 != 0 || want[0]&0x40 == 0 {
			return ErrInvalid
		}
		return nil
	case ShortWeierstrass:
		one := new(fe.Elem).SetUint64(1)
		if d.Cmp(one) < 0 || d.CmpMod(g.N) >= 0 {
			return ErrInvalid
		}
		return nil
	default:
		return ErrFeatureUnavailable
	}
}
