package ecp

import "github.com/tempesta-tls/ecp/internal/fe"

// JacobianPoint is a group element in projective form. For short
// Weierstrass curves it is read as Jacobian coordinates (x, y) =
// (X/Z², Y/Z³); for Montgomery curves only X and Z are meaningful
// (x = X/Z) and Y is carried as the constant 1 so the struct stays
// uniform across both curve types.
//
// The point at infinity is Z == 0, with X and Y held at the fixed (1, 1)
// so every field remains a valid, well-formed field element.
type JacobianPoint struct {
	X, Y, Z *fe.Elem
}

// AffinePoint is a normalized (Z == 1) point, used at the package boundary:
// wire codecs and public-key validation both operate in affine form.
type AffinePoint struct {
	X, Y *fe.Elem
}

// infinity returns a fresh point-at-infinity: (1, 1, 0).
func infinity() *JacobianPoint {
	return &JacobianPoint{
		X: fe.FromUint64(1),
		Y: fe.FromUint64(1),
		Z: fe.FromUint64(0),
	}
}

// IsZero reports whether pt is the point at infinity (Z == 0). This is a
// property of the encoded group element, not a secret, so it is fine to
// branch on: it gates wire encoding and the trivial-case short circuits in
// point addition, none of which occur on a secret-dependent path during
// scalar multiplication itself.
func (pt *JacobianPoint) IsZero() bool {
	return fe.Zero(pt.Z)
}

// Clone returns an independent deep copy of pt.
func (pt *JacobianPoint) Clone() *JacobianPoint {
	return &JacobianPoint{
		X: new(fe.Elem).SetNat(pt.X),
		Y: new(fe.Elem).SetNat(pt.Y),
		Z: new(fe.Elem).SetNat(pt.Z),
	}
}

// setZero overwrites pt in place with the point at infinity.
func (pt *JacobianPoint) setZero() {
	pt.X.SetUint64(1)
	pt.Y.SetUint64(1)
	pt.Z.SetUint64(0)
}

// copyFrom overwrites pt in place with a copy of src.
func (pt *JacobianPoint) copyFrom(src *JacobianPoint) {
	pt.X.SetNat(src.X)
	pt.Y.SetNat(src.Y)
	pt.Z.SetNat(src.Z)
}

// Affine returns the normalized affine coordinates of pt without mutating
// pt. Returns (nil, true) for the point at infinity.
func (g *Group) Affine(pt *JacobianPoint) (*AffinePoint, bool) {
	cp := pt.Clone()
	if err := g.normalizeJacobian(cp); err != nil {
		return nil, false
	}
	if cp.IsZero() {
		return nil, true
	}
	return &AffinePoint{X: cp.X, Y: cp.Y}, false
}

// FromAffine lifts an affine point into Jacobian coordinates with Z = 1.
func FromAffine(a *AffinePoint) *JacobianPoint {
	return &JacobianPoint{
		X: new(fe.Elem).SetNat(a.X),
		Y: new(fe.Elem).SetNat(a.Y),
		Z: fe.FromUint64(1),
	}
}

// Generator returns a fresh copy of the group's base point G, in Jacobian
// (Z = 1) form.
func (g *Group) Generator() *JacobianPoint {
	return g.generator()
}

// zeroizeScratch zeroizes a set of scratch field elements used by an
// arithmetic primitive before it returns: scalar multiplication
// intermediates derived from secret material are zeroized before release.
// Only elements derived from secret material should be passed here;
// public scratch (e.g. table indices) need not be.
func zeroizeScratch(elems ...*fe.Elem) {
	for _, e := range elems {
		fe.Zeroize(e)
	}
}
