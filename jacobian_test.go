package ecp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempesta-tls/ecp/internal/fe"
)

func affineEqual(t *testing.T, g *Group, a, b *JacobianPoint) {
	t.Helper()
	na := a.Clone()
	nb := b.Clone()
	require.NoError(t, g.normalizeJacobian(na))
	require.NoError(t, g.normalizeJacobian(nb))
	assert.Equal(t, 0, na.X.Cmp(nb.X), "X mismatch")
	assert.Equal(t, 0, na.Y.Cmp(nb.Y), "Y mismatch")
}

func TestGeneratorIsOnCurveP256(t *testing.T) {
	g, err := GroupFor(Secp256r1)
	require.NoError(t, err)
	a := &AffinePoint{X: new(fe.Elem).SetNat(g.Gx), Y: new(fe.Elem).SetNat(g.Gy)}
	require.NoError(t, g.CheckPublicKey(a))
}

func TestGeneratorIsOnCurveP384(t *testing.T) {
	g, err := GroupFor(Secp384r1)
	require.NoError(t, err)
	a := &AffinePoint{X: new(fe.Elem).SetNat(g.Gx), Y: new(fe.Elem).SetNat(g.Gy)}
	require.NoError(t, g.CheckPublicKey(a))
}

func TestDoubleMatchesAddMixedSelf(t *testing.T) {
	for _, id := range []CurveID{Secp256r1, Secp384r1} {
		g, err := GroupFor(id)
		require.NoError(t, err)

		gen := g.generator()
		viaDouble := g.doubleJacobian(gen)
		viaAdd, err := g.addMixed(gen, gen)
		require.NoError(t, err)

		affineEqual(t, g, viaDouble, viaAdd)
	}
}

func TestAddMixedWithInfinity(t *testing.T) {
	g, err := GroupFor(Secp256r1)
	require.NoError(t, err)

	gen := g.generator()
	sum, err := g.addMixed(infinity(), gen)
	require.NoError(t, err)
	affineEqual(t, g, gen, sum)
}

func TestSafeInvertJacobian(t *testing.T) {
	g, err := GroupFor(Secp256r1)
	require.NoError(t, err)

	p := g.generator()
	require.NoError(t, g.normalizeJacobian(p))

	neg := p.Clone()
	g.safeInvertJacobian(neg, fe.Yes)

	sum, err := g.addMixed(FromAffine(&AffinePoint{X: p.X, Y: p.Y}), neg)
	require.NoError(t, err)
	sum2 := sum.Clone()
	require.NoError(t, g.normalizeJacobian(sum2))
	assert.True(t, sum2.IsZero(), "P + (-P) must be the point at infinity")
}

func TestNormalizeJacobianManyMatchesSingle(t *testing.T) {
	g, err := GroupFor(Secp256r1)
	require.NoError(t, err)

	gen := g.generator()
	p1 := g.doubleJacobian(gen)
	p2 := g.doubleJacobian(p1)
	p3 := g.doubleJacobian(p2)

	single := []*JacobianPoint{p1.Clone(), p2.Clone(), p3.Clone()}
	for _, p := range single {
		require.NoError(t, g.normalizeJacobian(p))
	}

	batch := []*JacobianPoint{p1.Clone(), p2.Clone(), p3.Clone()}
	require.NoError(t, g.normalizeJacobianMany(batch))

	for i := range single {
		assert.Equal(t, 0, single[i].X.Cmp(batch[i].X))
		assert.Equal(t, 0, single[i].Y.Cmp(batch[i].Y))
	}
}

func TestRandomizeJacobianPreservesAffine(t *testing.T) {
	g, err := GroupFor(Secp256r1)
	require.NoError(t, err)

	gen := g.generator()
	rng := deterministicReader(0x42)

	randomized := gen.Clone()
	require.NoError(t, g.randomizeJacobian(rng, randomized))

	affineEqual(t, g, gen, randomized)
}
