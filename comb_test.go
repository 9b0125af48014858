package ecp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempesta-tls/ecp/internal/fe"
)

func TestMulCombSmallScalars(t *testing.T) {
	g, err := GroupFor(Secp256r1)
	require.NoError(t, err)
	rng := deterministicReader(1)
	gen := g.generator()

	three := new(fe.Elem).SetUint64(3)
	got, err := g.mulComb(rng, three, gen, false)
	require.NoError(t, err)

	// 3G = G + G + G, built from primitives already tested independently.
	two := g.doubleJacobian(gen)
	want, err := g.addMixed(two, gen)
	require.NoError(t, err)

	affineEqual(t, g, got, want)
}

func TestMulCombByOrderIsInfinity(t *testing.T) {
	g, err := GroupFor(Secp256r1)
	require.NoError(t, err)
	rng := deterministicReader(2)
	gen := g.generator()

	n := new(fe.Elem).SetNat(g.N.Nat())
	got, err := g.mulComb(rng, n, gen, false)
	require.NoError(t, err)
	require.NoError(t, g.normalizeJacobian(got))
	assert.True(t, got.IsZero())
}

func TestMulCombByOneIsIdentity(t *testing.T) {
	g, err := GroupFor(Secp384r1)
	require.NoError(t, err)
	rng := deterministicReader(3)
	gen := g.generator()

	one := new(fe.Elem).SetUint64(1)
	got, err := g.mulComb(rng, one, gen, false)
	require.NoError(t, err)

	affineEqual(t, g, got, gen)
}

func TestSelectCombTouchesWholeTable(t *testing.T) {
	g, err := GroupFor(Secp256r1)
	require.NoError(t, err)
	gen := g.generator()

	table, err := g.precomputeComb(gen, 4, 64)
	require.NoError(t, err)

	for idx := byte(0); idx < byte(len(table)); idx++ {
		r := g.selectComb(table, len(table), idx<<1|1)
		require.NotNil(t, r)
	}
}
