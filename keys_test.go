package ecp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyRoundTrip(t *testing.T) {
	for _, id := range []CurveID{Secp256r1, Secp384r1, X25519} {
		g, err := GroupFor(id)
		require.NoError(t, err)

		rng := deterministicReader(uint64(id) + 100)
		kp, err := GenerateKey(rng, id)
		require.NoError(t, err)
		defer kp.Destroy()

		assert.NoError(t, g.CheckPrivateKey(kp.D))
		assert.NoError(t, g.CheckPublicKey(kp.Q))
	}
}

func TestGenerateKeyUnknownCurve(t *testing.T) {
	rng := deterministicReader(1)
	_, err := GenerateKey(rng, CurveNone)
	assert.ErrorIs(t, err, ErrFeatureUnavailable)
}

func TestDestroyZeroizesPrivateScalar(t *testing.T) {
	rng := deterministicReader(2)
	kp, err := GenerateKey(rng, Secp256r1)
	require.NoError(t, err)

	kp.Destroy()
	assert.True(t, kp.D.EqZero() == 1)

	// Safe to call twice, and safe on a zero-value Keypair.
	kp.Destroy()
	(&Keypair{}).Destroy()
}

func TestCheckPrivateKeyRejectsOutOfRange(t *testing.T) {
	g, err := GroupFor(Secp256r1)
	require.NoError(t, err)

	zero := fromUint64ForTest(0)
	assert.ErrorIs(t, g.CheckPrivateKey(zero), ErrInvalid)

	n, err := GroupFor(Secp256r1)
	require.NoError(t, err)
	nVal := n.N.Nat()
	assert.ErrorIs(t, g.CheckPrivateKey(nVal), ErrInvalid)
}

func TestCheckPublicKeyRejectsOffCurvePoint(t *testing.T) {
	g, err := GroupFor(Secp256r1)
	require.NoError(t, err)

	bad := &AffinePoint{X: g.Gx, Y: fromUint64ForTest(1)}
	assert.ErrorIs(t, g.CheckPublicKey(bad), ErrInvalid)
}
