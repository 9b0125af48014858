package ecp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurveInfoByID(t *testing.T) {
	cases := []struct {
		id    CurveID
		name  string
		tlsID uint16
		bits  int
	}{
		{Secp256r1, "secp256r1", 23, 256},
		{Secp384r1, "secp384r1", 24, 384},
		{X25519, "x25519", 29, 255},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ci, ok := CurveInfoByID(c.id)
			require.True(t, ok)
			assert.Equal(t, c.name, ci.Name)
			assert.Equal(t, c.tlsID, ci.TLSID)
			assert.Equal(t, c.bits, ci.Bits)
		})
	}

	_, ok := CurveInfoByID(CurveNone)
	assert.False(t, ok)
}

func TestCurveInfoByTLSID(t *testing.T) {
	ci, err := CurveInfoByTLSID(23)
	require.NoError(t, err)
	assert.Equal(t, Secp256r1, ci.ID)

	_, err = CurveInfoByTLSID(0xffff)
	assert.ErrorIs(t, err, ErrFeatureUnavailable)
}

func TestPreferredCurveIDsOrdering(t *testing.T) {
	ids := PreferredCurveIDs()
	require.Len(t, ids, 3)
	assert.Equal(t, Secp256r1, ids[0])
}

func TestGroupForUnknown(t *testing.T) {
	_, err := GroupFor(CurveNone)
	assert.ErrorIs(t, err, ErrFeatureUnavailable)
}

func TestGroupForIsSingleton(t *testing.T) {
	g1, err := GroupFor(Secp256r1)
	require.NoError(t, err)
	g2, err := GroupFor(Secp256r1)
	require.NoError(t, err)
	assert.Same(t, g1, g2)
}
