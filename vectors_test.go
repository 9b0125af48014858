package ecp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempesta-tls/ecp/internal/fe"
)

// TestRFC5903Secp256r1 reproduces the concrete end-to-end scenario pinned
// from RFC 5903 §8.1: derive Q_i from d_i and check it against the
// published coordinates, then derive the shared secret as d_r·Q_i — the
// one of the two paths (d_i·Q_r, d_r·Q_i) computable without also
// transcribing Q_r — and check it against the published Z.X.
func TestRFC5903Secp256r1(t *testing.T) {
	g, err := GroupFor(Secp256r1)
	require.NoError(t, err)

	dI := hexScalar(t, "C88F01F510D9AC3F70A292DAA2316DE544E9AAB8AFE84049C62A9C57862D1433")
	wantQiX := hexScalar(t, "DAD0B65394221CF9B051E1FECA5787D098DFE637FC90B9EF945D0C3772581180")
	wantQiY := hexScalar(t, "5271A0461CDB8252D61F1C456FA3E59AB1F45B33ACCF5F58389E0577B8990BB3")

	rng := deterministicReader(0xEC0D)
	qi, err := g.MulG(rng, dI, false)
	require.NoError(t, err)
	affQi, isInf := g.Affine(qi)
	require.False(t, isInf)
	assert.Equal(t, 0, affQi.X.Cmp(wantQiX), "Q_i.X mismatch")
	assert.Equal(t, 0, affQi.Y.Cmp(wantQiY), "Q_i.Y mismatch")

	dR := hexScalar(t, "C6EF9C5D78AE012A011164ACB397CE2088685D8F06BF9BE0B283AB46476BEE53")
	wantZX := hexScalar(t, "D6840F6B42F6EDAFD13116E0E12565202FEF8E9ECE7DCE03812464D04B9442DE")

	z, err := g.Mul(deterministicReader(0xEC0E), dR, FromAffine(affQi), false)
	require.NoError(t, err)
	affZ, isInf := g.Affine(z)
	require.False(t, isInf)
	assert.Equal(t, 0, affZ.X.Cmp(wantZX), "shared secret Z.X mismatch")
}

func TestTLSCodecGroupRoundTripSecp256r1(t *testing.T) {
	ci, ok := CurveInfoByID(Secp256r1)
	require.True(t, ok)
	enc := MarshalECParameters(ci)
	assert.Equal(t, []byte{0x03, 0x00, 0x17}, enc)

	got, _, err := UnmarshalECParameters(enc)
	require.NoError(t, err)
	assert.Equal(t, Secp256r1, got.ID)
}

// TestECDHAgreementSelfConsistent covers the curves the RFC 5903 vector
// above doesn't (P-384, X25519) structurally: both sides of a DH exchange
// MUST land on the same point, independent of any fixed external vector.
func TestECDHAgreementSelfConsistent(t *testing.T) {
	for _, id := range []CurveID{Secp384r1, X25519} {
		g, err := GroupFor(id)
		require.NoError(t, err)

		i, err := GenerateKey(deterministicReader(uint64(id)+1000), id)
		require.NoError(t, err)
		defer i.Destroy()

		r, err := GenerateKey(deterministicReader(uint64(id)+2000), id)
		require.NoError(t, err)
		defer r.Destroy()

		zI, err := g.Mul(deterministicReader(uint64(id)+3000), i.D, FromAffine(r.Q), true)
		require.NoError(t, err)
		zR, err := g.Mul(deterministicReader(uint64(id)+4000), r.D, FromAffine(i.Q), true)
		require.NoError(t, err)

		affI, isInfI := g.Affine(zI)
		affR, isInfR := g.Affine(zR)
		require.False(t, isInfI)
		require.False(t, isInfR)

		assert.Equal(t, 0, affI.X.Cmp(affR.X), "%s: shared X coordinate disagrees", g.Name)
	}
}

func TestMarshalRoundTripsThroughECPointForWeierstrassCurves(t *testing.T) {
	for _, id := range []CurveID{Secp256r1, Secp384r1} {
		g, err := GroupFor(id)
		require.NoError(t, err)

		a := &AffinePoint{X: g.Gx, Y: g.Gy}
		enc, err := g.MarshalECPoint(a)
		require.NoError(t, err)

		dec, isInf, _, err := g.UnmarshalECPoint(enc)
		require.NoError(t, err)
		require.False(t, isInf)
		assert.Equal(t, 0, a.X.Cmp(dec.X))
	}
}

func hexScalar(t *testing.T, s string) *fe.Elem {
	t.Helper()
	b := make([]byte, len(s)/2)
	for i := range b {
		hi := hexNibble(t, s[2*i])
		lo := hexNibble(t, s[2*i+1])
		b[i] = hi<<4 | lo
	}
	return fe.FromBytes(b)
}

func hexNibble(t *testing.T, c byte) byte {
	t.Helper()
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		t.Fatalf("invalid hex digit %q", c)
		return 0
	}
}
