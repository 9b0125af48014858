package ecp

import (
	"golang.org/x/crypto/cryptobyte"

	"github.com/tempesta-tls/ecp/internal/fe"
)

// codec.go covers the SEC1 §2.3.3 uncompressed point encoding and the two
// TLS wire structures (RFC 8422 §5.4) that wrap it, built on
// golang.org/x/crypto/cryptobyte.

const (
	sec1Uncompressed byte = 0x04
	sec1Compressed02 byte = 0x02
	sec1Compressed03 byte = 0x03

	namedCurveTag byte = 3
)

// MarshalPoint encodes a into SEC1 uncompressed form: 0x04 || X || Y, each
// coordinate padded to the curve's byte length. nil encodes the point at
// infinity as the single byte 0x00, per SEC1 §2.3.3.
func (g *Group) MarshalPoint(a *AffinePoint) []byte {
	if a == nil {
		return []byte{0x00}
	}

	n := g.byteLength()
	out := make([]byte, 1+2*n)
	out[0] = sec1Uncompressed
	putFixed(out[1:1+n], a.X)
	putFixed(out[1+n:1+2*n], a.Y)
	return out
}

// UnmarshalPoint decodes a SEC1-encoded point. Returns (nil, true, nil)
// for the point-at-infinity encoding. Returns ErrFeatureUnavailable for a
// compressed-form prefix (0x02/0x03), since this package does not
// implement point decompression, and ErrBadInputData for any other
// malformed input.
func (g *Group) UnmarshalPoint(b []byte) (*AffinePoint, bool, error) {
	if len(b) == 1 && b[0] == 0x00 {
		return nil, true, nil
	}

	n := g.byteLength()
	switch {
	case len(b) == 0:
		return nil, false, ErrBadInputData
	case b[0] == sec1Compressed02 || b[0] == sec1Compressed03:
		return nil, false, ErrFeatureUnavailable
	case b[0] != sec1Uncompressed:
		return nil, false, ErrBadInputData
	case len(b) != 1+2*n:
		return nil, false, ErrBadInputData
	}

	a := &AffinePoint{
		X: fe.FromBytes(b[1 : 1+n]),
		Y: fe.FromBytes(b[1+n : 1+2*n]),
	}
	return a, false, nil
}

// putFixed writes x's big-endian bytes into dst, left-padded with zeros.
// Panics if x does not fit. Every call site here sizes dst from the
// curve's own byte length, so this happens when MarshalPoint is handed a
// coordinate wider than that length, or on a Group with an inconsistent
// byteLen.
func putFixed(dst []byte, x *fe.Elem) {
	b := x.Bytes()
	if len(b) > len(dst) {
		panic("ecp: field element does not fit in encoded width")
	}
	copy(dst[len(dst)-len(b):], b)
}

// MarshalECPoint builds the TLS ECPoint structure of RFC 8422 §5.4: a
// one-byte length prefix followed by the SEC1 encoding.
func (g *Group) MarshalECPoint(a *AffinePoint) ([]byte, error) {
	raw := g.MarshalPoint(a)
	if len(raw) > 255 {
		return nil, ErrBadInputData
	}
	var b cryptobyte.Builder
	b.AddUint8LengthPrefixed(func(child *cryptobyte.Builder) {
		child.AddBytes(raw)
	})
	return b.Bytes()
}

// UnmarshalECPoint parses a TLS ECPoint structure, returning the decoded
// point (or (nil, true) for infinity) and the number of bytes consumed
// from b.
func (g *Group) UnmarshalECPoint(b []byte) (a *AffinePoint, isInf bool, consumed int, err error) {
	s := cryptobyte.String(b)
	var raw cryptobyte.String
	if !s.ReadUint8LengthPrefixed(&raw) {
		return nil, false, 0, ErrBadInputData
	}
	consumed = len(b) - len(s)

	a, isInf, err = g.UnmarshalPoint(raw)
	return a, isInf, consumed, err
}

// MarshalECParameters builds the TLS ECParameters structure of RFC 8422
// §5.4: a one-byte curve_type (always named_curve == 3) followed by the
// 16-bit NamedCurve code.
func MarshalECParameters(ci CurveInfo) []byte {
	var b cryptobyte.Builder
	b.AddUint8(namedCurveTag)
	b.AddUint16(ci.TLSID)
	out, _ := b.Bytes()
	return out
}

// UnmarshalECParameters parses a TLS ECParameters structure. Returns
// ErrFeatureUnavailable for any curve_type other than named_curve (this
// package never supported the deprecated explicit-curve forms) and for
// an unrecognized NamedCurve id.
func UnmarshalECParameters(b []byte) (CurveInfo, int, error) {
	s := cryptobyte.String(b)
	var curveType uint8
	var tlsID uint16
	if !s.ReadUint8(&curveType) || !s.ReadUint16(&tlsID) {
		return CurveInfo{}, 0, ErrBadInputData
	}
	consumed := len(b) - len(s)

	if curveType != namedCurveTag {
		return CurveInfo{}, consumed, ErrFeatureUnavailable
	}
	ci, err := CurveInfoByTLSID(tlsID)
	return ci, consumed, err
}
