package ecp

// CurveType distinguishes the two coordinate systems this package supports:
// short Weierstrass curves carried in Jacobian coordinates, and Montgomery
// curves carried in projective x/z coordinates. Dispatch on this is
// exhaustive everywhere it appears (scalarmult.go, keys.go) — a third
// variant would need a new case at every one of those switches.
type CurveType uint8

const (
	ShortWeierstrass CurveType = iota
	Montgomery
)

func (t CurveType) String() string {
	switch t {
	case ShortWeierstrass:
		return "short-weierstrass"
	case Montgomery:
		return "montgomery"
	default:
		return "unknown"
	}
}

// CurveID is the internal curve identifier. Stable across releases; used
// as the lookup key for the registry and as the discriminant a Keypair or
// wire-parsed group carries around.
type CurveID uint8

const (
	CurveNone CurveID = iota
	Secp256r1
	Secp384r1
	X25519
)

// CurveInfo is the printable, lookup-only metadata for a supported curve:
// internal id, TLS NamedCurve code (RFC 8422 §5.1.1), bit size, and name.
// It never carries arithmetic state — that lives in *Group, reached via
// GroupFor.
type CurveInfo struct {
	ID       CurveID
	TLSID    uint16
	Bits     int
	Name     string
	GroupFor func() *Group
}

// curveRegistry is the closed, compiled-in table of supported curves.
// Secp256r1 is listed first deliberately: PreferredCurveIDs() and any
// ClientHello/ServerHello "supported groups" listing built from this slice
// inherits a "most used first" ordering.
var curveRegistry = []CurveInfo{
	{ID: Secp256r1, TLSID: 23, Bits: 256, Name: "secp256r1", GroupFor: p256Group},
	{ID: Secp384r1, TLSID: 24, Bits: 384, Name: "secp384r1", GroupFor: p384Group},
	{ID: X25519, TLSID: 29, Bits: 255, Name: "x25519", GroupFor: x25519Group},
}

// CurveInfoByID looks up curve metadata by internal identifier. Returns
// (info, true) on success; (zero value, false) on an unknown id.
func CurveInfoByID(id CurveID) (CurveInfo, bool) {
	for _, ci := range curveRegistry {
		if ci.ID == id {
			return ci, true
		}
	}
	return CurveInfo{}, false
}

// CurveInfoByTLSID looks up curve metadata by the 16-bit TLS NamedCurve
// code (RFC 8422 §5.1.1, RFC 7071 §2). Returns ErrFeatureUnavailable for an
// unrecognized codepoint.
func CurveInfoByTLSID(tlsID uint16) (CurveInfo, error) {
	log().Debug("ecp: curve lookup by tls id", "tls_id", tlsID)
	for _, ci := range curveRegistry {
		if ci.TLSID == tlsID {
			return ci, nil
		}
	}
	return CurveInfo{}, ErrFeatureUnavailable
}

// PreferredCurveIDs returns the registry's curve ids in declared order
// (Secp256r1 first). A TLS handshake layer assembling a supported_groups
// extension can use this directly instead of re-deriving an ordering.
func PreferredCurveIDs() []CurveID {
	ids := make([]CurveID, len(curveRegistry))
	for i, ci := range curveRegistry {
		ids[i] = ci.ID
	}
	return ids
}

// GroupFor returns the immutable, process-wide Group descriptor for id, or
// ErrFeatureUnavailable if id is unknown. Groups are created once (see
// group.go's sync.Once-guarded constructors) and shared read-only by every
// caller and goroutine thereafter.
func GroupFor(id CurveID) (*Group, error) {
	ci, ok := CurveInfoByID(id)
	if !ok {
		return nil, ErrFeatureUnavailable
	}
	return ci.GroupFor(), nil
}
