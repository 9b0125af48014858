package ecp

import "errors"

// The closed error set this package returns. Every exported operation that can
// fail returns one of these (possibly wrapped with extra context via
// fmt.Errorf's %w), never a bare ad-hoc error, so callers can dispatch on
// errors.Is.
var (
	// ErrBadInputData marks malformed wire data, a length mismatch, or
	// otherwise invalid caller-supplied input.
	ErrBadInputData = errors.New("ecp: bad input data")

	// ErrFeatureUnavailable marks a well-formed request for something this
	// build doesn't support: an unknown curve id, a compressed point, a
	// non-named-curve ECParameters record.
	ErrFeatureUnavailable = errors.New("ecp: feature unavailable")

	// ErrNoSpace marks an output buffer too small to hold the encoded
	// result.
	ErrNoSpace = errors.New("ecp: output buffer too small")

	// ErrRandomFailed marks exhaustion of a bounded rejection-sampling
	// retry budget (10 attempts) or a failing RNG.
	ErrRandomFailed = errors.New("ecp: random generation failed")

	// ErrInvalid marks a group-level invariant violation: a point that
	// fails its curve equation, a scalar out of range, non-affine input
	// where affine was required.
	ErrInvalid = errors.New("ecp: invalid point or scalar")

	// ErrInternal marks an assertion failure that should be unreachable in
	// correct use (e.g. a group order that is not odd, or key generation
	// yielding the point at infinity). It is never
	// expected to surface outside of a programming error in this package
	// or a caller that bypassed the documented preconditions.
	ErrInternal = errors.New("ecp: internal invariant violation")
)
