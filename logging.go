package ecp

import (
	"log/slog"
	"sync/atomic"
)

// logger holds the package-wide slog handler. It defaults to slog.Default()
// so the package is silent-but-unsurprising out of the box, and can be
// redirected by an embedding TLS stack via SetLogger — the same
// inject-don't-hardcode posture applied to the RNG argument every
// operation takes.
var logger atomic.Pointer[slog.Logger]

// SetLogger overrides the logger used for the package's (non-secret)
// diagnostic messages: curve lookups, rejected public keys, generated
// keypairs. Never logs scalars, coordinates, or field elements.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	logger.Store(l)
}

func log() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}
