package ecp

import "github.com/tempesta-tls/ecp/internal/fe"

// fromUint64ForTest is a tiny convenience wrapper so test files don't each
// need their own import of internal/fe just to build a small scalar.
func fromUint64ForTest(x uint64) *fe.Elem {
	return fe.FromUint64(x)
}

// deterministicReader returns a reproducible io.Reader backed by a
// splitmix64 stream, used in place of crypto/rand.Reader so tests that
// exercise randomized countermeasures (coordinate randomization, the
// ladder's projective randomization) are deterministic across runs.
func deterministicReader(seed uint64) *splitmix64Reader {
	return &splitmix64Reader{state: seed}
}

type splitmix64Reader struct {
	state uint64
	buf   [8]byte
	off   int
}

func (r *splitmix64Reader) next() uint64 {
	r.state += 0x9e3779b97f4a7c15
	z := r.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func (r *splitmix64Reader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if r.off == 0 {
			v := r.next()
			r.buf[0] = byte(v)
			r.buf[1] = byte(v >> 8)
			r.buf[2] = byte(v >> 16)
			r.buf[3] = byte(v >> 24)
			r.buf[4] = byte(v >> 32)
			r.buf[5] = byte(v >> 40)
			r.buf[6] = byte(v >> 48)
			r.buf[7] = byte(v >> 56)
		}
		p[n] = r.buf[r.off]
		n++
		r.off = (r.off + 1) % 8
	}
	return n, nil
}
