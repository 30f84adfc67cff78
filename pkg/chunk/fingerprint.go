package chunk

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/binary"
)

// DigestAlgo selects the cryptographic hash used to fingerprint chunks.
// The choice is static configuration for an entire run, never per-chunk.
type DigestAlgo int

const (
	// SHA1 fingerprints chunks with crypto/sha1.
	SHA1 DigestAlgo = iota
	// MD5 fingerprints chunks with crypto/md5.
	MD5
)

// Digester reduces a chunk's bytes to the low 64 bits of a cryptographic
// digest. Implementations must be stateless: each call instantiates its
// own hash.Hash rather than reusing a package-level cached one, so chunk
// fingerprinting stays contention-free and carries no hidden state.
type Digester interface {
	Sum(data []byte) uint64
}

// NewDigester returns the Digester for the given algorithm.
func NewDigester(algo DigestAlgo) Digester {
	switch algo {
	case MD5:
		return md5Digester{}
	default:
		return sha1Digester{}
	}
}

type sha1Digester struct{}

func (sha1Digester) Sum(data []byte) uint64 {
	sum := sha1.Sum(data)
	// Only the low 64 bits of the digest are read.
	return binary.BigEndian.Uint64(sum[len(sum)-8:])
}

type md5Digester struct{}

func (md5Digester) Sum(data []byte) uint64 {
	sum := md5.Sum(data)
	return binary.BigEndian.Uint64(sum[len(sum)-8:])
}
