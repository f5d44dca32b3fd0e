package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/ludo-technologies/laast/domain"
)

// Size is the digest length in bytes for every supported algorithm
const Size = 32

// Digest is a fixed-size content hash of source bytes
type Digest [Size]byte

// String returns the lowercase hex encoding of the digest
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// MarshalText encodes the digest as hex for JSON and YAML output
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// IsZero reports whether the digest was never computed
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// Hasher computes content digests. It holds no state beyond the algorithm
// choice and is safe for concurrent use.
type Hasher struct {
	algorithm string
}

// NewHasher creates a hasher for the given algorithm ("sha256" or "blake3").
// An empty name selects the default.
func NewHasher(algorithm string) (*Hasher, error) {
	switch algorithm {
	case "":
		algorithm = domain.DefaultHashAlgorithm
	case domain.HashAlgorithmSHA256, domain.HashAlgorithmBLAKE3:
	default:
		return nil, domain.NewConfigError(fmt.Sprintf("unsupported hash algorithm: %s", algorithm), nil)
	}
	return &Hasher{algorithm: algorithm}, nil
}

// Algorithm returns the configured algorithm name
func (h *Hasher) Algorithm() string {
	return h.algorithm
}

// Digest hashes source. It depends only on the bytes, never on the
// language or the tree built from them.
func (h *Hasher) Digest(source []byte) Digest {
	if h.algorithm == domain.HashAlgorithmBLAKE3 {
		return Digest(blake3.Sum256(source))
	}
	return Digest(sha256.Sum256(source))
}

// Sum hashes source with the default algorithm
func Sum(source []byte) Digest {
	return Digest(sha256.Sum256(source))
}
