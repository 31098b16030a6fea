package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest identifies content by its SHA-256.
type Digest [sha256.Size]byte

// HashBytes digests raw content.
func HashBytes(b []byte) Digest {
	return sha256.Sum256(b)
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports whether the digest was never set.
func (d Digest) IsZero() bool {
	return d == Digest{}
}
