package value

import "github.com/cespare/xxhash/v2"

// Hasher maps a key to a bucket hash.
type Hasher func(key []byte) uint64

// HashDJB2 is the multiplicative string hash objects use by default.
func HashDJB2(key []byte) uint64 {
	h := uint64(5381)
	for _, c := range key {
		h = h*33 + uint64(c)
	}
	return h
}

// HashXX spreads keys better than HashDJB2 at a slightly higher cost per key.
func HashXX(key []byte) uint64 {
	return xxhash.Sum64(key)
}
