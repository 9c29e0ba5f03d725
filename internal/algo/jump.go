// Package algo provides the bundled key-to-bucket hash algorithms the
// engine's binaries plug in. All of them key off xxhash64 of the payload and
// map the digest into an inclusive integer range.
package algo

import (
	"github.com/cespare/xxhash/v2"
)

// JumpXXH64 is Lamping & Veach's jump consistent hash over the xxhash64
// digest of the key, with the seed folded in by XOR.
type JumpXXH64 struct{}

// Name returns the identity tag used in summary records.
func (JumpXXH64) Name() string {
	return "jump-xxh64"
}

// Hash maps key and seed to a bucket in [0, rangeEnd].
func (JumpXXH64) Hash(key []byte, seed uint64, rangeEnd uint64) uint64 {
	return jump(xxhash.Sum64(key)^seed, int64(rangeEnd)+1)
}

// jump is the jump consistent hash construction: buckets must be in
// [1, 2^62]; the result is in [0, numBuckets).
func jump(key uint64, numBuckets int64) uint64 {
	var b int64 = -1
	var j int64
	for j < numBuckets {
		b = j
		key = key*2862933555777941757 + 1
		j = int64(float64(b+1) * (float64(int64(1)<<31) / float64((key>>33)+1)))
	}
	return uint64(b)
}
