package algo

import (
	"encoding/binary"
	"math/bits"

	"github.com/cespare/xxhash/v2"
)

// FastRangeXXH64 reduces a seeded xxhash64 digest into the range with the
// multiply-shift trick (the high 64 bits of digest * rangeLen), which avoids
// the modulo bias of truncated division.
type FastRangeXXH64 struct{}

// Name returns the identity tag used in summary records.
func (FastRangeXXH64) Name() string {
	return "fastrange-xxh64"
}

// Hash maps key and seed to a bucket in [0, rangeEnd].
func (FastRangeXXH64) Hash(key []byte, seed uint64, rangeEnd uint64) uint64 {
	if rangeEnd == ^uint64(0) {
		return seededSum64(key, seed)
	}
	hi, _ := bits.Mul64(seededSum64(key, seed), rangeEnd+1)
	return hi
}

// ModXXH64 reduces a seeded xxhash64 digest into the range by plain modulo.
// The reduction is slightly biased for ranges that do not divide 2^64, which
// is exactly the kind of defect the experiments are meant to expose.
type ModXXH64 struct{}

// Name returns the identity tag used in summary records.
func (ModXXH64) Name() string {
	return "mod-xxh64"
}

// Hash maps key and seed to a bucket in [0, rangeEnd].
func (ModXXH64) Hash(key []byte, seed uint64, rangeEnd uint64) uint64 {
	if rangeEnd == ^uint64(0) {
		return seededSum64(key, seed)
	}
	return seededSum64(key, seed) % (rangeEnd + 1)
}

// seededSum64 hashes the seed as an 8-byte prefix of the key, since xxhash64
// itself takes no seed parameter.
func seededSum64(key []byte, seed uint64) uint64 {
	var d xxhash.Digest
	d.Reset()
	var prefix [8]byte
	binary.LittleEndian.PutUint64(prefix[:], seed)
	d.Write(prefix[:])
	d.Write(key)
	return d.Sum64()
}
