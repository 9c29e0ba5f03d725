package model

// Algorithm is a key-to-bucket hash under test. Hash must be a pure function:
// the same key, seed and range always yield the same bucket within a run, and
// the bucket must fall in [0, rangeEnd].
type Algorithm interface {
	// Hash maps key and seed to a bucket in the inclusive range [0, rangeEnd].
	Hash(key []byte, seed uint64, rangeEnd uint64) uint64

	// Name returns the identity tag used in summary records.
	Name() string
}

// RandSource supplies uniformly distributed key material for trials.
// Implementations must be safe for concurrent use, since all workers of a run
// share one experiment.
type RandSource interface {
	// Fill overwrites b with uniformly distributed bytes.
	Fill(b []byte)

	// Uint64 returns a uniformly distributed 64-bit value.
	Uint64() uint64
}
