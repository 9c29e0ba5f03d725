package statistic

import (
	"encoding/binary"
	"fmt"
	"math"

	"Go2HashSpectra/internal/model"
)

// Cooccurrence counts joint outcomes: each recorded trial is an ordered tuple
// of bucket indices, one per participating range or seed. Tuples are keyed by
// their fixed-width big-endian encoding, so map iteration order never matters
// and equal tuples collapse to one key.
type Cooccurrence struct {
	arity         int
	counts        map[string]uint64
	numIterations uint64
}

// NewCooccurrence creates an empty joint table for tuples of the given arity.
func NewCooccurrence(arity int) (*Cooccurrence, error) {
	if arity < 1 {
		return nil, fmt.Errorf("tuple arity must be at least 1, got %d", arity)
	}
	return &Cooccurrence{arity: arity, counts: make(map[string]uint64)}, nil
}

// Record increments the count of the given tuple, inserting it with count 1
// if absent.
func (c *Cooccurrence) Record(tuple []uint64) error {
	if len(tuple) != c.arity {
		return fmt.Errorf("tuple arity mismatch: got %d, want %d", len(tuple), c.arity)
	}
	c.counts[EncodeTuple(tuple)]++
	c.numIterations++
	return nil
}

// Merge adds other's tuple counts into c. other must be a *Cooccurrence of
// the same arity; on error c is left unmodified.
func (c *Cooccurrence) Merge(other model.Accumulator) error {
	oc, ok := other.(*Cooccurrence)
	if !ok {
		return fmt.Errorf("cannot merge %T into *statistic.Cooccurrence", other)
	}
	if oc.arity != c.arity {
		return fmt.Errorf("tuple arity mismatch: %d != %d", oc.arity, c.arity)
	}
	if c.numIterations > math.MaxUint64-oc.numIterations {
		return fmt.Errorf("iteration count overflow merging %d into %d", oc.numIterations, c.numIterations)
	}
	for k, v := range oc.counts {
		c.counts[k] += v
	}
	c.numIterations += oc.numIterations
	return nil
}

// NumIterations returns the total number of recorded trials.
func (c *Cooccurrence) NumIterations() uint64 {
	return c.numIterations
}

// Arity returns the tuple length of this table.
func (c *Cooccurrence) Arity() int {
	return c.arity
}

// Counts returns the joint counts keyed by encoded tuple. The map is a
// read-only view; decode keys with DecodeTuple.
func (c *Cooccurrence) Counts() map[string]uint64 {
	return c.counts
}

// EncodeTuple packs a tuple into its map key: 8 big-endian bytes per
// coordinate.
func EncodeTuple(tuple []uint64) string {
	b := make([]byte, 8*len(tuple))
	for i, v := range tuple {
		binary.BigEndian.PutUint64(b[8*i:], v)
	}
	return string(b)
}

// DecodeTuple unpacks a map key produced by EncodeTuple.
func DecodeTuple(key string) []uint64 {
	tuple := make([]uint64, len(key)/8)
	for i := range tuple {
		tuple[i] = binary.BigEndian.Uint64([]byte(key[8*i : 8*i+8]))
	}
	return tuple
}
