package statistic

import (
	"fmt"
	"math"

	"Go2HashSpectra/internal/model"
)

// Occurrence counts how many times each bucket in [0, rangeEnd] was hit.
// The sum of the counters always equals the number of recorded trials.
type Occurrence struct {
	counts        []uint64
	numIterations uint64
}

// NewOccurrence creates a zeroed occurrence table for buckets 0..rangeEnd.
func NewOccurrence(rangeEnd uint64) (*Occurrence, error) {
	if rangeEnd > math.MaxInt-1 {
		return nil, fmt.Errorf("range end %d exceeds addressable bucket count", rangeEnd)
	}
	return &Occurrence{counts: make([]uint64, rangeEnd+1)}, nil
}

// Record increments the counter of the given bucket.
func (o *Occurrence) Record(bucket uint64) error {
	if bucket >= uint64(len(o.counts)) {
		return fmt.Errorf("bucket %d out of range [0, %d]", bucket, len(o.counts)-1)
	}
	o.counts[bucket]++
	o.numIterations++
	return nil
}

// Merge adds other's counters into o. other must be an *Occurrence over the
// same bucket domain; on error o is left unmodified.
func (o *Occurrence) Merge(other model.Accumulator) error {
	oo, ok := other.(*Occurrence)
	if !ok {
		return fmt.Errorf("cannot merge %T into *statistic.Occurrence", other)
	}
	if len(oo.counts) != len(o.counts) {
		return fmt.Errorf("bucket count mismatch: %d != %d", len(oo.counts), len(o.counts))
	}
	if o.numIterations > math.MaxUint64-oo.numIterations {
		return fmt.Errorf("iteration count overflow merging %d into %d", oo.numIterations, o.numIterations)
	}
	for i, c := range oo.counts {
		o.counts[i] += c
	}
	o.numIterations += oo.numIterations
	return nil
}

// NumIterations returns the total number of recorded trials.
func (o *Occurrence) NumIterations() uint64 {
	return o.numIterations
}

// Counts returns the per-bucket counters. The slice is a read-only view.
func (o *Occurrence) Counts() []uint64 {
	return o.counts
}
