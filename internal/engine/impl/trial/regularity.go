package trial

import (
	"fmt"
	"io"
	"math"

	"Go2HashSpectra/internal/engine/impl/trial/statistic"
	"Go2HashSpectra/internal/model"
)

// Regularity tests how evenly an algorithm spreads random keys over the
// buckets of one range. Each trial hashes a fresh random payload with seed 0
// and records the resulting bucket.
type Regularity struct {
	rangeEnd       uint64
	inputSizeBytes int
	rng            model.RandSource
}

// NewRegularity creates a regularity experiment over buckets 0..rangeEnd.
func NewRegularity(rangeEnd uint64, inputSizeBytes int, rng model.RandSource) (*Regularity, error) {
	if rangeEnd < 1 {
		return nil, fmt.Errorf("range end must be at least 1, got %d", rangeEnd)
	}
	if rangeEnd > math.MaxInt-1 {
		return nil, fmt.Errorf("range end %d exceeds addressable bucket count", rangeEnd)
	}
	if inputSizeBytes < 1 {
		return nil, fmt.Errorf("input size must be at least 1 byte, got %d", inputSizeBytes)
	}
	return &Regularity{rangeEnd: rangeEnd, inputSizeBytes: inputSizeBytes, rng: rng}, nil
}

// Name returns the experiment kind.
func (e *Regularity) Name() string {
	return "regularity"
}

// NewAccumulator returns an empty occurrence table over the configured range.
func (e *Regularity) NewAccumulator() model.Accumulator {
	acc, err := statistic.NewOccurrence(e.rangeEnd)
	if err != nil {
		// Excluded by the constructor's range check.
		panic(err)
	}
	return acc
}

// Run executes one trial.
func (e *Regularity) Run(acc model.Accumulator, algo model.Algorithm) error {
	occ, ok := acc.(*statistic.Occurrence)
	if !ok {
		return fmt.Errorf("regularity needs *statistic.Occurrence, got %T", acc)
	}
	key := make([]byte, e.inputSizeBytes)
	e.rng.Fill(key)
	return occ.Record(algo.Hash(key, 0, e.rangeEnd))
}

// Accumulate runs n trials into a fresh accumulator.
func (e *Regularity) Accumulate(algo model.Algorithm, n uint64) (model.Accumulator, error) {
	return accumulate(e, algo, n)
}

// WriteSummary renders the L1 and L2 distances to the uniform distribution
// and the uniformity p-value.
func (e *Regularity) WriteSummary(w io.Writer, acc model.Accumulator) error {
	occ, ok := acc.(*statistic.Occurrence)
	if !ok {
		return fmt.Errorf("regularity needs *statistic.Occurrence, got %T", acc)
	}
	numKeys := occ.NumIterations()
	counts := occ.Counts()
	uniform := 1 / float64(len(counts))
	l1 := 0.0
	l2 := 0.0
	for _, c := range counts {
		d := float64(c)/float64(numKeys) - uniform
		l1 += math.Abs(d)
		l2 += d * d
	}
	l2 = math.Sqrt(l2)
	pValue, err := statistic.UniformityPValue(counts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, ", \"num keys\": %d, \"l1 distance\": %e, \"l2 distance\": %e, \"p-value\": %v",
		numKeys, l1, l2, pValue)
	return err
}
