package trial

import (
	"fmt"
	"io"
	"math"

	"Go2HashSpectra/internal/engine/impl/trial/statistic"
	"Go2HashSpectra/internal/model"
)

// Collisions runs the same trials as Regularity but summarizes the pairwise
// collision count against the uniform expectation. The collision probability
// relates to the L2 distance to the uniform distribution, so this is another
// angle on regularity.
type Collisions struct {
	rangeEnd       uint64
	inputSizeBytes int
	rng            model.RandSource
}

// NewCollisions creates a collision-counting experiment over buckets
// 0..rangeEnd.
func NewCollisions(rangeEnd uint64, inputSizeBytes int, rng model.RandSource) (*Collisions, error) {
	if rangeEnd < 1 {
		return nil, fmt.Errorf("range end must be at least 1, got %d", rangeEnd)
	}
	if rangeEnd > math.MaxInt-1 {
		return nil, fmt.Errorf("range end %d exceeds addressable bucket count", rangeEnd)
	}
	if inputSizeBytes < 1 {
		return nil, fmt.Errorf("input size must be at least 1 byte, got %d", inputSizeBytes)
	}
	return &Collisions{rangeEnd: rangeEnd, inputSizeBytes: inputSizeBytes, rng: rng}, nil
}

// Name returns the experiment kind.
func (e *Collisions) Name() string {
	return "collisions"
}

// NewAccumulator returns an empty occurrence table over the configured range.
func (e *Collisions) NewAccumulator() model.Accumulator {
	acc, err := statistic.NewOccurrence(e.rangeEnd)
	if err != nil {
		// Excluded by the constructor's range check.
		panic(err)
	}
	return acc
}

// Run executes one trial.
func (e *Collisions) Run(acc model.Accumulator, algo model.Algorithm) error {
	occ, ok := acc.(*statistic.Occurrence)
	if !ok {
		return fmt.Errorf("collisions needs *statistic.Occurrence, got %T", acc)
	}
	key := make([]byte, e.inputSizeBytes)
	e.rng.Fill(key)
	return occ.Record(algo.Hash(key, 0, e.rangeEnd))
}

// Accumulate runs n trials into a fresh accumulator.
func (e *Collisions) Accumulate(algo model.Algorithm, n uint64) (model.Accumulator, error) {
	return accumulate(e, algo, n)
}

// WriteSummary renders the observed pairwise collision count, the collision
// probability estimate, and that estimate normalized by the bucket count so
// that a uniform algorithm is expected to report 1.
func (e *Collisions) WriteSummary(w io.Writer, acc model.Accumulator) error {
	occ, ok := acc.(*statistic.Occurrence)
	if !ok {
		return fmt.Errorf("collisions needs *statistic.Occurrence, got %T", acc)
	}
	numKeys := float64(occ.NumIterations())
	numCollisions := 0.0
	for _, c := range occ.Counts() {
		if c > 1 {
			numCollisions += float64(c) * (float64(c) - 1) / 2
		}
	}
	cHat := numCollisions / (numKeys * (numKeys - 1) / 2)
	normalizedCHat := cHat * float64(len(occ.Counts()))
	_, err := fmt.Fprintf(w, ", \"num keys\": %d, \"num collisions\": %e, \"c hat\": %e, \"normalized c hat\": %e",
		occ.NumIterations(), numCollisions, cHat, normalizedCHat)
	return err
}
