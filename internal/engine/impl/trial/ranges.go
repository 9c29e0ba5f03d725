package trial

import (
	"fmt"
	"io"
	"math"

	"Go2HashSpectra/internal/engine/impl/trial/statistic"
	"Go2HashSpectra/internal/model"
)

// IndependenceAcrossRanges tests whether the buckets an algorithm produces
// for the same key against several ranges are mutually independent. Trials
// are conditioned on distinctness: a key whose buckets collide across ranges
// is rejected and resampled, which isolates the independence question from
// the collision rate.
type IndependenceAcrossRanges struct {
	rangeEnds      []uint64
	inputSizeBytes int
	rng            model.RandSource
}

// NewIndependenceAcrossRanges creates the experiment for the given strictly
// increasing inclusive range ends.
func NewIndependenceAcrossRanges(rangeEnds []uint64, inputSizeBytes int, rng model.RandSource) (*IndependenceAcrossRanges, error) {
	if len(rangeEnds) < 2 {
		return nil, fmt.Errorf("independence across ranges needs at least 2 ranges, got %d", len(rangeEnds))
	}
	for i := 1; i < len(rangeEnds); i++ {
		if rangeEnds[i] <= rangeEnds[i-1] {
			return nil, fmt.Errorf("range ends must be strictly increasing, got %d after %d", rangeEnds[i], rangeEnds[i-1])
		}
	}
	if rangeEnds[len(rangeEnds)-1] > math.MaxInt-1 {
		return nil, fmt.Errorf("range end %d exceeds addressable bucket count", rangeEnds[len(rangeEnds)-1])
	}
	if inputSizeBytes < 1 {
		return nil, fmt.Errorf("input size must be at least 1 byte, got %d", inputSizeBytes)
	}
	ends := make([]uint64, len(rangeEnds))
	copy(ends, rangeEnds)
	return &IndependenceAcrossRanges{rangeEnds: ends, inputSizeBytes: inputSizeBytes, rng: rng}, nil
}

// Name returns the experiment kind.
func (e *IndependenceAcrossRanges) Name() string {
	return "independence-across-ranges"
}

// NewAccumulator returns an empty joint table with one coordinate per range.
func (e *IndependenceAcrossRanges) NewAccumulator() model.Accumulator {
	acc, err := statistic.NewCooccurrence(len(e.rangeEnds))
	if err != nil {
		// Excluded by the constructor's arity check.
		panic(err)
	}
	return acc
}

// Run executes one trial, resampling keys until all per-range buckets are
// pairwise distinct.
func (e *IndependenceAcrossRanges) Run(acc model.Accumulator, algo model.Algorithm) error {
	co, ok := acc.(*statistic.Cooccurrence)
	if !ok {
		return fmt.Errorf("independence across ranges needs *statistic.Cooccurrence, got %T", acc)
	}
	key := make([]byte, e.inputSizeBytes)
	tuple := make([]uint64, len(e.rangeEnds))
	for {
		e.rng.Fill(key)
		for i, end := range e.rangeEnds {
			tuple[i] = algo.Hash(key, 0, end)
		}
		if pairwiseDistinct(tuple) {
			return co.Record(tuple)
		}
	}
}

// Accumulate runs n trials into a fresh accumulator.
func (e *IndependenceAcrossRanges) Accumulate(algo model.Algorithm, n uint64) (model.Accumulator, error) {
	return accumulate(e, algo, n)
}

// WriteSummary renders the mutual-independence p-value.
func (e *IndependenceAcrossRanges) WriteSummary(w io.Writer, acc model.Accumulator) error {
	co, ok := acc.(*statistic.Cooccurrence)
	if !ok {
		return fmt.Errorf("independence across ranges needs *statistic.Cooccurrence, got %T", acc)
	}
	pValue, err := statistic.MutualIndependencePValue(co.Counts(), len(e.rangeEnds))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, ", \"num keys\": %d, \"p-value\": %v", co.NumIterations(), pValue)
	return err
}

func pairwiseDistinct(tuple []uint64) bool {
	for i := 1; i < len(tuple); i++ {
		for j := 0; j < i; j++ {
			if tuple[i] == tuple[j] {
				return false
			}
		}
	}
	return true
}
