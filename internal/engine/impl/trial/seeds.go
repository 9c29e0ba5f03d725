package trial

import (
	"fmt"
	"io"
	"math"

	"Go2HashSpectra/internal/engine/impl/trial/statistic"
	"Go2HashSpectra/internal/model"
)

// seedDrawAttempts caps the rejection sampling of a pairwise-distinct seed
// set before the configuration is declared unsatisfiable.
const seedDrawAttempts = 1000

// IndependenceAcrossSeeds tests whether the buckets an algorithm produces for
// the same key under several seeds are mutually independent. The seed set is
// drawn once at construction and stays fixed for the whole run.
type IndependenceAcrossSeeds struct {
	rangeEnd       uint64
	seeds          []uint64
	inputSizeBytes int
	rng            model.RandSource
}

// NewIndependenceAcrossSeeds creates the experiment, drawing numSeeds
// pairwise-distinct seeds by rejection sampling.
func NewIndependenceAcrossSeeds(rangeEnd uint64, numSeeds, inputSizeBytes int, rng model.RandSource) (*IndependenceAcrossSeeds, error) {
	if rangeEnd < 1 {
		return nil, fmt.Errorf("range end must be at least 1, got %d", rangeEnd)
	}
	if rangeEnd > math.MaxInt-1 {
		return nil, fmt.Errorf("range end %d exceeds addressable bucket count", rangeEnd)
	}
	if numSeeds < 2 {
		return nil, fmt.Errorf("independence across seeds needs at least 2 seeds, got %d", numSeeds)
	}
	if inputSizeBytes < 1 {
		return nil, fmt.Errorf("input size must be at least 1 byte, got %d", inputSizeBytes)
	}
	seeds, err := drawDistinctSeeds(rng, numSeeds)
	if err != nil {
		return nil, err
	}
	return &IndependenceAcrossSeeds{rangeEnd: rangeEnd, seeds: seeds, inputSizeBytes: inputSizeBytes, rng: rng}, nil
}

// Name returns the experiment kind.
func (e *IndependenceAcrossSeeds) Name() string {
	return "independence-across-seeds"
}

// Seeds returns the seed set drawn at construction.
func (e *IndependenceAcrossSeeds) Seeds() []uint64 {
	return e.seeds
}

// NewAccumulator returns an empty joint table with one coordinate per seed.
func (e *IndependenceAcrossSeeds) NewAccumulator() model.Accumulator {
	acc, err := statistic.NewCooccurrence(len(e.seeds))
	if err != nil {
		// Excluded by the constructor's seed count check.
		panic(err)
	}
	return acc
}

// Run executes one trial: one random key hashed once per seed, recorded
// unconditionally.
func (e *IndependenceAcrossSeeds) Run(acc model.Accumulator, algo model.Algorithm) error {
	co, ok := acc.(*statistic.Cooccurrence)
	if !ok {
		return fmt.Errorf("independence across seeds needs *statistic.Cooccurrence, got %T", acc)
	}
	key := make([]byte, e.inputSizeBytes)
	e.rng.Fill(key)
	tuple := make([]uint64, len(e.seeds))
	for i, seed := range e.seeds {
		tuple[i] = algo.Hash(key, seed, e.rangeEnd)
	}
	return co.Record(tuple)
}

// Accumulate runs n trials into a fresh accumulator.
func (e *IndependenceAcrossSeeds) Accumulate(algo model.Algorithm, n uint64) (model.Accumulator, error) {
	return accumulate(e, algo, n)
}

// WriteSummary renders the mutual-independence p-value.
func (e *IndependenceAcrossSeeds) WriteSummary(w io.Writer, acc model.Accumulator) error {
	co, ok := acc.(*statistic.Cooccurrence)
	if !ok {
		return fmt.Errorf("independence across seeds needs *statistic.Cooccurrence, got %T", acc)
	}
	pValue, err := statistic.MutualIndependencePValue(co.Counts(), len(e.seeds))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, ", \"num keys\": %d, \"p-value\": %v", co.NumIterations(), pValue)
	return err
}

func drawDistinctSeeds(rng model.RandSource, numSeeds int) ([]uint64, error) {
	for attempt := 0; attempt < seedDrawAttempts; attempt++ {
		seeds := make([]uint64, numSeeds)
		for i := range seeds {
			seeds[i] = rng.Uint64()
		}
		if pairwiseDistinct(seeds) {
			return seeds, nil
		}
	}
	return nil, fmt.Errorf("could not draw %d pairwise-distinct seeds in %d attempts", numSeeds, seedDrawAttempts)
}
