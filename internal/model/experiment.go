package model

import "io"

// Accumulator is a mergeable container of trial outcomes for one experiment
// configuration. Counts only ever grow; an accumulator is mutated by the
// experiment that created it and by Merge, nothing else.
type Accumulator interface {
	// Merge folds other, produced from a disjoint batch of trials of the same
	// experiment configuration, into this accumulator. Merge is associative
	// and commutative: batch order and worker assignment must not affect the
	// result. On error the receiver is left unmodified.
	Merge(other Accumulator) error

	// NumIterations returns the total number of trials recorded, which always
	// equals the sum of the held counts.
	NumIterations() uint64
}

// Experiment generates trials against an algorithm and reduces the
// accumulated outcomes to a summary record.
type Experiment interface {
	// Name returns the experiment kind, e.g. "regularity".
	Name() string

	// NewAccumulator returns an empty accumulator matching this
	// configuration's outcome domain.
	NewAccumulator() Accumulator

	// Run executes exactly one trial, recording its outcome into acc.
	// acc must have been created by NewAccumulator.
	Run(acc Accumulator, algo Algorithm) error

	// Accumulate runs n trials into a fresh accumulator.
	Accumulate(algo Algorithm, n uint64) (Accumulator, error)

	// WriteSummary renders the accumulator's statistics as the
	// experiment-specific fields of one summary record. Calling it twice on
	// the same unmutated accumulator writes identical bytes, and it may be
	// called repeatedly on a growing accumulator to stream refined summaries.
	WriteSummary(w io.Writer, acc Accumulator) error
}
