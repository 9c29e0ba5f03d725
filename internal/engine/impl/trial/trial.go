// Package trial implements the statistical experiments run against
// key-to-bucket hash algorithms: distribution regularity, collision counting,
// and mutual independence across ranges or seeds. Each experiment produces
// mergeable accumulators so that batches run by independent workers can be
// combined losslessly in any order.
package trial

import (
	"Go2HashSpectra/internal/model"
)

// accumulate runs n trials of e into a fresh accumulator. Experiments embed
// this as their Accumulate implementation.
func accumulate(e model.Experiment, algo model.Algorithm, n uint64) (model.Accumulator, error) {
	acc := e.NewAccumulator()
	for i := uint64(0); i < n; i++ {
		if err := e.Run(acc, algo); err != nil {
			return nil, err
		}
	}
	return acc, nil
}
