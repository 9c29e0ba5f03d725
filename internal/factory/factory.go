// Package factory turns the configuration into the concrete experiment,
// algorithm set, and result path of a run.
package factory

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"Go2HashSpectra/internal/algo"
	"Go2HashSpectra/internal/config"
	"Go2HashSpectra/internal/engine/impl/trial"
	"Go2HashSpectra/internal/model"
)

// NewExperiment builds the configured experiment, validating its parameters.
func NewExperiment(def config.ExperimentDef, rng model.RandSource) (model.Experiment, error) {
	switch def.Kind {
	case "regularity":
		return trial.NewRegularity(def.RangeEnd, def.InputSizeBytes, rng)
	case "collisions":
		return trial.NewCollisions(def.RangeEnd, def.InputSizeBytes, rng)
	case "independence-across-ranges":
		ends := slices.Clone(def.RangeEnds)
		slices.Sort(ends)
		return trial.NewIndependenceAcrossRanges(ends, def.InputSizeBytes, rng)
	case "independence-across-seeds":
		return trial.NewIndependenceAcrossSeeds(def.RangeEnd, def.NumSeeds, def.InputSizeBytes, rng)
	default:
		return nil, fmt.Errorf("unknown experiment kind: %q", def.Kind)
	}
}

// NewAlgorithms resolves summary tags to algorithm implementations. An empty
// list selects the full bundled set.
func NewAlgorithms(names []string) ([]model.Algorithm, error) {
	all := []model.Algorithm{algo.JumpXXH64{}, algo.FastRangeXXH64{}, algo.ModXXH64{}}
	if len(names) == 0 {
		return all, nil
	}
	algorithms := make([]model.Algorithm, 0, len(names))
	for _, name := range names {
		i := slices.IndexFunc(all, func(a model.Algorithm) bool { return a.Name() == name })
		if i < 0 {
			return nil, fmt.Errorf("unknown algorithm: %q", name)
		}
		algorithms = append(algorithms, all[i])
	}
	return algorithms, nil
}

// ResultPath derives the summary file path for a run from its parameters, so
// that repeated runs of the same configuration append to the same file.
func ResultPath(root string, def config.ExperimentDef) (string, error) {
	var name string
	switch def.Kind {
	case "regularity", "collisions":
		name = fmt.Sprintf("%d_bytes_to_range_to_incl_%d", def.InputSizeBytes, def.RangeEnd)
	case "independence-across-ranges":
		ends := slices.Clone(def.RangeEnds)
		slices.Sort(ends)
		parts := make([]string, len(ends))
		for i, end := range ends {
			parts[i] = fmt.Sprintf("%d", end)
		}
		name = fmt.Sprintf("%d_bytes_to_ranges_to_incl_%s", def.InputSizeBytes, strings.Join(parts, "_"))
	case "independence-across-seeds":
		name = fmt.Sprintf("%d_bytes_%d_seeds_to_range_to_incl_%d", def.InputSizeBytes, def.NumSeeds, def.RangeEnd)
	default:
		return "", fmt.Errorf("unknown experiment kind: %q", def.Kind)
	}
	return filepath.Join(root, def.Kind, name), nil
}
