package statistic

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat/distuv"
)

// marginalTolerance bounds how far each reconstructed marginal distribution
// may deviate from summing to 1 before the input is considered malformed.
const marginalTolerance = 1e-2

// UniformityPValue runs a chi-squared goodness-of-fit test of the given
// bucket counts against the uniform distribution and returns the p-value.
func UniformityPValue(counts []uint64) (float64, error) {
	k := len(counts)
	if k < 2 {
		return 0, fmt.Errorf("uniformity test needs at least 2 buckets, got %d", k)
	}
	var total uint64
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0, fmt.Errorf("uniformity test needs at least one observation")
	}

	expected := float64(total) / float64(k)
	statistic := 0.0
	for _, c := range counts {
		d := float64(c) - expected
		statistic += d * d / expected
	}

	dist := distuv.ChiSquared{K: float64(k - 1)}
	return dist.Survival(statistic), nil
}

// MutualIndependencePValue runs a chi-squared test of mutual independence
// over joint counts keyed by encoded tuples of the given arity and returns
// the p-value. Marginals are estimated from the joint counts themselves.
// Tuples never observed contribute zero to the statistic; this deviates from
// a strict theoretical treatment and is kept deliberately, since changing it
// would change the meaning of the reported p-values.
func MutualIndependencePValue(counts map[string]uint64, arity int) (float64, error) {
	if arity < 2 {
		return 0, fmt.Errorf("independence test needs at least 2 variables, got %d", arity)
	}
	if len(counts) == 0 {
		return 0, fmt.Errorf("independence test needs at least one observation")
	}

	// Iterate tuples in a fixed order so that repeated calls on the same
	// table sum in the same order and render identical summaries.
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	marginals := make([]map[uint64]float64, arity)
	for j := range marginals {
		marginals[j] = make(map[uint64]float64)
	}
	var numSamples float64
	for _, key := range keys {
		tuple := DecodeTuple(key)
		if len(tuple) != arity {
			return 0, fmt.Errorf("tuple arity mismatch: got %d, want %d", len(tuple), arity)
		}
		v := float64(counts[key])
		for j, i := range tuple {
			marginals[j][i] += v
		}
		numSamples += v
	}
	for j := range marginals {
		domain := make([]uint64, 0, len(marginals[j]))
		for i := range marginals[j] {
			domain = append(domain, i)
		}
		slices.Sort(domain)
		sum := 0.0
		for _, i := range domain {
			marginals[j][i] /= numSamples
			sum += marginals[j][i]
		}
		if math.Abs(sum-1) >= marginalTolerance {
			return 0, fmt.Errorf("marginal distribution %d sums to %v, not 1", j, sum)
		}
	}

	statistic := 0.0
	for _, key := range keys {
		jointProbability := 1.0
		for j, i := range DecodeTuple(key) {
			jointProbability *= marginals[j][i]
		}
		e := jointProbability * numSamples
		d := float64(counts[key]) - e
		statistic += d * d / e
	}

	jointDomain := 1
	marginalFree := 0
	for j := range marginals {
		jointDomain *= len(marginals[j])
		marginalFree += len(marginals[j]) - 1
	}
	degreesOfFreedom := jointDomain - 1 - marginalFree
	if degreesOfFreedom <= 0 {
		return 0, fmt.Errorf("degrees of freedom must be positive, got %d: too few distinct observed categories", degreesOfFreedom)
	}

	dist := distuv.ChiSquared{K: float64(degreesOfFreedom)}
	return dist.Survival(statistic), nil
}
