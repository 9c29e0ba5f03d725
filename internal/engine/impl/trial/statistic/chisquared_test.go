package statistic

import (
	"strings"
	"testing"
)

func TestUniformityPValueUniformInput(t *testing.T) {
	p, err := UniformityPValue([]uint64{1000, 1000, 1000, 1000})
	if err != nil {
		t.Fatalf("UniformityPValue failed: %v", err)
	}
	if p < 0.9 || p > 1 {
		t.Fatalf("perfectly uniform counts must yield a p-value near 1, got %v", p)
	}
}

func TestUniformityPValueSkewedInput(t *testing.T) {
	p, err := UniformityPValue([]uint64{4000, 0, 0, 0})
	if err != nil {
		t.Fatalf("UniformityPValue failed: %v", err)
	}
	if p < 0 || p > 1e-9 {
		t.Fatalf("maximally skewed counts must yield a p-value near 0, got %v", p)
	}
}

func TestUniformityPValueRange(t *testing.T) {
	inputs := [][]uint64{
		{1, 2},
		{10, 20, 30, 40, 50},
		{97, 103, 101, 99},
	}
	for _, counts := range inputs {
		p, err := UniformityPValue(counts)
		if err != nil {
			t.Fatalf("UniformityPValue(%v) failed: %v", counts, err)
		}
		if p < 0 || p > 1 {
			t.Fatalf("UniformityPValue(%v) = %v, outside [0, 1]", counts, p)
		}
	}
}

func TestUniformityPValueTooFewBuckets(t *testing.T) {
	if _, err := UniformityPValue([]uint64{42}); err == nil {
		t.Fatal("expected error for a single bucket")
	}
	if _, err := UniformityPValue(nil); err == nil {
		t.Fatal("expected error for no buckets")
	}
	if _, err := UniformityPValue([]uint64{0, 0}); err == nil {
		t.Fatal("expected error for zero observations")
	}
}

func TestMutualIndependencePValueIndependentInput(t *testing.T) {
	// Two fair binary variables observed jointly with exactly the product
	// counts: the statistic is 0, so the p-value must be 1.
	counts := map[string]uint64{
		EncodeTuple([]uint64{0, 0}): 25,
		EncodeTuple([]uint64{0, 1}): 25,
		EncodeTuple([]uint64{1, 0}): 25,
		EncodeTuple([]uint64{1, 1}): 25,
	}
	p, err := MutualIndependencePValue(counts, 2)
	if err != nil {
		t.Fatalf("MutualIndependencePValue failed: %v", err)
	}
	if p < 0.99 || p > 1 {
		t.Fatalf("exact product counts must yield a p-value of 1, got %v", p)
	}
}

func TestMutualIndependencePValueDependentInput(t *testing.T) {
	// Perfectly correlated variables: only the diagonal is ever observed.
	counts := map[string]uint64{
		EncodeTuple([]uint64{0, 0}): 500,
		EncodeTuple([]uint64{1, 1}): 500,
	}
	p, err := MutualIndependencePValue(counts, 2)
	if err != nil {
		t.Fatalf("MutualIndependencePValue failed: %v", err)
	}
	if p < 0 || p > 1e-9 {
		t.Fatalf("perfectly correlated counts must yield a p-value near 0, got %v", p)
	}
}

func TestMutualIndependencePValueDegreesOfFreedom(t *testing.T) {
	// One variable constant: its marginal domain has size 1, so df = 0 and
	// the configuration is statistically meaningless.
	counts := map[string]uint64{
		EncodeTuple([]uint64{0, 0}): 50,
		EncodeTuple([]uint64{0, 1}): 50,
	}
	_, err := MutualIndependencePValue(counts, 2)
	if err == nil {
		t.Fatal("expected degrees-of-freedom error for a constant variable")
	}
	if !strings.Contains(err.Error(), "degrees of freedom") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMutualIndependencePValueTooFewVariables(t *testing.T) {
	counts := map[string]uint64{EncodeTuple([]uint64{0}): 10}
	if _, err := MutualIndependencePValue(counts, 1); err == nil {
		t.Fatal("expected error for a single variable")
	}
	if _, err := MutualIndependencePValue(nil, 2); err == nil {
		t.Fatal("expected error for empty counts")
	}
}
