package trial

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"Go2HashSpectra/internal/model"
)

// render wraps the experiment-specific summary fields into the full record
// the engine emits, so tests can decode it as JSON.
func render(t *testing.T, e model.Experiment, acc model.Accumulator) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString(`{"algo": "stub"`)
	if err := e.WriteSummary(&buf, acc); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}
	buf.WriteString("}")
	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("summary is not valid JSON: %v\n%s", err, buf.String())
	}
	return record
}

// A stub that buckets by the first key byte, fed with keys cycling through
// the residues equally, must look perfectly uniform.
func TestRegularityUniformStub(t *testing.T) {
	e, err := NewRegularity(3, 1, &cycleRand{})
	if err != nil {
		t.Fatalf("NewRegularity failed: %v", err)
	}
	algo := stubAlgo{name: "mod4", fn: func(key []byte, _, _ uint64) uint64 {
		return uint64(key[0]) % 4
	}}

	acc, err := e.Accumulate(algo, 400)
	if err != nil {
		t.Fatalf("Accumulate failed: %v", err)
	}
	record := render(t, e, acc)
	if got := record["num keys"].(float64); got != 400 {
		t.Fatalf("num keys = %v, want 400", got)
	}
	if got := record["l1 distance"].(float64); got > 1e-12 {
		t.Fatalf("l1 distance = %v, want ~0", got)
	}
	if got := record["p-value"].(float64); got < 0.9 {
		t.Fatalf("p-value = %v, want > 0.9", got)
	}
}

// A stub that always returns bucket 0 must show the maximal L1 distance of
// 2(k-1)/k and a p-value of ~0.
func TestRegularityDegenerateStub(t *testing.T) {
	e, err := NewRegularity(3, 1, &cycleRand{})
	if err != nil {
		t.Fatalf("NewRegularity failed: %v", err)
	}
	algo := stubAlgo{name: "zero", fn: func([]byte, uint64, uint64) uint64 { return 0 }}

	acc, err := e.Accumulate(algo, 400)
	if err != nil {
		t.Fatalf("Accumulate failed: %v", err)
	}
	record := render(t, e, acc)
	if got := record["l1 distance"].(float64); math.Abs(got-1.5) > 1e-12 {
		t.Fatalf("l1 distance = %v, want 1.5", got)
	}
	if got := record["p-value"].(float64); got > 1e-9 {
		t.Fatalf("p-value = %v, want ~0", got)
	}
}

func TestRegularitySummaryIdempotent(t *testing.T) {
	e, err := NewRegularity(3, 1, &cycleRand{})
	if err != nil {
		t.Fatalf("NewRegularity failed: %v", err)
	}
	algo := stubAlgo{name: "mod4", fn: func(key []byte, _, _ uint64) uint64 {
		return uint64(key[0]) % 4
	}}
	acc, err := e.Accumulate(algo, 100)
	if err != nil {
		t.Fatalf("Accumulate failed: %v", err)
	}

	var first, second bytes.Buffer
	if err := e.WriteSummary(&first, acc); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}
	if err := e.WriteSummary(&second, acc); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatalf("summary not idempotent:\n%s\n%s", first.String(), second.String())
	}
}

func TestRegularityInvalidConfig(t *testing.T) {
	if _, err := NewRegularity(0, 8, &cycleRand{}); err == nil {
		t.Fatal("expected error for a single-bucket range")
	}
	if _, err := NewRegularity(3, 0, &cycleRand{}); err == nil {
		t.Fatal("expected error for empty payloads")
	}
}
