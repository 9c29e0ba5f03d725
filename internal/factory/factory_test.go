package factory

import (
	"path/filepath"
	"testing"

	"Go2HashSpectra/internal/config"
	"Go2HashSpectra/internal/engine/impl/trial"
)

func TestNewExperimentKinds(t *testing.T) {
	rng := trial.SystemRand()
	defs := []config.ExperimentDef{
		{Kind: "regularity", RangeEnd: 1023, InputSizeBytes: 16},
		{Kind: "collisions", RangeEnd: 1023, InputSizeBytes: 16},
		{Kind: "independence-across-ranges", RangeEnds: []uint64{511, 127, 255}, InputSizeBytes: 16},
		{Kind: "independence-across-seeds", RangeEnd: 15, NumSeeds: 2, InputSizeBytes: 16},
	}
	for _, def := range defs {
		e, err := NewExperiment(def, rng)
		if err != nil {
			t.Fatalf("NewExperiment(%s) failed: %v", def.Kind, err)
		}
		if e.Name() != def.Kind {
			t.Fatalf("experiment name %q does not match kind %q", e.Name(), def.Kind)
		}
	}

	if _, err := NewExperiment(config.ExperimentDef{Kind: "nope"}, rng); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	// Range ends are sorted before construction, but duplicates stay fatal.
	if _, err := NewExperiment(config.ExperimentDef{
		Kind: "independence-across-ranges", RangeEnds: []uint64{255, 255}, InputSizeBytes: 16,
	}, rng); err == nil {
		t.Fatal("expected error for duplicate range ends")
	}
}

func TestNewAlgorithms(t *testing.T) {
	all, err := NewAlgorithms(nil)
	if err != nil {
		t.Fatalf("NewAlgorithms(nil) failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected the full bundled set, got %d algorithms", len(all))
	}

	some, err := NewAlgorithms([]string{"mod-xxh64", "jump-xxh64"})
	if err != nil {
		t.Fatalf("NewAlgorithms failed: %v", err)
	}
	if some[0].Name() != "mod-xxh64" || some[1].Name() != "jump-xxh64" {
		t.Fatalf("algorithms not resolved in request order: %v, %v", some[0].Name(), some[1].Name())
	}

	if _, err := NewAlgorithms([]string{"md5"}); err == nil {
		t.Fatal("expected error for unknown algorithm")
	}
}

func TestResultPath(t *testing.T) {
	cases := []struct {
		def  config.ExperimentDef
		want string
	}{
		{
			config.ExperimentDef{Kind: "regularity", RangeEnd: 1023, InputSizeBytes: 16},
			filepath.Join("results", "regularity", "16_bytes_to_range_to_incl_1023"),
		},
		{
			config.ExperimentDef{Kind: "independence-across-ranges", RangeEnds: []uint64{511, 127}, InputSizeBytes: 8},
			filepath.Join("results", "independence-across-ranges", "8_bytes_to_ranges_to_incl_127_511"),
		},
		{
			config.ExperimentDef{Kind: "independence-across-seeds", RangeEnd: 15, NumSeeds: 3, InputSizeBytes: 8},
			filepath.Join("results", "independence-across-seeds", "8_bytes_3_seeds_to_range_to_incl_15"),
		},
	}
	for _, c := range cases {
		got, err := ResultPath("results", c.def)
		if err != nil {
			t.Fatalf("ResultPath(%s) failed: %v", c.def.Kind, err)
		}
		if got != c.want {
			t.Fatalf("ResultPath(%s) = %q, want %q", c.def.Kind, got, c.want)
		}
	}
}
