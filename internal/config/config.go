package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ExperimentDef selects the experiment kind and its parameters. Fields not
// used by the selected kind are ignored.
type ExperimentDef struct {
	// Kind is one of regularity, collisions, independence-across-ranges,
	// independence-across-seeds.
	Kind string `yaml:"kind"`
	// RangeEnd is the inclusive upper bucket (all kinds except
	// independence-across-ranges).
	RangeEnd uint64 `yaml:"range_end"`
	// RangeEnds are the inclusive upper buckets for
	// independence-across-ranges; any order, duplicates rejected.
	RangeEnds []uint64 `yaml:"range_ends"`
	// NumSeeds is the seed-set size for independence-across-seeds.
	NumSeeds int `yaml:"num_seeds"`
	// InputSizeBytes is the random payload size per trial.
	InputSizeBytes int `yaml:"input_size_bytes"`
}

// NATSConfig configures the optional summary-record publisher.
type NATSConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// EngineConfig holds the configuration for the experiment engine.
type EngineConfig struct {
	Experiment ExperimentDef `yaml:"experiment"`
	// Algorithms are summary tags of the algorithms under test; empty runs
	// the full bundled set.
	Algorithms []string `yaml:"algorithms"`
	// NumWorkers <= 0 selects hardware parallelism minus one.
	NumWorkers int `yaml:"num_workers"`
	// BatchSize <= 0 selects the engine default.
	BatchSize uint64 `yaml:"batch_size"`
	// ResultRoot is the directory summary files are appended under.
	ResultRoot string     `yaml:"result_root"`
	NATS       NATSConfig `yaml:"nats"`
}

// APIConfig holds the configuration for the results API server.
type APIConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	ResultRoot string `yaml:"result_root"`
}

// Config is the top-level configuration struct for the entire application.
type Config struct {
	Engine EngineConfig `yaml:"engine"`
	API    APIConfig    `yaml:"api"`
}

// LoadConfig reads the configuration from a YAML file and returns a Config struct.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	return &cfg, nil
}
