// Package query serves the summaries an engine run has emitted. The backing
// store is the result directory itself: one file of append-only JSON lines
// per run configuration, of which the last line per algorithm is the most
// refined summary.
package query

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Summary is the latest record emitted for one algorithm of one run.
type Summary struct {
	// Experiment is the experiment kind, e.g. "regularity".
	Experiment string `json:"experiment"`
	// Run is the parameter-derived result file name.
	Run string `json:"run"`
	// Algo is the algorithm's summary tag.
	Algo string `json:"algo"`
	// Record is the summary record as emitted by the engine.
	Record map[string]any `json:"record"`
}

// Querier reads summaries from a result store.
type Querier interface {
	// Experiments lists the experiment kinds with at least one result file.
	Experiments() ([]string, error)

	// LatestSummaries returns the latest record per algorithm per run of the
	// given experiment kind.
	LatestSummaries(experiment string) ([]Summary, error)
}

// fileQuerier implements Querier over the engine's result directory.
type fileQuerier struct {
	root string
}

// NewFileQuerier creates a querier over the given result root.
func NewFileQuerier(root string) Querier {
	return &fileQuerier{root: root}
}

func (q *fileQuerier) Experiments() ([]string, error) {
	entries, err := os.ReadDir(q.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read result root: %w", err)
	}
	var experiments []string
	for _, e := range entries {
		if e.IsDir() {
			experiments = append(experiments, e.Name())
		}
	}
	return experiments, nil
}

func (q *fileQuerier) LatestSummaries(experiment string) ([]Summary, error) {
	if strings.ContainsAny(experiment, `/\`) {
		return nil, fmt.Errorf("invalid experiment name: %q", experiment)
	}
	dir := filepath.Join(q.root, experiment)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read experiment directory: %w", err)
	}

	var summaries []Summary
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		latest, err := latestPerAlgo(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		algos := make([]string, 0, len(latest))
		for a := range latest {
			algos = append(algos, a)
		}
		slices.Sort(algos)
		for _, a := range algos {
			summaries = append(summaries, Summary{
				Experiment: experiment,
				Run:        e.Name(),
				Algo:       a,
				Record:     latest[a],
			})
		}
	}
	return summaries, nil
}

// latestPerAlgo scans a result file and keeps the last record per algorithm.
func latestPerAlgo(path string) (map[string]map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open result file: %w", err)
	}
	defer f.Close()

	latest := make(map[string]map[string]any)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			return nil, fmt.Errorf("malformed record in %s: %w", path, err)
		}
		algo, ok := record["algo"].(string)
		if !ok {
			return nil, fmt.Errorf("record without algo tag in %s", path)
		}
		latest[algo] = record
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan result file: %w", err)
	}
	return latest, nil
}
