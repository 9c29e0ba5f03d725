// Package runner drives an experiment in parallel: a pool of perpetual
// workers runs fixed-size trial batches per algorithm and ships the partial
// accumulators over a fan-in channel to a single aggregator, which merges
// them into per-algorithm running totals and streams one summary record after
// every batch.
package runner

import (
	"bytes"
	"fmt"
	"log"
	"runtime"
	"sync"

	"Go2HashSpectra/internal/model"
)

// DefaultBatchSize is the number of trials a worker runs per algorithm before
// reporting to the aggregator.
const DefaultBatchSize = 10_000_000

type batch struct {
	algo string
	acc  model.Accumulator
}

// Runner executes one experiment against a set of algorithms.
type Runner struct {
	experiment model.Experiment
	algorithms []model.Algorithm
	writers    []model.Writer

	numWorkers int
	batchSize  uint64

	results  chan batch
	done     chan struct{}
	stopOnce sync.Once
	workerWg sync.WaitGroup

	errOnce sync.Once
	err     error
}

// New creates a runner. numWorkers <= 0 selects hardware parallelism minus
// one, leaving a CPU for the aggregator; batchSize <= 0 selects
// DefaultBatchSize.
func New(experiment model.Experiment, algorithms []model.Algorithm, writers []model.Writer, numWorkers int, batchSize uint64) (*Runner, error) {
	if len(algorithms) == 0 {
		return nil, fmt.Errorf("at least one algorithm is required")
	}
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU() - 1
	}
	if numWorkers <= 0 {
		numWorkers = 0
		log.Println("Warning: no worker available; the aggregator will idle until Stop is called.")
	}
	if batchSize == 0 {
		batchSize = DefaultBatchSize
	}
	return &Runner{
		experiment: experiment,
		algorithms: algorithms,
		writers:    writers,
		numWorkers: numWorkers,
		batchSize:  batchSize,
		results:    make(chan batch, numWorkers),
		done:       make(chan struct{}),
	}, nil
}

// Start launches the worker pool. The aggregator itself runs in Run on the
// calling goroutine.
func (r *Runner) Start() {
	r.workerWg.Add(r.numWorkers)
	for i := 0; i < r.numWorkers; i++ {
		go r.worker()
	}
	go func() {
		// Channel closure is the aggregator's only termination signal.
		r.workerWg.Wait()
		close(r.results)
	}()
	log.Printf("Runner started with %d workers, batch size %d, %d algorithms.", r.numWorkers, r.batchSize, len(r.algorithms))
}

// Stop asks the workers to exit at their next batch boundary. Production runs
// never call it; the process runs until externally terminated.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.done) })
}

// Run aggregates worker batches until the result channel closes, merging each
// batch into the per-algorithm running accumulator and emitting one summary
// record per batch to every writer. It returns the first fatal error, if any.
func (r *Runner) Run() error {
	accumulators := make(map[string]model.Accumulator)
	for b := range r.results {
		acc, ok := accumulators[b.algo]
		if !ok {
			acc = r.experiment.NewAccumulator()
			accumulators[b.algo] = acc
		}
		if err := acc.Merge(b.acc); err != nil {
			r.fail(fmt.Errorf("failed to merge batch for %s: %w", b.algo, err))
			r.Stop()
			break
		}
		if err := r.emit(b.algo, acc); err != nil {
			r.fail(err)
			r.Stop()
			break
		}
		log.Printf("Processed %e keys for %s", float64(acc.NumIterations()), b.algo)
	}
	for range r.results {
		// Drain so workers blocked on send can observe done and exit.
	}
	r.workerWg.Wait()
	return r.err
}

// emit renders one summary record for algo and appends it to every writer.
func (r *Runner) emit(algo string, acc model.Accumulator) error {
	var record bytes.Buffer
	fmt.Fprintf(&record, "{\"algo\": %q", algo)
	if err := r.experiment.WriteSummary(&record, acc); err != nil {
		return fmt.Errorf("failed to summarize %s: %w", algo, err)
	}
	record.WriteString("}\n")
	for _, w := range r.writers {
		if err := w.WriteRecord(record.Bytes()); err != nil {
			return fmt.Errorf("failed to write summary for %s: %w", algo, err)
		}
	}
	return nil
}

// worker perpetually iterates over the algorithm set round-robin, running one
// batch per algorithm per iteration. Any error is fatal for this worker only.
func (r *Runner) worker() {
	defer r.workerWg.Done()
	for {
		for _, algo := range r.algorithms {
			select {
			case <-r.done:
				return
			default:
			}
			acc, err := r.experiment.Accumulate(algo, r.batchSize)
			if err != nil {
				r.fail(fmt.Errorf("worker failed accumulating %s: %w", algo.Name(), err))
				return
			}
			select {
			case r.results <- batch{algo: algo.Name(), acc: acc}:
			case <-r.done:
				return
			}
		}
	}
}

func (r *Runner) fail(err error) {
	r.errOnce.Do(func() {
		r.err = err
		log.Printf("Fatal: %v", err)
	})
}
