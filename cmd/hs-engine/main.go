package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"Go2HashSpectra/internal/config"
	"Go2HashSpectra/internal/engine/impl/trial"
	"Go2HashSpectra/internal/engine/runner"
	"Go2HashSpectra/internal/factory"
	"Go2HashSpectra/internal/model"
	"Go2HashSpectra/internal/sink"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the configuration file")
	flag.Parse()

	log.Println("Starting hs-engine...")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Println("Configuration loaded successfully.")

	engineCfg := cfg.Engine
	experiment, err := factory.NewExperiment(engineCfg.Experiment, trial.SystemRand())
	if err != nil {
		log.Fatalf("Failed to create experiment: %v", err)
	}
	algorithms, err := factory.NewAlgorithms(engineCfg.Algorithms)
	if err != nil {
		log.Fatalf("Failed to resolve algorithms: %v", err)
	}

	resultRoot := engineCfg.ResultRoot
	if resultRoot == "" {
		resultRoot = "results"
	}
	resultPath, err := factory.ResultPath(resultRoot, engineCfg.Experiment)
	if err != nil {
		log.Fatalf("Failed to derive result path: %v", err)
	}
	lineWriter, err := sink.NewLineWriter(resultPath)
	if err != nil {
		log.Fatalf("Failed to open result file: %v", err)
	}
	defer lineWriter.Close()
	log.Printf("Appending summaries to %s", resultPath)

	writers := []model.Writer{lineWriter}
	if engineCfg.NATS.Enabled {
		publisher, err := sink.NewPublisher(engineCfg.NATS.URL, engineCfg.NATS.Subject)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer publisher.Close()
		writers = append(writers, publisher)
	}

	run, err := runner.New(experiment, algorithms, writers, engineCfg.NumWorkers, engineCfg.BatchSize)
	if err != nil {
		log.Fatalf("Failed to create runner: %v", err)
	}

	// The run is unbounded; a signal is the only way out.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutdown signal received, stopping runner...")
		run.Stop()
	}()

	run.Start()
	if err := run.Run(); err != nil {
		log.Fatalf("Run failed: %v", err)
	}
	log.Println("Shutdown complete.")
}
