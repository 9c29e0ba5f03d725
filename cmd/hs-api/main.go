package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"Go2HashSpectra/internal/config"
	"Go2HashSpectra/internal/query"
)

// APIHandler serves the latest summaries from a result store.
type APIHandler struct {
	querier query.Querier
}

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	resultRoot := cfg.API.ResultRoot
	if resultRoot == "" {
		resultRoot = "results"
	}
	apiHandler := &APIHandler{querier: query.NewFileQuerier(resultRoot)}

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/summaries", apiHandler.allSummariesHandler).Methods("GET")
	r.HandleFunc("/api/v1/summaries/{experiment}", apiHandler.experimentSummariesHandler).Methods("GET")

	server := &http.Server{
		Addr:    cfg.API.ListenAddr,
		Handler: r,
	}

	go func() {
		log.Printf("API server starting on %s, serving results from %s", server.Addr, resultRoot)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v", server.Addr, err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("API server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("API server stopped.")
}

func (h *APIHandler) allSummariesHandler(w http.ResponseWriter, r *http.Request) {
	experiments, err := h.querier.Experiments()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	var summaries []query.Summary
	for _, experiment := range experiments {
		s, err := h.querier.LatestSummaries(experiment)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		summaries = append(summaries, s...)
	}
	writeJSON(w, summaries)
}

func (h *APIHandler) experimentSummariesHandler(w http.ResponseWriter, r *http.Request) {
	experiment := mux.Vars(r)["experiment"]
	summaries, err := h.querier.LatestSummaries(experiment)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, summaries)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
