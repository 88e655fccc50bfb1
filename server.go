package busevents

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/theoremus-urban-solutions/bus-to-events/config"
	"github.com/theoremus-urban-solutions/bus-to-events/dataset"
)

// Server is the HTTP surface over one loaded dataset. The dataset and
// its response cache swap together when the dataset file changes on
// disk, so a cache never outlives the snapshot it was rendered from.
type Server struct {
	cfg     config.AppConfig
	metrics *Collector

	mu           sync.RWMutex
	data         *dataset.Index
	cache        *ResponseCache
	datasetMtime time.Time

	httpServer *http.Server
}

func NewServer(cfg config.AppConfig, data *dataset.Index, metrics *Collector) *Server {
	s := &Server{cfg: cfg, metrics: metrics}
	s.install(data)
	if fi, err := os.Stat(cfg.Dataset.Path); err == nil {
		s.datasetMtime = fi.ModTime()
	}
	return s
}

// install swaps in a dataset snapshot and a fresh cache.
func (s *Server) install(data *dataset.Index) {
	gen := NewGenerator(data, s.cfg).WithMetrics(s.metrics)
	s.mu.Lock()
	s.data = data
	s.cache = NewResponseCache(gen)
	s.mu.Unlock()
	if s.metrics != nil {
		s.metrics.SetDatasetStats(data.RouteCount(), data.TripCount())
	}
}

// maybeReload reloads the dataset when the file's mtime moved forward.
// URL-backed datasets never reload; stat fails and we keep the snapshot.
func (s *Server) maybeReload() {
	fi, err := os.Stat(s.cfg.Dataset.Path)
	if err != nil {
		return
	}
	s.mu.RLock()
	stale := fi.ModTime().After(s.datasetMtime)
	s.mu.RUnlock()
	if !stale {
		return
	}

	data, err := dataset.Load(s.cfg.Dataset.Path)
	if err != nil {
		log.Printf("dataset reload failed, keeping previous snapshot: %v", err)
		return
	}
	s.install(data)
	s.mu.Lock()
	s.datasetMtime = fi.ModTime()
	s.mu.Unlock()
	log.Printf("dataset reloaded: %d routes, %d trips", data.RouteCount(), data.TripCount())
}

// view returns the current snapshot pair under the read lock.
func (s *Server) view() (*dataset.Index, *ResponseCache) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data, s.cache
}

func (s *Server) StartServer() {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/routes", s.handleRoutes)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/validation", s.handleValidation)
	mux.HandleFunc("/api/export/nodes.csv", s.handleNodesCSV)
	mux.HandleFunc("/api/export/nodes.json", s.handleNodesJSON)
	mux.HandleFunc("/api/export/estimated-timetable.json", s.handleEstimatedTimetableJSON)
	mux.HandleFunc("/api/export/estimated-timetable.xml", s.handleEstimatedTimetableXML)
	mux.HandleFunc("/api/export/tripupdates.pb", s.handleTripUpdatesPB)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}

	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", addr)
}

func (s *Server) HandleGracefulShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Printf("server shutdown error: %v", err)
		} else {
			log.Printf("server shut down successfully")
		}
	}
}
