// Package api serves the island state over HTTP. GET endpoints are
// read-only observation; POST /simulate advances the simulation.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/engine"
	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/persistence"
	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/telemetry"
)

// simulate calls allowed per client IP per minute.
const simulateRateLimit = 30

// Server serves one simulation over HTTP. The mutex serializes every
// handler against the simulation, so a read never observes a half-run
// year.
type Server struct {
	Sim   *engine.Simulation
	Col   *telemetry.Collector
	DB    *persistence.DB // optional; runs are saved after each simulate call
	RunID int64
	Port  int

	mu sync.Mutex
}

// Routes returns the API handler, split from Start so tests can drive
// it through httptest.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/distribution", s.handleDistribution)
	mux.HandleFunc("/api/v1/map", s.handleMap)
	mux.HandleFunc("/api/v1/history", s.handleHistory)
	mux.HandleFunc("/api/v1/simulate",
		limitRate(NewRateLimiter(simulateRateLimit, time.Minute), s.handleSimulate))
	return mux
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, s.Routes()); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, c := s.Sim.SpeciesCounts()
	writeJSON(w, map[string]any{
		"year":       s.Sim.Year(),
		"animals":    h + c,
		"herbivores": h,
		"carnivores": c,
		"map_rows":   s.Sim.Island.Rows,
		"map_cols":   s.Sim.Island.Cols,
	})
}

func (s *Server) handleDistribution(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, s.Sim.Distribution())
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, map[string]any{
		"rows":    s.Sim.Island.Rows,
		"cols":    s.Sim.Island.Cols,
		"terrain": s.Sim.Island.TerrainRows(),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Col == nil {
		writeJSON(w, []telemetry.YearStats{})
		return
	}
	history := s.Col.History()
	if history == nil {
		history = []telemetry.YearStats{}
	}
	writeJSON(w, history)
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "simulate requires POST", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Years int `json:"years"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.Years < 1 || req.Years > 10000 {
		http.Error(w, "years must be 1-10000", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.Sim.Simulate(req.Years)

	if s.DB != nil && s.Col != nil {
		if err := s.DB.SaveRun(s.RunID, s.Col.History(), s.Sim.Year(), s.Sim.Distribution()); err != nil {
			slog.Error("save run failed", "error", err)
		}
	}

	h, c := s.Sim.SpeciesCounts()
	writeJSON(w, map[string]any{
		"year":       s.Sim.Year(),
		"herbivores": h,
		"carnivores": c,
	})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
