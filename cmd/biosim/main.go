// Command biosim runs the two-species island population simulation.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/animal"
	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/api"
	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/config"
	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/engine"
	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/island"
	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/persistence"
	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "scenario file layered over the built-in defaults")
	years := flag.Int("years", 0, "override the scenario's year count")
	seed := flag.Int64("seed", 0, "override the scenario's seed")
	verbose := flag.Bool("v", false, "log every simulated year")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// ── Scenario ──────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load scenario", "error", err)
		os.Exit(1)
	}
	if *years > 0 {
		cfg.Years = *years
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	// ── Island ────────────────────────────────────────────────────────
	terrain := cfg.Map
	if cfg.Generate.Enabled {
		gen := island.DefaultGenConfig()
		if cfg.Generate.Rows > 0 {
			gen.Rows = cfg.Generate.Rows
		}
		if cfg.Generate.Cols > 0 {
			gen.Cols = cfg.Generate.Cols
		}
		if cfg.Generate.SeaLevel > 0 {
			gen.SeaLevel = cfg.Generate.SeaLevel
		}
		if cfg.Generate.MountainLvl > 0 {
			gen.MountainLvl = cfg.Generate.MountainLvl
		}
		gen.Seed = cfg.Seed
		terrain = island.Generate(gen)
		slog.Info("island generated", "rows", gen.Rows, "cols", gen.Cols, "seed", gen.Seed)
	}
	m, err := island.FromString(terrain)
	if err != nil {
		slog.Error("invalid island map", "error", err)
		os.Exit(1)
	}

	// ── Simulation ────────────────────────────────────────────────────
	sim := engine.New(m, cfg.Seed)

	for _, name := range sortedNames(cfg.Species) {
		sp, err := animal.ParseSpecies(name)
		if err != nil {
			slog.Error("bad species override", "error", err)
			os.Exit(1)
		}
		if err := sim.SetSpeciesParams(sp, cfg.Species[name]); err != nil {
			slog.Error("bad species parameters", "species", name, "error", err)
			os.Exit(1)
		}
	}
	for _, name := range sortedNames(cfg.Biomes) {
		b, err := island.ParseBiome(name)
		if err != nil {
			slog.Error("bad biome override", "error", err)
			os.Exit(1)
		}
		if err := sim.SetBiomeParams(b, cfg.Biomes[name]); err != nil {
			slog.Error("bad biome parameters", "biome", name, "error", err)
			os.Exit(1)
		}
	}

	if err := sim.AddPopulation(cfg.EnginePopulation()); err != nil {
		slog.Error("failed to place population", "error", err)
		os.Exit(1)
	}
	h, c := sim.SpeciesCounts()
	slog.Info("island ready",
		"rows", m.Rows,
		"cols", m.Cols,
		"herbivores", h,
		"carnivores", c,
		"seed", cfg.Seed,
	)

	col := telemetry.NewCollector(sim)
	sim.OnYearEnd = col.Observe

	// ── Database ──────────────────────────────────────────────────────
	var db *persistence.DB
	var runID int64
	if cfg.Output.Database != "" {
		if dir := filepath.Dir(cfg.Output.Database); dir != "." {
			os.MkdirAll(dir, 0755)
		}
		db, err = persistence.Open(cfg.Output.Database)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		runID, err = db.NewRun(cfg.Seed, m.Rows, m.Cols)
		if err != nil {
			slog.Error("failed to register run", "error", err)
			os.Exit(1)
		}
		slog.Info("database opened", "path", cfg.Output.Database, "run_id", runID)
	}

	// ── Run ───────────────────────────────────────────────────────────
	sim.Simulate(cfg.Years)

	// ── Outputs ───────────────────────────────────────────────────────
	if cfg.Output.Dir != "" {
		if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
			slog.Error("failed to create output dir", "error", err)
			os.Exit(1)
		}
		historyPath := filepath.Join(cfg.Output.Dir, "history.csv")
		if err := col.WriteHistoryCSV(historyPath); err != nil {
			slog.Error("failed to write history csv", "error", err)
			os.Exit(1)
		}
		distPath := filepath.Join(cfg.Output.Dir, "distribution.csv")
		if err := col.WriteDistributionCSV(distPath); err != nil {
			slog.Error("failed to write distribution csv", "error", err)
			os.Exit(1)
		}
		slog.Info("csv written", "history", historyPath, "distribution", distPath)
	}
	if db != nil {
		if err := db.SaveRun(runID, col.History(), sim.Year(), sim.Distribution()); err != nil {
			slog.Error("failed to save run", "error", err)
			os.Exit(1)
		}
	}

	h, c = sim.SpeciesCounts()
	fmt.Printf("\nYear %d: %d herbivores and %d carnivores remain.\n", sim.Year(), h, c)

	// ── HTTP API ──────────────────────────────────────────────────────
	if cfg.API.Enabled {
		server := &api.Server{Sim: sim, Col: col, DB: db, RunID: runID, Port: cfg.API.Port}
		server.Start()
		fmt.Printf("API: http://localhost:%d/api/v1/status (Ctrl+C to stop)\n", cfg.API.Port)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
	}
}

func sortedNames(m map[string]map[string]float64) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
