// Package persistence stores simulation run history in SQLite.
package persistence

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/engine"
	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/telemetry"
)

// DB wraps a SQLite connection for run history storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seed INTEGER NOT NULL,
		map_rows INTEGER NOT NULL,
		map_cols INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS year_stats (
		run_id INTEGER NOT NULL REFERENCES runs(id),
		year INTEGER NOT NULL,
		herbivores INTEGER NOT NULL,
		carnivores INTEGER NOT NULL,
		mean_herb_weight REAL NOT NULL,
		std_herb_weight REAL NOT NULL,
		mean_herb_fitness REAL NOT NULL,
		mean_carn_weight REAL NOT NULL,
		std_carn_weight REAL NOT NULL,
		mean_carn_fitness REAL NOT NULL,
		PRIMARY KEY (run_id, year)
	);

	CREATE TABLE IF NOT EXISTS cell_counts (
		run_id INTEGER NOT NULL REFERENCES runs(id),
		year INTEGER NOT NULL,
		cell_row INTEGER NOT NULL,
		cell_col INTEGER NOT NULL,
		herbivores INTEGER NOT NULL,
		carnivores INTEGER NOT NULL,
		PRIMARY KEY (run_id, year, cell_row, cell_col)
	);

	CREATE INDEX IF NOT EXISTS idx_year_stats_run ON year_stats(run_id);
	CREATE INDEX IF NOT EXISTS idx_cell_counts_run ON cell_counts(run_id, year);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// NewRun registers a simulation run and returns its id.
func (db *DB) NewRun(seed int64, rows, cols int) (int64, error) {
	res, err := db.conn.Exec(
		"INSERT INTO runs (seed, map_rows, map_cols, created_at) VALUES (?, ?, ?, ?)",
		seed, rows, cols, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return res.LastInsertId()
}

// SaveYearStats upserts per-year statistics for one run.
func (db *DB) SaveYearStats(runID int64, rows []telemetry.YearStats) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT OR REPLACE INTO year_stats
		(run_id, year, herbivores, carnivores,
		 mean_herb_weight, std_herb_weight, mean_herb_fitness,
		 mean_carn_weight, std_carn_weight, mean_carn_fitness)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		_, err := stmt.Exec(
			runID, r.Year, r.Herbivores, r.Carnivores,
			r.MeanHerbWeight, r.StdHerbWeight, r.MeanHerbFitness,
			r.MeanCarnWeight, r.StdCarnWeight, r.MeanCarnFitness,
		)
		if err != nil {
			return fmt.Errorf("insert year %d: %w", r.Year, err)
		}
	}

	return tx.Commit()
}

// SaveDistribution replaces the per-cell census of one run-year.
func (db *DB) SaveDistribution(runID int64, year int, counts []engine.CellCount) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM cell_counts WHERE run_id = ? AND year = ?", runID, year); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO cell_counts
		(run_id, year, cell_row, cell_col, herbivores, carnivores)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range counts {
		if _, err := stmt.Exec(runID, year, c.Row, c.Col, c.Herbivores, c.Carnivores); err != nil {
			return fmt.Errorf("insert cell (%d, %d): %w", c.Row, c.Col, err)
		}
	}

	return tx.Commit()
}

// SaveRun writes everything a finished run produced: its per-year
// statistics and the closing census.
func (db *DB) SaveRun(runID int64, history []telemetry.YearStats, year int, counts []engine.CellCount) error {
	if err := db.SaveYearStats(runID, history); err != nil {
		return fmt.Errorf("save year stats: %w", err)
	}
	if err := db.SaveDistribution(runID, year, counts); err != nil {
		return fmt.Errorf("save distribution: %w", err)
	}
	slog.Info("run saved", "run_id", runID, "years", len(history))
	return nil
}

// LoadYearStats returns one run's statistics, oldest year first.
func (db *DB) LoadYearStats(runID int64) ([]telemetry.YearStats, error) {
	var rows []telemetry.YearStats
	err := db.conn.Select(&rows, `SELECT
		year, herbivores, carnivores,
		mean_herb_weight, std_herb_weight, mean_herb_fitness,
		mean_carn_weight, std_carn_weight, mean_carn_fitness
		FROM year_stats WHERE run_id = ? ORDER BY year`, runID)
	return rows, err
}

// LoadDistribution returns one run-year's census in row-major order.
func (db *DB) LoadDistribution(runID int64, year int) ([]engine.CellCount, error) {
	var counts []engine.CellCount
	err := db.conn.Select(&counts, `SELECT cell_row, cell_col, herbivores, carnivores
		FROM cell_counts WHERE run_id = ? AND year = ?
		ORDER BY cell_row, cell_col`, runID, year)
	return counts, err
}
