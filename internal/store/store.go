// Package store records one evolution run's generation history and
// champion snapshots to SQLite, grounded in crownet's sqlite_logger.go
// pattern: remove any stale database file, open fresh, create tables.
package store

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// RunStore persists generation summaries and champion dumps for one run.
type RunStore struct {
	db *sql.DB
}

// Open recreates the SQLite database at path and prepares its tables,
// mirroring NewSQLiteLogger's "recreate from scratch per session" policy.
func Open(path string) (*RunStore, error) {
	_ = os.Remove(path)

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping %s: %w", path, err)
	}

	s := &RunStore{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create tables: %w", err)
	}
	return s, nil
}

func (s *RunStore) createTables() error {
	const generationsTable = `
	CREATE TABLE IF NOT EXISTS Generations (
		Generation INTEGER PRIMARY KEY,
		BestFitness REAL,
		MeanFitness REAL,
		Evaluations INTEGER,
		Stagnation INTEGER,
		StaleCount INTEGER
	);`
	if _, err := s.db.Exec(generationsTable); err != nil {
		return fmt.Errorf("create Generations table: %w", err)
	}

	const championsTable = `
	CREATE TABLE IF NOT EXISTS Champions (
		SnapshotID INTEGER PRIMARY KEY AUTOINCREMENT,
		Generation INTEGER NOT NULL,
		Fitness REAL,
		WeightDump TEXT NOT NULL
	);`
	if _, err := s.db.Exec(championsTable); err != nil {
		return fmt.Errorf("create Champions table: %w", err)
	}
	return nil
}

// RecordGeneration inserts one generation's summary row.
func (s *RunStore) RecordGeneration(generation int, bestFitness, meanFitness float64, evaluations int64, stagnation, staleCount int) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO Generations (Generation, BestFitness, MeanFitness, Evaluations, Stagnation, StaleCount) VALUES (?, ?, ?, ?, ?, ?)`,
		generation, bestFitness, meanFitness, evaluations, stagnation, staleCount,
	)
	if err != nil {
		return fmt.Errorf("store: record generation %d: %w", generation, err)
	}
	return nil
}

// RecordChampion inserts a champion's persisted weight dump text.
func (s *RunStore) RecordChampion(generation int, fitness float64, weightDump string) error {
	_, err := s.db.Exec(
		`INSERT INTO Champions (Generation, Fitness, WeightDump) VALUES (?, ?, ?)`,
		generation, fitness, weightDump,
	)
	if err != nil {
		return fmt.Errorf("store: record champion at generation %d: %w", generation, err)
	}
	return nil
}

// LatestChampion returns the most recently recorded champion's weight dump.
func (s *RunStore) LatestChampion() (string, error) {
	var dump string
	err := s.db.QueryRow(`SELECT WeightDump FROM Champions ORDER BY SnapshotID DESC LIMIT 1`).Scan(&dump)
	if err != nil {
		return "", fmt.Errorf("store: latest champion: %w", err)
	}
	return dump, nil
}

// Close releases the underlying database handle.
func (s *RunStore) Close() error {
	return s.db.Close()
}
