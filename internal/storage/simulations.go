package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SimulationRecord is one saved simulation run.
type SimulationRecord struct {
	ID           string // UUID, generated on save when empty
	Variant      string
	Strategy     string
	Seed         int64
	Rounds       int
	Stake        int
	Cost         int
	Revenue      int
	Net          int
	ROI          float64 // Net / Cost
	Wins         int
	Losses       int
	Traps        int
	Rigged       int
	ConfigErrors int
	CreatedAt    time.Time
}

const simulationColumns = `id, variant, strategy, seed, rounds, stake, cost, revenue, net, roi,
	wins, losses, traps, rigged, config_errors, created_at`

// SaveSimulation records a simulation run and returns its ID.
func (s *Store) SaveSimulation(rec SimulationRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO simulation_runs
		 (id, variant, strategy, seed, rounds, stake, cost, revenue, net, roi, wins, losses, traps, rigged, config_errors)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Variant, rec.Strategy, rec.Seed, rec.Rounds, rec.Stake,
		rec.Cost, rec.Revenue, rec.Net, rec.ROI,
		rec.Wins, rec.Losses, rec.Traps, rec.Rigged, rec.ConfigErrors,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save simulation: %w", err)
	}

	return rec.ID, nil
}

// SimulationByID retrieves a run by its ID. Returns nil if it does not exist.
func (s *Store) SimulationByID(id string) (*SimulationRecord, error) {
	row := s.db.QueryRow(`SELECT `+simulationColumns+` FROM simulation_runs WHERE id = ?`, id)

	rec, err := scanSimulation(row)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query simulation: %w", err)
	}
	return &rec, nil
}

// RecentSimulations retrieves the most recent runs, optionally filtered by
// variant. An empty variant returns runs of every variant.
func (s *Store) RecentSimulations(variant string, limit int) ([]SimulationRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+simulationColumns+`
		 FROM simulation_runs
		 WHERE ? = '' OR variant = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		variant, variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query simulations: %w", err)
	}
	defer rows.Close()

	var records []SimulationRecord
	for rows.Next() {
		rec, err := scanSimulation(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSimulation(row rowScanner) (SimulationRecord, error) {
	var rec SimulationRecord
	var createdAt any
	err := row.Scan(
		&rec.ID, &rec.Variant, &rec.Strategy, &rec.Seed, &rec.Rounds, &rec.Stake,
		&rec.Cost, &rec.Revenue, &rec.Net, &rec.ROI,
		&rec.Wins, &rec.Losses, &rec.Traps, &rec.Rigged, &rec.ConfigErrors,
		&createdAt,
	)
	rec.CreatedAt = parseTime(createdAt)
	return rec, err
}
