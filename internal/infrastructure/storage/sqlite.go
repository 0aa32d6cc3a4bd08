package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/vitos/ig_account_mirror/internal/domain"
)

// SQLiteStore persists committed harvest sequences. The live account
// mirror itself is memory-only; the only durable state this client keeps
// is the drift-check baseline.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `CREATE TABLE IF NOT EXISTS harvest_sequences (
		strategy_id TEXT PRIMARY KEY,
		total_contracts REAL NOT NULL,
		target_points REAL NOT NULL,
		band_divisor REAL NOT NULL,
		harvest_fraction REAL NOT NULL,
		steps TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to exec query %s: %w", query, err)
	}
	return nil
}

func (s *SQLiteStore) SaveSequence(ctx context.Context, seq *domain.HarvestSequence) error {
	steps, err := json.Marshal(seq.Steps)
	if err != nil {
		return err
	}
	query := `INSERT INTO harvest_sequences (strategy_id, total_contracts, target_points, band_divisor, harvest_fraction, steps, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)
			  ON CONFLICT(strategy_id) DO UPDATE SET
				total_contracts=excluded.total_contracts,
				target_points=excluded.target_points,
				band_divisor=excluded.band_divisor,
				harvest_fraction=excluded.harvest_fraction,
				steps=excluded.steps,
				created_at=excluded.created_at`
	_, err = s.db.ExecContext(ctx, query,
		seq.StrategyID, seq.Params.TotalContracts, seq.Params.TargetPoints,
		seq.Params.BandDivisor, seq.Params.HarvestFraction, string(steps), seq.CreatedAt)
	return err
}

func (s *SQLiteStore) GetSequence(ctx context.Context, strategyID string) (*domain.HarvestSequence, error) {
	query := `SELECT strategy_id, total_contracts, target_points, band_divisor, harvest_fraction, steps, created_at
			  FROM harvest_sequences WHERE strategy_id = ?`
	row := s.db.QueryRowContext(ctx, query, strategyID)

	var seq domain.HarvestSequence
	var steps string
	err := row.Scan(&seq.StrategyID, &seq.Params.TotalContracts, &seq.Params.TargetPoints,
		&seq.Params.BandDivisor, &seq.Params.HarvestFraction, &steps, &seq.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(steps), &seq.Steps); err != nil {
		return nil, fmt.Errorf("corrupt steps for %s: %w", strategyID, err)
	}
	return &seq, nil
}

func (s *SQLiteStore) DeleteSequence(ctx context.Context, strategyID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM harvest_sequences WHERE strategy_id = ?`, strategyID)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
