package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/skyobs/metar-decoder/internal/metar"
)

const schema = `
CREATE TABLE IF NOT EXISTS metar_reports (
	id               BIGSERIAL PRIMARY KEY,
	report           TEXT NOT NULL UNIQUE,
	station_id       TEXT NOT NULL,
	observation_time TIMESTAMPTZ,
	payload          JSONB NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);`

const insertQuery = `
INSERT INTO metar_reports (report, station_id, observation_time, payload)
VALUES ($1, $2, $3, $4)
ON CONFLICT (report) DO NOTHING`

// Store persists decoded reports in Postgres. Rows are keyed by the raw
// report text, so re-ingesting the same input is a no-op.
type Store struct {
	db *sqlx.DB
}

// Open connects to the database and bootstraps the schema.
func Open(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts the reports and returns how many rows were actually new.
func (s *Store) Save(ctx context.Context, reports []*metar.Report) (int, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	for _, rep := range reports {
		payload, err := json.Marshal(rep)
		if err != nil {
			return 0, fmt.Errorf("marshaling report for %s: %w", rep.StationID, err)
		}
		res, err := tx.ExecContext(ctx, insertQuery,
			rep.Report, rep.StationID, observationTimestamp(rep), payload)
		if err != nil {
			return 0, fmt.Errorf("inserting report for %s: %w", rep.StationID, err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += int(rows)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return inserted, nil
}

// observationTimestamp extracts a SQL-storable timestamp; only fully
// resolved observation times qualify.
func observationTimestamp(rep *metar.Report) *time.Time {
	if rep.ObservationTime == nil || rep.ObservationTime.Kind != metar.TimeDateTime {
		return nil
	}
	return &rep.ObservationTime.DateTime
}
