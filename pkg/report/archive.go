package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const archiveSchema = `
CREATE TABLE IF NOT EXISTS final_reports (
	id UUID PRIMARY KEY,
	session_id TEXT NOT NULL,
	scam_detected BOOLEAN NOT NULL,
	scam_type TEXT NOT NULL DEFAULT '',
	total_messages INT NOT NULL,
	intelligence JSONB NOT NULL,
	agent_notes TEXT NOT NULL,
	generated_at TIMESTAMPTZ NOT NULL
)`

// Archive persists final reports to Postgres so engagements survive beyond
// webhook delivery. It satisfies the same Deliver contract as Webhook.
type Archive struct {
	pool *pgxpool.Pool
}

// NewArchive connects to Postgres and ensures the reports table exists.
func NewArchive(ctx context.Context, dsn string) (*Archive, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, archiveSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure reports table: %w", err)
	}
	return &Archive{pool: pool}, nil
}

// Deliver inserts the report.
func (a *Archive) Deliver(ctx context.Context, f *Final) error {
	intelJSON, err := json.Marshal(f.Intelligence)
	if err != nil {
		return fmt.Errorf("marshal intelligence: %w", err)
	}

	_, err = a.pool.Exec(ctx,
		`INSERT INTO final_reports
		 (id, session_id, scam_detected, scam_type, total_messages, intelligence, agent_notes, generated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.New(), f.SessionID, f.ScamDetected, f.ScamType,
		f.TotalMessages, intelJSON, f.AgentNotes, f.GeneratedAt)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (a *Archive) Close() {
	a.pool.Close()
}
