package history

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/ollo-ai/ollo/pkg/models"
)

// Tracker records and queries completed queries in SQLite.
type Tracker struct {
	db *sql.DB
}

const createTable = `
CREATE TABLE IF NOT EXISTS query_records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	prompt_hash TEXT NOT NULL,
	model TEXT NOT NULL,
	cached INTEGER NOT NULL DEFAULT 0,
	outcome TEXT NOT NULL,
	latency_ms INTEGER NOT NULL,
	prompt_eval_count INTEGER NOT NULL DEFAULT 0,
	eval_count INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_query_model_time ON query_records(model, created_at);
`

// New opens the history database and runs auto-migration.
func New(dbPath string) (*Tracker, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}

	return &Tracker{db: db}, nil
}

// Record stores one completed query.
func (t *Tracker) Record(ctx context.Context, rec models.QueryRecord) error {
	_, err := t.db.ExecContext(ctx,
		`INSERT INTO query_records (prompt_hash, model, cached, outcome, latency_ms, prompt_eval_count, eval_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.PromptHash, rec.Model, rec.Cached, rec.Outcome, rec.LatencyMs, rec.PromptEvalCount, rec.EvalCount, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record query: %w", err)
	}
	return nil
}

// Recent returns the most recent queries, newest first.
func (t *Tracker) Recent(ctx context.Context, limit int) ([]models.QueryRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := t.db.QueryContext(ctx,
		`SELECT id, prompt_hash, model, cached, outcome, latency_ms, prompt_eval_count, eval_count, created_at
		 FROM query_records ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent queries: %w", err)
	}
	defer rows.Close()

	var records []models.QueryRecord
	for rows.Next() {
		var r models.QueryRecord
		if err := rows.Scan(&r.ID, &r.PromptHash, &r.Model, &r.Cached, &r.Outcome, &r.LatencyMs, &r.PromptEvalCount, &r.EvalCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan query: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Summary returns per-model aggregates, optionally filtered by model.
func (t *Tracker) Summary(ctx context.Context, model string) ([]models.QuerySummary, error) {
	query := `SELECT model, COUNT(*), SUM(cached), CAST(AVG(latency_ms) AS INTEGER), COALESCE(SUM(eval_count), 0)
		 FROM query_records`
	var args []any
	if model != "" {
		query += ` WHERE model = ?`
		args = append(args, model)
	}
	query += ` GROUP BY model ORDER BY model`

	rows, err := t.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("history summary: %w", err)
	}
	defer rows.Close()

	var summaries []models.QuerySummary
	for rows.Next() {
		var s models.QuerySummary
		if err := rows.Scan(&s.Model, &s.QueryCount, &s.CacheHits, &s.MeanLatencyMs, &s.TotalEval); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// Close releases the database connection.
func (t *Tracker) Close() error {
	return t.db.Close()
}
