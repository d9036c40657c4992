// Package leaderboard persists benchmark results in sqlite and serves the
// leaderboard and history queries.
package leaderboard

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const defaultLimit = 50

type Store struct {
	db *sql.DB
}

// Entry is one persisted benchmark run. The json tags are the API wire
// format served by the leaderboard endpoints.
type Entry struct {
	ID       int64              `json:"id"`
	RunID    string             `json:"run_id"`
	Model    string             `json:"model"`
	Provider string             `json:"provider"`
	Dataset  string             `json:"dataset"`
	Task     string             `json:"task"`
	Language string             `json:"language"`
	Score    float64            `json:"score"`
	Metrics  map[string]float64 `json:"metrics,omitempty"`
	Latency  int64              `json:"latency_ms"`
	EvalDate time.Time          `json:"eval_date"`
}

func NewStore(dbPath string) (*Store, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, errors.New("leaderboard: empty db path")
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("leaderboard: create db dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: open db: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("leaderboard: ping db: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("leaderboard: nil db")
	}

	stmts := []string{
		`PRAGMA foreign_keys = ON`,
		`PRAGMA journal_mode = WAL`,
		`CREATE TABLE IF NOT EXISTS benchmark_entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			model TEXT NOT NULL,
			provider TEXT NOT NULL,
			dataset TEXT NOT NULL,
			task TEXT NOT NULL,
			language TEXT NOT NULL,
			score REAL NOT NULL,
			metrics TEXT NOT NULL,
			latency INTEGER NOT NULL,
			eval_date INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_benchmark_dataset ON benchmark_entries(dataset)`,
		`CREATE INDEX IF NOT EXISTS idx_benchmark_model_dataset ON benchmark_entries(model, dataset)`,
		`CREATE INDEX IF NOT EXISTS idx_benchmark_language ON benchmark_entries(language)`,
		`CREATE INDEX IF NOT EXISTS idx_benchmark_eval_date ON benchmark_entries(eval_date)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("leaderboard: init schema: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Save(ctx context.Context, entry *Entry) error {
	if s == nil || s.db == nil {
		return errors.New("leaderboard: nil store")
	}
	if ctx == nil {
		return errors.New("leaderboard: nil context")
	}
	if entry == nil {
		return errors.New("leaderboard: nil entry")
	}

	model := strings.TrimSpace(entry.Model)
	provider := strings.TrimSpace(entry.Provider)
	dataset := strings.TrimSpace(entry.Dataset)
	if model == "" || provider == "" || dataset == "" {
		return errors.New("leaderboard: missing model/provider/dataset")
	}

	runID := strings.TrimSpace(entry.RunID)
	if runID == "" {
		runID = uuid.NewString()
	}
	evalDate := entry.EvalDate
	if evalDate.IsZero() {
		evalDate = time.Now().UTC()
	}

	metricsJSON, err := json.Marshal(entry.Metrics)
	if err != nil {
		return fmt.Errorf("leaderboard: marshal metrics: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO benchmark_entries (
			run_id, model, provider, dataset, task, language, score, metrics, latency, eval_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, model, provider, dataset,
		strings.TrimSpace(entry.Task), strings.TrimSpace(entry.Language),
		entry.Score, string(metricsJSON), entry.Latency, evalDate.UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("leaderboard: insert entry: %w", err)
	}

	if id, err := res.LastInsertId(); err == nil {
		entry.ID = id
	}
	entry.RunID = runID
	entry.EvalDate = evalDate
	entry.Model = model
	entry.Provider = provider
	entry.Dataset = dataset
	return nil
}

// GetLeaderboard lists the best runs for a dataset, highest score first.
func (s *Store) GetLeaderboard(ctx context.Context, dataset string, limit int) ([]Entry, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("leaderboard: nil store")
	}
	if ctx == nil {
		return nil, errors.New("leaderboard: nil context")
	}
	dataset = strings.TrimSpace(dataset)
	if dataset == "" {
		return nil, errors.New("leaderboard: empty dataset")
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_id, model, provider, dataset, task, language, score, metrics, latency, eval_date
		FROM benchmark_entries
		WHERE dataset = ?
		ORDER BY score DESC, latency ASC, eval_date DESC
		LIMIT ?
	`, dataset, limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: query leaderboard: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// GetModelHistory lists every run of a model on a dataset, newest first.
func (s *Store) GetModelHistory(ctx context.Context, model, dataset string) ([]Entry, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("leaderboard: nil store")
	}
	if ctx == nil {
		return nil, errors.New("leaderboard: nil context")
	}
	model = strings.TrimSpace(model)
	dataset = strings.TrimSpace(dataset)
	if model == "" || dataset == "" {
		return nil, errors.New("leaderboard: missing model/dataset")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_id, model, provider, dataset, task, language, score, metrics, latency, eval_date
		FROM benchmark_entries
		WHERE model = ? AND dataset = ?
		ORDER BY eval_date DESC
	`, model, dataset)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: query model history: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

func scanRows(rows *sql.Rows) ([]Entry, error) {
	var out []Entry
	for rows.Next() {
		var e Entry
		var metricsJSON string
		var evalDateMS int64
		if err := rows.Scan(
			&e.ID,
			&e.RunID,
			&e.Model,
			&e.Provider,
			&e.Dataset,
			&e.Task,
			&e.Language,
			&e.Score,
			&metricsJSON,
			&e.Latency,
			&evalDateMS,
		); err != nil {
			return nil, fmt.Errorf("leaderboard: scan entry: %w", err)
		}
		if metricsJSON != "" && metricsJSON != "null" {
			if err := json.Unmarshal([]byte(metricsJSON), &e.Metrics); err != nil {
				return nil, fmt.Errorf("leaderboard: parse metrics: %w", err)
			}
		}
		e.EvalDate = time.UnixMilli(evalDateMS).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leaderboard: scan rows: %w", err)
	}
	return out, nil
}
