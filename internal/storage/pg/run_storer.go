package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/semsim/internal/bench/runner"
	"github.com/DjordjeVuckovic/semsim/internal/bench/stats"
	"github.com/DjordjeVuckovic/semsim/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var caseResultColumns = []string{
	"run_id", "position", "line", "status", "winner_index", "truth",
	"winner_score", "runner_up_score", "margin", "tie_count",
	"ambiguous", "correct", "candidate_failures", "scores",
}

// RunStorer writes a run row and its case results in one transaction.
type RunStorer struct {
	db     *pgxpool.Pool
	health *HealthChecker
}

func NewRunStorer(pool *ConnectionPool) *RunStorer {
	return &RunStorer{db: pool.conn, health: NewHealthChecker(pool)}
}

// Healthy lets the API health endpoint include the result database.
func (s *RunStorer) Healthy(ctx context.Context) bool {
	return s.health.Healthy(ctx)
}

func (s *RunStorer) Type() storage.Type {
	return storage.PG
}

func (s *RunStorer) Store(ctx context.Context, res *runner.Result) error {
	optionsJSON, err := json.Marshal(res.Options)
	if err != nil {
		return fmt.Errorf("failed to marshal options: %w", err)
	}
	summaryJSON, err := json.Marshal(res.Summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	metaJSON, err := json.Marshal(res.Meta)
	if err != nil {
		return fmt.Errorf("failed to marshal provider meta: %w", err)
	}

	var runErr, semErr *string
	if res.Err != nil {
		msg := res.Err.Error()
		runErr = &msg
	}
	if res.SemanticError != nil {
		msg := res.SemanticError.Error()
		semErr = &msg
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("Rollback failed", "error", err)
		}
	}()

	cmd := `
        INSERT INTO runs (id, started_at, options, corpus_records, corpus_chars, corpus_samples,
                          accuracy, average_margin, cases_processed, summary, provider_meta,
                          elapsed_ms, service_ms, error, semantic_error)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
    `
	_, err = tx.Exec(ctx, cmd,
		res.RunID,
		res.StartedAt,
		optionsJSON,
		res.Corpus.Records,
		res.Corpus.Chars,
		res.Corpus.Samples,
		res.Summary.Accuracy,
		res.Summary.AverageMargin,
		res.Summary.CasesProcessed,
		summaryJSON,
		metaJSON,
		res.Timing.ElapsedMS(),
		res.Timing.ServiceMS,
		runErr,
		semErr,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	rows, err := caseRows(res)
	if err != nil {
		return err
	}
	if len(rows) > 0 {
		_, err = tx.CopyFrom(ctx, pgx.Identifier{"case_results"}, caseResultColumns, pgx.CopyFromRows(rows))
		if err != nil {
			return fmt.Errorf("failed to bulk insert case results: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

func caseRows(res *runner.Result) ([][]any, error) {
	rows := make([][]any, len(res.Results))
	for i, r := range res.Results {
		scoresJSON, err := json.Marshal(r.Scores)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal scores for case %d: %w", r.Position, err)
		}

		var line int
		if i < len(res.Cases) {
			line = res.Cases[i].Line
		}

		rows[i] = []any{
			res.RunID,
			r.Position,
			line,
			string(r.Status),
			r.WinnerIndex,
			r.Truth,
			r.WinnerScore,
			r.RunnerUpScore,
			r.Margin,
			r.TieCount,
			r.Ambiguous,
			r.Correct,
			r.CandidateFailures,
			scoresJSON,
		}
	}
	return rows, nil
}

// GetSummary loads the stored summary of a run.
func (s *RunStorer) GetSummary(ctx context.Context, id uuid.UUID) (stats.Summary, error) {
	var raw []byte
	err := s.db.QueryRow(ctx, `SELECT summary FROM runs WHERE id = $1`, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return stats.Summary{}, storage.ErrRunNotFound
	}
	if err != nil {
		return stats.Summary{}, fmt.Errorf("failed to query run: %w", err)
	}

	var sum stats.Summary
	if err := json.Unmarshal(raw, &sum); err != nil {
		return stats.Summary{}, fmt.Errorf("failed to unmarshal summary: %w", err)
	}
	return sum, nil
}

// CountCaseResults returns how many case rows belong to a run.
func (s *RunStorer) CountCaseResults(ctx context.Context, id uuid.UUID) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM case_results WHERE run_id = $1`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count case results: %w", err)
	}
	return n, nil
}
