package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/semsim/internal/apperr"
	"github.com/DjordjeVuckovic/semsim/internal/bench/classify"
	"github.com/DjordjeVuckovic/semsim/internal/bench/corpus"
	"github.com/DjordjeVuckovic/semsim/internal/bench/stats"
	"github.com/DjordjeVuckovic/semsim/internal/provider"
	"github.com/google/uuid"
)

type Runner struct {
	client provider.Client
	config Config
}

func New(client provider.Client, cfg Config) *Runner {
	if cfg.Options == nil {
		cfg.Options = provider.DefaultOptions()
	}
	return &Runner{client: client, config: cfg}
}

// Run sends the whole corpus to the provider in one request and evaluates the
// response. It always returns a Result; a failed exchange yields an all-zero summary.
func (r *Runner) Run(ctx context.Context, c *corpus.Corpus) *Result {
	res := &Result{
		RunID:     uuid.New(),
		StartedAt: time.Now(),
		Options:   r.config.Options,
		Corpus: CorpusInfo{
			Records:      c.Len(),
			Chars:        c.Chars,
			Samples:      c.Samples,
			FormatErrors: len(c.FormatErrors),
		},
	}

	slog.Info("Starting batch", "run_id", res.RunID, "cases", c.Len(), "samples", c.Samples)

	resp := r.client.Understand(ctx, provider.Request{
		Payload: c.Payload(),
		Options: r.config.Options,
	})
	res.Timing.Elapsed = time.Since(res.StartedAt)

	if !resp.OK() {
		res.Err = resp.Failure
		if res.Err == nil {
			res.Err = apperr.NewCommunication("provider returned no response", nil)
		}
		slog.Error("Provider exchange failed, batch aborted", "run_id", res.RunID, "error", res.Err)

		acc := stats.New()
		acc.AddFormatErrors(len(c.FormatErrors))
		res.Summary = acc.Finalize()
		return res
	}

	res.SemanticError = resp.SemanticError()
	res.Meta = resp.Response.Meta
	res.Timing.ServiceMS = resp.Response.MS

	res.Cases = BuildCases(c.Records, resp.Response.Moniform)
	out := Evaluate(res.Cases, len(c.FormatErrors))
	res.Summary = out.Summary
	res.Results = out.Results

	slog.Info("Batch finished",
		"run_id", res.RunID,
		"processed", res.Summary.CasesProcessed,
		"accuracy", res.Summary.Accuracy,
		"elapsed", res.Timing.Elapsed,
	)
	return res
}

// BuildCases pairs records with provider entries by position. A record without an
// entry becomes a case with an absent target; surplus entries are ignored.
func BuildCases(records []corpus.Record, moniform [][][]int) []classify.Case {
	if len(moniform) != len(records) {
		slog.Warn("Provider response arity mismatch", "records", len(records), "entries", len(moniform))
	}

	cases := make([]classify.Case, len(records))
	for i, rec := range records {
		c := classify.Case{
			Position:       i,
			Line:           rec.Line,
			Target:         classify.Absent(),
			Candidates:     make([]classify.Slot, len(rec.Candidates)),
			Truth:          rec.Truth,
			TargetText:     rec.Target,
			CandidateTexts: rec.Candidates,
			Raw:            rec.Raw,
		}

		var entry [][]int
		if i < len(moniform) {
			entry = moniform[i]
		}
		if len(entry) > 0 {
			c.Target = classify.SlotFromIDs(entry[0])
		}
		for j := range c.Candidates {
			if j+1 < len(entry) {
				c.Candidates[j] = classify.SlotFromIDs(entry[j+1])
			} else {
				c.Candidates[j] = classify.Absent()
			}
		}

		cases[i] = c
	}
	return cases
}

// Evaluate classifies cases in input order with a fresh accumulator.
func Evaluate(cases []classify.Case, formatErrors int) Outcome {
	acc := stats.New()
	acc.AddFormatErrors(formatErrors)

	results := make([]classify.Result, 0, len(cases))
	for _, c := range cases {
		res := classify.Classify(c)
		acc.Absorb(res)
		results = append(results, res)
	}

	return Outcome{
		Summary: acc.Finalize(),
		Results: results,
	}
}
