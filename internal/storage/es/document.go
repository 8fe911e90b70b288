package es

import (
	"strconv"
	"time"

	"github.com/DjordjeVuckovic/semsim/internal/bench/classify"
	"github.com/DjordjeVuckovic/semsim/internal/bench/runner"
)

// CaseDocument is one classified case, denormalized with its run for querying.
type CaseDocument struct {
	ID                string                    `json:"id"`
	RunID             string                    `json:"run_id"`
	StartedAt         time.Time                 `json:"started_at"`
	Position          int                       `json:"position"`
	Line              int                       `json:"line"`
	Status            string                    `json:"status"`
	WinnerIndex       int                       `json:"winner_index"`
	Truth             int                       `json:"truth"`
	WinnerScore       float64                   `json:"winner_score"`
	RunnerUpScore     float64                   `json:"runner_up_score"`
	Margin            float64                   `json:"margin"`
	Ambiguous         bool                      `json:"ambiguous"`
	Correct           bool                      `json:"correct"`
	CandidateFailures int                       `json:"candidate_failures"`
	Target            string                    `json:"target"`
	Candidates        []string                  `json:"candidates"`
	Scores            []classify.CandidateScore `json:"scores"`
	RunAccuracy       float64                   `json:"run_accuracy"`
	IndexedAt         time.Time                 `json:"indexed_at"`
}

func documentID(res *runner.Result, position int) string {
	return res.RunID.String() + "-" + strconv.Itoa(position)
}

func toDocuments(res *runner.Result, now time.Time) []CaseDocument {
	docs := make([]CaseDocument, 0, len(res.Results))
	for i, r := range res.Results {
		doc := CaseDocument{
			ID:                documentID(res, r.Position),
			RunID:             res.RunID.String(),
			StartedAt:         res.StartedAt,
			Position:          r.Position,
			Status:            string(r.Status),
			WinnerIndex:       r.WinnerIndex,
			Truth:             r.Truth,
			WinnerScore:       r.WinnerScore,
			RunnerUpScore:     r.RunnerUpScore,
			Margin:            r.Margin,
			Ambiguous:         r.Ambiguous,
			Correct:           r.Correct,
			CandidateFailures: r.CandidateFailures,
			Scores:            r.Scores,
			RunAccuracy:       res.Summary.Accuracy,
			IndexedAt:         now,
		}
		if i < len(res.Cases) {
			c := res.Cases[i]
			doc.Line = c.Line
			doc.Target = c.TargetText
			doc.Candidates = c.CandidateTexts
		}
		docs = append(docs, doc)
	}
	return docs
}
