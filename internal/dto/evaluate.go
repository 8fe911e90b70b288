package dto

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/semsim/internal/apperr"
	"github.com/DjordjeVuckovic/semsim/internal/bench/classify"
	"github.com/DjordjeVuckovic/semsim/internal/bench/corpus"
	"github.com/DjordjeVuckovic/semsim/internal/bench/runner"
	"github.com/DjordjeVuckovic/semsim/internal/bench/stats"
	"github.com/DjordjeVuckovic/semsim/internal/provider"
)

// MaxCases bounds a single API batch, matching the default corpus cap.
const MaxCases = corpus.DefaultMaxRecords

// EvaluateRequest carries raw texts. Truths stay on this side of the provider.
type EvaluateRequest struct {
	Cases   []TextCase     `json:"cases"`
	Options map[string]any `json:"options,omitempty"`
}

type TextCase struct {
	Truth      int      `json:"truth"`
	Target     string   `json:"target"`
	Candidates []string `json:"candidates"`
}

// ClassifyRequest carries fingerprints that were computed elsewhere.
type ClassifyRequest struct {
	Cases []FingerprintCase `json:"cases"`
}

// FingerprintCase uses null for a fingerprint the provider could not produce.
type FingerprintCase struct {
	Truth      int     `json:"truth"`
	Target     []int   `json:"target"`
	Candidates [][]int `json:"candidates"`
}

type RunResponse struct {
	RunID         string            `json:"run_id"`
	Summary       stats.Summary     `json:"summary"`
	Results       []classify.Result `json:"results"`
	Provider      *provider.Meta    `json:"provider,omitempty"`
	SemanticError string            `json:"semantic_error,omitempty"`
	ElapsedMS     float64           `json:"elapsed_ms"`
}

func (r EvaluateRequest) Validate() error {
	if err := validateCount(len(r.Cases)); err != nil {
		return err
	}
	for i, c := range r.Cases {
		if strings.TrimSpace(c.Target) == "" {
			return apperr.NewValidation(fmt.Sprintf("case %d: target is empty", i))
		}
		if err := validateTruth(i, c.Truth, len(c.Candidates)); err != nil {
			return err
		}
	}
	return nil
}

// Corpus converts the request into records the runner can send.
func (r EvaluateRequest) Corpus() *corpus.Corpus {
	records := make([]corpus.Record, len(r.Cases))
	for i, c := range r.Cases {
		fields := append([]string{strconv.Itoa(c.Truth), c.Target}, c.Candidates...)
		records[i] = corpus.Record{
			Line:       i + 1,
			Truth:      c.Truth,
			Target:     c.Target,
			Candidates: c.Candidates,
			Raw:        strings.Join(fields, "\t"),
		}
	}
	return corpus.FromRecords(records)
}

func (r ClassifyRequest) Validate() error {
	if err := validateCount(len(r.Cases)); err != nil {
		return err
	}
	for i, c := range r.Cases {
		if err := validateTruth(i, c.Truth, len(c.Candidates)); err != nil {
			return err
		}
		if hasNegative(c.Target) {
			return apperr.NewValidation(fmt.Sprintf("case %d: target has a negative concept id", i))
		}
		for j, cand := range c.Candidates {
			if hasNegative(cand) {
				return apperr.NewValidation(fmt.Sprintf("case %d: candidate %d has a negative concept id", i, j))
			}
		}
	}
	return nil
}

func (r ClassifyRequest) ToCases() []classify.Case {
	cases := make([]classify.Case, len(r.Cases))
	for i, c := range r.Cases {
		slots := make([]classify.Slot, len(c.Candidates))
		for j, ids := range c.Candidates {
			slots[j] = classify.SlotFromIDs(ids)
		}
		cases[i] = classify.Case{
			Position:   i,
			Target:     classify.SlotFromIDs(c.Target),
			Candidates: slots,
			Truth:      c.Truth,
		}
	}
	return cases
}

// NewRunResponse renders a run. Provider metadata is included only for runs that called the provider.
func NewRunResponse(res *runner.Result, viaProvider bool) RunResponse {
	resp := RunResponse{
		RunID:     res.RunID.String(),
		Summary:   res.Summary,
		Results:   res.Results,
		ElapsedMS: res.Timing.ElapsedMS(),
	}
	if viaProvider {
		meta := res.Meta
		resp.Provider = &meta
	}
	if res.SemanticError != nil {
		resp.SemanticError = res.SemanticError.Error()
	}
	if resp.Results == nil {
		resp.Results = []classify.Result{}
	}
	return resp
}

func validateCount(n int) error {
	if n == 0 {
		return apperr.NewValidation("request has no cases")
	}
	if n > MaxCases {
		return apperr.NewValidation(fmt.Sprintf("request has %d cases, at most %d are allowed", n, MaxCases))
	}
	return nil
}

func validateTruth(i, truth, candidates int) error {
	if candidates < classify.MinCandidates {
		return apperr.NewValidation(fmt.Sprintf("case %d: needs at least %d candidates", i, classify.MinCandidates))
	}
	if truth < 0 || truth >= candidates {
		return apperr.NewValidation(fmt.Sprintf("case %d: truth %d out of range", i, truth))
	}
	return nil
}

func hasNegative(ids []int) bool {
	for _, id := range ids {
		if id < 0 {
			return true
		}
	}
	return false
}
