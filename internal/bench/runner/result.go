package runner

import (
	"time"

	"github.com/DjordjeVuckovic/semsim/internal/apperr"
	"github.com/DjordjeVuckovic/semsim/internal/bench/classify"
	"github.com/DjordjeVuckovic/semsim/internal/bench/stats"
	"github.com/DjordjeVuckovic/semsim/internal/provider"
	"github.com/DjordjeVuckovic/semsim/pkg/utils"
	"github.com/google/uuid"
)

// Outcome is what one evaluation of a case list produces.
type Outcome struct {
	Summary stats.Summary
	Results []classify.Result
}

type CorpusInfo struct {
	Records      int `json:"records"`
	Chars        int `json:"chars"`
	Samples      int `json:"samples"`
	FormatErrors int `json:"format_errors"`
}

type Timing struct {
	Elapsed time.Duration `json:"elapsed"`
	// ServiceMS is the processing time reported by the provider.
	ServiceMS float64 `json:"service_ms"`
}

func (t Timing) ElapsedMS() float64 {
	return float64(t.Elapsed) / float64(time.Millisecond)
}

func (t Timing) MSPerCase(cases int) float64 {
	return utils.SafeDiv(t.ElapsedMS(), float64(cases))
}

func (t Timing) ServiceMSPerCase(cases int) float64 {
	return utils.SafeDiv(t.ServiceMS, float64(cases))
}

func (t Timing) ServiceMSPerSample(samples int) float64 {
	return utils.SafeDiv(t.ServiceMS, float64(samples))
}

// CharsPerSecond is the provider throughput measured against its own service time.
func (t Timing) CharsPerSecond(chars int) float64 {
	return utils.SafeDiv(1000*float64(chars), t.ServiceMS)
}

type Result struct {
	RunID     uuid.UUID
	StartedAt time.Time
	Options   map[string]any
	Corpus    CorpusInfo
	Summary   stats.Summary
	Cases     []classify.Case
	Results   []classify.Result
	Meta      provider.Meta
	Timing    Timing

	// Err is set when the provider exchange failed and nothing was classified.
	Err *apperr.ProviderError
	// SemanticError is an error the provider reported alongside usable fingerprints.
	SemanticError *apperr.ProviderError
}

func (r *Result) Failed() bool {
	return r.Err != nil
}
