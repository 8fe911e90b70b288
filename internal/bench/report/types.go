package report

import (
	"runtime"
	"time"

	"github.com/DjordjeVuckovic/semsim/internal/bench/classify"
	"github.com/DjordjeVuckovic/semsim/internal/bench/runner"
	"github.com/DjordjeVuckovic/semsim/internal/bench/stats"
	"github.com/DjordjeVuckovic/semsim/internal/provider"
)

type Report struct {
	Meta    RunMeta       `json:"meta"`
	Summary stats.Summary `json:"summary"`
	Margins MarginStats   `json:"margins"`
	Timing  TimingInfo    `json:"timing"`
	Cases   []CaseEntry   `json:"cases"`
}

type RunMeta struct {
	RunID         string            `json:"run_id"`
	Timestamp     time.Time         `json:"timestamp"`
	Options       map[string]any    `json:"options"`
	Corpus        runner.CorpusInfo `json:"corpus"`
	Provider      provider.Meta     `json:"provider"`
	Environment   EnvironmentInfo   `json:"environment"`
	Error         string            `json:"error,omitempty"`
	SemanticError string            `json:"semantic_error,omitempty"`
}

type EnvironmentInfo struct {
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	NumCPU    int    `json:"num_cpu"`
}

func NewEnvironmentInfo() EnvironmentInfo {
	return EnvironmentInfo{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
	}
}

// MarginStats describes the spread of certainty margins over cases with at least
// two scored candidates. Values are fractions in [0,1].
type MarginStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P90    float64 `json:"p90"`
	Stddev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

type TimingInfo struct {
	ElapsedMS          float64 `json:"elapsed_ms"`
	MSPerCase          float64 `json:"ms_per_case"`
	ServiceMS          float64 `json:"service_ms"`
	ServiceMSPerCase   float64 `json:"service_ms_per_case"`
	ServiceMSPerSample float64 `json:"service_ms_per_sample"`
	CharsPerSecond     float64 `json:"chars_per_second"`
}

type CaseEntry struct {
	Position    int                       `json:"position"`
	Line        int                       `json:"line,omitempty"`
	Status      classify.Status           `json:"status"`
	Outcome     Outcome                   `json:"outcome"`
	WinnerIndex int                       `json:"winner_index"`
	Truth       int                       `json:"truth"`
	WinnerScore float64                   `json:"winner_score"`
	Margin      float64                   `json:"margin"`
	TieCount    int                       `json:"tie_count"`
	Scores      []classify.CandidateScore `json:"scores,omitempty"`
}
