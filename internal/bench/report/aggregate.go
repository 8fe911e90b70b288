package report

import (
	"log/slog"

	"github.com/DjordjeVuckovic/semsim/internal/bench/classify"
	"github.com/DjordjeVuckovic/semsim/internal/bench/runner"
	"github.com/DjordjeVuckovic/semsim/pkg/utils"
	mstats "github.com/montanaflynn/stats"
)

func Generate(res *runner.Result) *Report {
	r := &Report{
		Meta: RunMeta{
			RunID:       res.RunID.String(),
			Timestamp:   res.StartedAt,
			Options:     res.Options,
			Corpus:      res.Corpus,
			Provider:    res.Meta,
			Environment: NewEnvironmentInfo(),
		},
		Summary: res.Summary,
		Timing:  timingInfo(res),
		Cases:   make([]CaseEntry, 0, len(res.Results)),
	}
	if res.Err != nil {
		r.Meta.Error = res.Err.Error()
	}
	if res.SemanticError != nil {
		r.Meta.SemanticError = res.SemanticError.Error()
	}

	for i, cr := range res.Results {
		var line int
		if i < len(res.Cases) {
			line = res.Cases[i].Line
		}
		r.Cases = append(r.Cases, CaseEntry{
			Position:    cr.Position,
			Line:        line,
			Status:      cr.Status,
			Outcome:     OutcomeOf(cr),
			WinnerIndex: cr.WinnerIndex,
			Truth:       cr.Truth,
			WinnerScore: cr.WinnerScore,
			Margin:      cr.Margin,
			TieCount:    cr.TieCount,
			Scores:      cr.Scores,
		})
	}

	r.Margins = marginStats(res.Results)
	return r
}

func timingInfo(res *runner.Result) TimingInfo {
	t := res.Timing
	cases := res.Summary.CasesSeen
	return TimingInfo{
		ElapsedMS:          utils.RoundDecimal(t.ElapsedMS(), 2),
		MSPerCase:          utils.RoundDecimal(t.MSPerCase(cases), 4),
		ServiceMS:          t.ServiceMS,
		ServiceMSPerCase:   utils.RoundDecimal(t.ServiceMSPerCase(cases), 4),
		ServiceMSPerSample: utils.RoundDecimal(t.ServiceMSPerSample(res.Corpus.Samples), 4),
		CharsPerSecond:     utils.RoundDecimal(t.CharsPerSecond(res.Corpus.Chars), 0),
	}
}

func marginStats(results []classify.Result) MarginStats {
	var data mstats.Float64Data
	for _, r := range results {
		if r.Classified() && r.MarginDefined() {
			data = append(data, r.Margin)
		}
	}

	ms := MarginStats{Count: len(data)}
	if len(data) == 0 {
		return ms
	}

	var err error
	if ms.Mean, err = mstats.Mean(data); err != nil {
		slog.Warn("Margin mean failed", "error", err)
	}
	if ms.Median, err = mstats.Median(data); err != nil {
		slog.Warn("Margin median failed", "error", err)
	}
	if ms.P90, err = mstats.Percentile(data, 90); err != nil {
		slog.Warn("Margin percentile failed", "error", err)
	}
	if ms.Stddev, err = mstats.StandardDeviation(data); err != nil {
		slog.Warn("Margin stddev failed", "error", err)
	}
	if ms.Min, err = mstats.Min(data); err != nil {
		slog.Warn("Margin min failed", "error", err)
	}
	if ms.Max, err = mstats.Max(data); err != nil {
		slog.Warn("Margin max failed", "error", err)
	}

	ms.Mean = utils.RoundDecimal(ms.Mean, 4)
	ms.Median = utils.RoundDecimal(ms.Median, 4)
	ms.P90 = utils.RoundDecimal(ms.P90, 4)
	ms.Stddev = utils.RoundDecimal(ms.Stddev, 4)
	ms.Min = utils.RoundDecimal(ms.Min, 4)
	ms.Max = utils.RoundDecimal(ms.Max, 4)
	return ms
}
