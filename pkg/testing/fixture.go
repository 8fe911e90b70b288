package testing

import (
	"time"

	"github.com/DjordjeVuckovic/semsim/internal/bench/corpus"
	"github.com/DjordjeVuckovic/semsim/internal/bench/runner"
	"github.com/DjordjeVuckovic/semsim/internal/provider"
	"github.com/google/uuid"
)

// SampleRun evaluates a small fixed batch without calling a provider. The batch
// has one correct case, one tied wrong guess and one degenerate case.
func SampleRun() *runner.Result {
	records := []corpus.Record{
		{Line: 1, Truth: 0, Target: "t0", Candidates: []string{"a", "b"}, Raw: "0\tt0\ta\tb"},
		{Line: 2, Truth: 1, Target: "t1", Candidates: []string{"c", "d"}, Raw: "1\tt1\tc\td"},
		{Line: 3, Truth: 0, Target: "t2", Candidates: []string{"e", "f"}, Raw: "0\tt2\te\tf"},
	}
	moniform := [][][]int{
		{{1, 2}, {1, 2}, {3}},
		{{1}, {1}, {1}},
		{{4}, {4}, nil},
	}

	cases := runner.BuildCases(records, moniform)
	out := runner.Evaluate(cases, 0)

	return &runner.Result{
		RunID:     uuid.New(),
		StartedAt: time.Now().UTC().Truncate(time.Millisecond),
		Options:   provider.DefaultOptions(),
		Corpus:    runner.CorpusInfo{Records: 3, Chars: 12, Samples: 9},
		Summary:   out.Summary,
		Cases:     cases,
		Results:   out.Results,
		Meta:      provider.Meta{CorpusSize: 100, MS: 5},
		Timing:    runner.Timing{Elapsed: 20 * time.Millisecond, ServiceMS: 5},
	}
}
