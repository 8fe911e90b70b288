package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/semsim/internal/apperr"
	"github.com/DjordjeVuckovic/semsim/internal/bench/classify"
	"github.com/DjordjeVuckovic/semsim/internal/bench/corpus"
	"github.com/DjordjeVuckovic/semsim/internal/bench/runner"
	"github.com/DjordjeVuckovic/semsim/internal/provider"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(line, truth int, target string, cands ...string) corpus.Record {
	raw := strings.Join(append([]string{string(rune('0' + truth)), target}, cands...), "\t")
	return corpus.Record{Line: line, Truth: truth, Target: target, Candidates: cands, Raw: raw}
}

// fixture yields, in order: correct, ambiguous wrong, ambiguous correct, degenerate, wrong.
func fixture() *runner.Result {
	records := []corpus.Record{
		record(1, 0, "t0", "a", "b", "c"),
		record(2, 1, "t1", "d", "e"),
		record(3, 0, "t2", "f", "g"),
		record(4, 1, "t3", "h", "i"),
		record(5, 1, "t4", "j", "k"),
	}
	moniform := [][][]int{
		{{1, 2, 3}, {1, 2, 3}, {1, 2}, {1}},
		{{1, 2}, {1}, {1}},
		{{1}, {1}, {1}},
		{{5}, nil, {5}},
		{{1}, {1}, {2}},
	}

	cases := runner.BuildCases(records, moniform)
	out := runner.Evaluate(cases, 1)

	return &runner.Result{
		RunID:     uuid.New(),
		StartedAt: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		Options:   provider.DefaultOptions(),
		Corpus:    runner.CorpusInfo{Records: 5, Chars: 40, Samples: 17, FormatErrors: 1},
		Summary:   out.Summary,
		Cases:     cases,
		Results:   out.Results,
		Meta: provider.Meta{
			CorpusSize:   1200,
			UptimeSecs:   31,
			CompetenceID: "c-1",
			MS:           400,
		},
		Timing: runner.Timing{Elapsed: 2 * time.Second, ServiceMS: 400},
	}
}

func TestOutcomeOf(t *testing.T) {
	res := fixture()
	want := []Outcome{
		OutcomeCorrect,
		OutcomeAmbiguousIncorrect,
		OutcomeAmbiguousCorrect,
		OutcomeNoWinner,
		OutcomeIncorrect,
	}
	for i, r := range res.Results {
		assert.Equal(t, want[i], OutcomeOf(r), "case %d", i)
	}

	assert.False(t, IsFailure(res.Results[0]))
	assert.True(t, IsFailure(res.Results[1]))
	assert.True(t, IsFailure(res.Results[2]))
	assert.False(t, IsFailure(res.Results[3]))
	assert.True(t, IsFailure(res.Results[4]))
}

func TestCandidateLabel(t *testing.T) {
	res := fixture()

	labels := func(r classify.Result) []Label {
		var ls []Label
		for _, sc := range r.Scores {
			ls = append(ls, CandidateLabel(r, sc))
		}
		return ls
	}

	assert.Equal(t, []Label{LabelWin, LabelRunnerUp, LabelNone}, labels(res.Results[0]))
	assert.Equal(t, []Label{LabelFail, LabelAmbiguous}, labels(res.Results[1]))
	assert.Equal(t, []Label{LabelAmbiguous, LabelAmbiguous}, labels(res.Results[2]))
	assert.Equal(t, []Label{LabelFail, LabelRunnerUp}, labels(res.Results[4]))
}

func TestStripSymbols(t *testing.T) {
	var buf bytes.Buffer
	writeStrip(&buf, palette{plain: true}, fixture().Results)
	assert.Equal(t, "       \nTest # 12345\n       0==?0\n", buf.String())
}

func TestStripRuler(t *testing.T) {
	results := make([]classify.Result, 19)
	for i := range results {
		results[i] = classify.Result{WinnerIndex: 1, Truth: 1, Correct: true}
	}

	var buf bytes.Buffer
	writeStrip(&buf, palette{plain: true}, results)
	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "       "+"         1"+"         2", lines[0])
	assert.Equal(t, "Test # 1234567890123456789", lines[1])
	assert.Equal(t, "       "+strings.Repeat("1", 19), lines[2])
}

func TestSummaryLine(t *testing.T) {
	line := summaryLine(fixture().Summary, palette{plain: true})

	assert.True(t, strings.HasPrefix(line, "Accuracy: 50.0%  avg-margin:33.33% testsdone:4 "), line)
	assert.Contains(t, line, "understanding-failures:2 ")
	assert.Contains(t, line, "meaningless:1 ")
	assert.Contains(t, line, "ambiguous:2 ")
	assert.Contains(t, line, "testfileproblems:1 ")
}

func TestTimingLine(t *testing.T) {
	line := timingLine(fixture())
	assert.Contains(t, line, "For 5 tests with a total of 17 samples, total 40 chars, real time was  2000 ms")
	assert.Contains(t, line, "Average is 400 ms/test")
	assert.Contains(t, line, "Batch service time: 400 ms Average is 80 ms/test")
	assert.Contains(t, line, "Speed was 100 cps")

	empty := &runner.Result{}
	assert.NotContains(t, timingLine(empty), "Average")
}

func TestConsole_RenderTable(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf, ConsoleOptions{Mode: ModeTable, ShowTexts: true, NoColor: true}).Render(fixture())
	out := buf.String()

	assert.Contains(t, out, "Time: 2026-03-01T10:30  Server Uptime (s): 31 Options: map[debug:false topn:60]")
	assert.Contains(t, out, "Corpus of 1200 chars learned in - seconds - Competence id: c-1  UUID: -")
	assert.Contains(t, out, "Index   Outcome Jaccard Margin\n==============================")
	assert.Contains(t, out, "  0\tWIN\t100.0\t33.33\t\ta\t\n")
	assert.Contains(t, out, "  1\t2ND\t66.67\t\t\tb\t\n")
	assert.Contains(t, out, "  0\tFAIL\t50.0\t0.0\t\td\t\n")
	assert.Contains(t, out, strings.Repeat(" ", 48)+"t0\n")
	assert.NotContains(t, out, "t3")
	assert.Contains(t, out, "Accuracy: 50.0%")
	assert.Contains(t, out, "Margin distribution (4 cases)")
	assert.NotContains(t, out, "\x1b[")
}

func TestConsole_RenderStrip(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf, ConsoleOptions{Mode: ModeStrip, NoColor: true}).Render(fixture())
	out := buf.String()

	assert.Contains(t, out, "0==?0")
	assert.NotContains(t, out, "Index   Outcome")
}

func TestConsole_RenderFailed(t *testing.T) {
	res := &runner.Result{Err: apperr.NewCommunication("connection refused", nil)}

	var buf bytes.Buffer
	NewConsole(&buf, ConsoleOptions{NoColor: true}).Render(res)
	out := buf.String()

	assert.Contains(t, out, "Batch aborted")
	assert.Contains(t, out, "connection refused")
	assert.Contains(t, out, "Accuracy:  0.0%")
}

func TestMode_Valid(t *testing.T) {
	assert.True(t, ModeTable.Valid())
	assert.True(t, ModeStrip.Valid())
	assert.True(t, ModeQuiet.Valid())
	assert.False(t, Mode("fancy").Valid())
}

func TestWriteFailures(t *testing.T) {
	res := fixture()

	var buf bytes.Buffer
	n, err := WriteFailures(&buf, res)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	want := "0\t" + res.Cases[1].Raw + "\n" +
		"0\t" + res.Cases[2].Raw + "\n" +
		"0\t" + res.Cases[4].Raw + "\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteFailuresFile_Truncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFailuresPath)
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0644))

	_, err := WriteFailuresFile(fixture(), path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
	assert.Equal(t, 3, strings.Count(string(data), "\n"))
}

func TestAppendRunLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultRunLogPath)

	require.NoError(t, AppendRunLog(fixture(), path))
	require.NoError(t, AppendRunLog(&runner.Result{Err: apperr.NewCommunication("timeout", nil)}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Equal(t, 2, strings.Count(out, strings.Repeat("=", runLogSeparatorWidth)))
	assert.Contains(t, out, "Test # 12345\n       0==?0\n")
	assert.Contains(t, out, "Batch aborted: provider communication error: timeout")
	assert.NotContains(t, out, "\x1b[")
}

func TestGenerate(t *testing.T) {
	res := fixture()
	r := Generate(res)

	assert.Equal(t, res.RunID.String(), r.Meta.RunID)
	assert.Empty(t, r.Meta.Error)
	assert.Equal(t, res.Summary, r.Summary)
	require.Len(t, r.Cases, 5)
	assert.Equal(t, 3, r.Cases[2].Line)
	assert.Equal(t, OutcomeNoWinner, r.Cases[3].Outcome)
	assert.Equal(t, 100.0, r.Timing.CharsPerSecond)
	assert.Equal(t, 80.0, r.Timing.ServiceMSPerCase)

	assert.Equal(t, 4, r.Margins.Count)
	assert.InDelta(t, 0.3333, r.Margins.Mean, 1e-4)
	assert.InDelta(t, 0.1667, r.Margins.Median, 1e-4)
	assert.Equal(t, 0.0, r.Margins.Min)
	assert.Equal(t, 1.0, r.Margins.Max)
	assert.GreaterOrEqual(t, r.Margins.P90, r.Margins.Median)
}

func TestGenerate_Failed(t *testing.T) {
	r := Generate(&runner.Result{Err: apperr.NewCommunication("boom", nil)})
	assert.Contains(t, r.Meta.Error, "boom")
	assert.Empty(t, r.Cases)
	assert.Zero(t, r.Margins.Count)
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteJSON(Generate(fixture()), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "summary")
	assert.Contains(t, decoded, "margins")
	assert.Len(t, decoded["cases"], 5)
}
