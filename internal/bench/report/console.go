package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/DjordjeVuckovic/semsim/internal/bench/classify"
	"github.com/DjordjeVuckovic/semsim/internal/bench/runner"
	"github.com/DjordjeVuckovic/semsim/internal/bench/stats"
	"github.com/DjordjeVuckovic/semsim/pkg/utils"
	"github.com/fatih/color"
)

type Mode string

const (
	// ModeTable prints every scored candidate of every case.
	ModeTable Mode = "table"
	// ModeStrip prints one character per case under a position ruler.
	ModeStrip Mode = "strip"
	ModeQuiet Mode = "quiet"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeTable, ModeStrip, ModeQuiet:
		return true
	}
	return false
}

type ConsoleOptions struct {
	Mode             Mode
	ShowTexts        bool
	ShowFingerprints bool
	NoColor          bool
}

type Console struct {
	w    io.Writer
	opts ConsoleOptions
	p    palette
}

func NewConsole(w io.Writer, opts ConsoleOptions) *Console {
	if opts.Mode == "" {
		opts.Mode = ModeTable
	}
	return &Console{w: w, opts: opts, p: palette{plain: opts.NoColor}}
}

func (c *Console) Render(res *runner.Result) {
	if res.Failed() {
		fmt.Fprintln(c.w, c.p.paint("Batch aborted: "+res.Err.Error(), color.FgRed))
		fmt.Fprintln(c.w, summaryLine(res.Summary, c.p))
		return
	}
	if res.SemanticError != nil {
		fmt.Fprintln(c.w, c.p.paint(res.SemanticError.Error(), color.FgYellow))
	}

	writeHeader(c.w, res)

	switch c.opts.Mode {
	case ModeTable:
		c.writeCaseTable(res)
	case ModeStrip:
		writeStrip(c.w, c.p, res.Results)
	}

	fmt.Fprintln(c.w, summaryLine(res.Summary, c.p))
	fmt.Fprintln(c.w, timingLine(res))

	if ms := marginStats(res.Results); ms.Count > 0 {
		writeMarginTable(c.w, ms)
	}
}

func writeHeader(w io.Writer, res *runner.Result) {
	m := res.Meta
	fmt.Fprintf(w, "Time: %s  Server Uptime (s): %s Options: %v\n",
		res.StartedAt.Format("2006-01-02T15:04"), fmtNumber(m.UptimeSecs), res.Options)
	fmt.Fprintf(w, "Corpus of %s chars learned in %s seconds - Competence id: %s  UUID: %s\n",
		fmtNumber(m.CorpusSize), fmtNumber(m.LearningTimeSecs), fmtAny(m.CompetenceID), fmtAny(m.CompetenceUUID))
}

func (c *Console) writeCaseTable(res *runner.Result) {
	fmt.Fprintln(c.w, "\nIndex   Outcome Jaccard Margin")
	fmt.Fprintln(c.w, "==============================")

	for i, r := range res.Results {
		if !r.Classified() || i >= len(res.Cases) {
			continue
		}
		c.writeCase(res.Cases[i], r)
	}

	fmt.Fprintln(c.w, "  ^      ^       ^        ^   ")
	fmt.Fprintln(c.w, "Index   Outcome Jaccard Margin")
	fmt.Fprintln(c.w)
}

func (c *Console) writeCase(cs classify.Case, r classify.Result) {
	fmt.Fprintln(c.w)
	if c.opts.ShowFingerprints {
		fmt.Fprintf(c.w, "TARGETMONIFORM:                         %v\n", cs.Target.Fingerprint.IDs())
	}
	if c.opts.ShowTexts {
		fmt.Fprintf(c.w, "%s%s\n", strings.Repeat(" ", 48), c.p.paint(cs.TargetText, color.FgYellow, color.Bold))
	}

	for _, sc := range r.Scores {
		var fp, text, margin string
		if c.opts.ShowFingerprints {
			fp = fmt.Sprint(cs.Candidates[sc.Index].Fingerprint.IDs())
		}
		if c.opts.ShowTexts && sc.Index < len(cs.CandidateTexts) {
			text = cs.CandidateTexts[sc.Index]
		}
		if sc.Score == r.WinnerScore {
			margin = fmtFloat(utils.RoundDecimal(100*r.Margin, 2))
		}

		fmt.Fprintf(c.w, "  %d\t%s\t%s\t%s\t%s\t%s\t\n",
			sc.Index,
			c.p.label(CandidateLabel(r, sc)),
			fmtFloat(utils.RoundDecimal(100*sc.Score, 2)),
			margin,
			fp,
			text,
		)
	}
}

// writeStrip prints a ruler with a mark every ten cases, then one symbol per case.
func writeStrip(w io.Writer, p palette, results []classify.Result) {
	n := len(results)

	fmt.Fprint(w, "       ")
	for t := 1; t <= (n+1)/10; t++ {
		fmt.Fprintf(w, "        %2d", t)
	}
	fmt.Fprint(w, "\nTest # ")
	for u := 1; u <= n; u++ {
		fmt.Fprintf(w, "%d", u%10)
	}
	fmt.Fprint(w, "\n       ")
	for _, r := range results {
		fmt.Fprint(w, p.stripSymbol(r))
	}
	fmt.Fprintln(w)
}

func summaryLine(s stats.Summary, p palette) string {
	return fmt.Sprintf("%s %s testsdone:%-6d understanding-failures:%-4d meaningless:%-4d empty-fingerprints:%-4d "+
		"avg-setsize:%-6s avg-intersections:%-6s avg-unions:%-6s empty-intersections:%-4d ambiguous:%-4d testfileproblems:%-4d",
		p.paint(fmt.Sprintf("Accuracy:%5s%%", fmtFloat(s.Accuracy)), color.FgGreen),
		p.paint(fmt.Sprintf(" avg-margin:%5s%%", fmtFloat(s.AverageMargin)), color.FgYellow),
		s.CasesProcessed,
		s.Failures,
		s.NoWinner,
		s.EmptyFingerprints,
		fmtFloat(s.AverageFingerprintSize),
		fmtFloat(s.AverageIntersectionSize),
		fmtFloat(s.AverageUnionSize),
		s.EmptyIntersections,
		s.Ambiguous,
		s.FormatErrors,
	)
}

func timingLine(res *runner.Result) string {
	t := res.Timing
	cases := res.Summary.CasesSeen

	var avg, backend string
	if cases > 0 {
		avg = fmt.Sprintf(" Average is %.4g ms/test", t.MSPerCase(cases))
		backend = fmt.Sprintf(" Average is %.4g ms/test   %.4g ms/sample   Speed was %d cps ",
			t.ServiceMSPerCase(cases),
			t.ServiceMSPerSample(res.Corpus.Samples),
			int(math.Round(t.CharsPerSecond(res.Corpus.Chars))),
		)
	}

	return fmt.Sprintf("For %d tests with a total of %d samples, total %d chars, real time was %5d ms %s  Batch service time: %d ms%s",
		cases, res.Corpus.Samples, res.Corpus.Chars, t.Elapsed.Milliseconds(), avg, int(t.ServiceMS), backend)
}

func writeMarginTable(w io.Writer, ms MarginStats) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\nMargin distribution (%d cases)\n\n", ms.Count)

	header := []string{"Mean", "Median", "p90", "Stddev", "Min", "Max"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	row := []string{
		fmtPercent(ms.Mean),
		fmtPercent(ms.Median),
		fmtPercent(ms.P90),
		fmtPercent(ms.Stddev),
		fmtPercent(ms.Min),
		fmtPercent(ms.Max),
	}
	fmt.Fprintln(tw, strings.Join(row, "\t"))

	tw.Flush()
}

func fmtPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", 100*v)
}

// fmtFloat always keeps one decimal place, so 50 prints as 50.0.
func fmtFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eN") {
		s += ".0"
	}
	return s
}

func fmtNumber(v float64) string {
	if v == 0 {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fmtAny(v any) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(v)
}
