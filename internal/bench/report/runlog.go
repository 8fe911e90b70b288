package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/semsim/internal/bench/runner"
)

const runLogSeparatorWidth = 304

// WriteRunLog renders one uncolored run entry: metadata, the outcome strip and the summary line.
func WriteRunLog(w io.Writer, res *runner.Result) error {
	p := palette{plain: true}

	var b strings.Builder
	b.WriteString("\n" + strings.Repeat("=", runLogSeparatorWidth) + "\n")
	writeHeader(&b, res)

	if res.Failed() {
		fmt.Fprintf(&b, "Batch aborted: %s\n", res.Err.Error())
	} else {
		b.WriteString("\n")
		writeStrip(&b, p, res.Results)
	}
	b.WriteString(summaryLine(res.Summary, p))
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write run log: %w", err)
	}
	return nil
}

// AppendRunLog appends the run entry to path, creating the file if needed.
func AppendRunLog(res *runner.Result, path string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer f.Close()

	return WriteRunLog(f, res)
}
