package report

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/DjordjeVuckovic/semsim/internal/bench/runner"
)

const (
	DefaultFailuresPath = "failedtests.tsv"
	DefaultRunLogPath   = "semsimout.txt"
)

// WriteFailures writes "guess<TAB>raw line" for every wrong or tie-won case.
func WriteFailures(w io.Writer, res *runner.Result) (int, error) {
	bw := bufio.NewWriter(w)
	n := 0
	for i, r := range res.Results {
		if !IsFailure(r) || i >= len(res.Cases) {
			continue
		}
		if _, err := fmt.Fprintf(bw, "%d\t%s\n", r.WinnerIndex, res.Cases[i].Raw); err != nil {
			return n, fmt.Errorf("write failure: %w", err)
		}
		n++
	}
	if err := bw.Flush(); err != nil {
		return n, fmt.Errorf("flush failures: %w", err)
	}
	return n, nil
}

// WriteFailuresFile truncates path and writes the failure cases into it.
func WriteFailuresFile(res *runner.Result, path string) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create failures file: %w", err)
	}
	defer f.Close()

	return WriteFailures(f, res)
}
