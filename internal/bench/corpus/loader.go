package corpus

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/semsim/internal/apperr"
)

const maxLineBytes = 1 << 20

func LoadFromFile(path string, opts Options) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus file: %w", err)
	}
	defer f.Close()

	c, err := Parse(f, opts)
	if err != nil {
		return nil, err
	}

	slog.Info("Corpus loaded",
		"path", path,
		"records", len(c.Records),
		"format_errors", len(c.FormatErrors),
		"samples", c.Samples,
	)
	return c, nil
}

// Parse reads tab-separated records. Malformed records are collected in
// Corpus.FormatErrors; only read failures are returned as errors.
func Parse(r io.Reader, opts Options) (*Corpus, error) {
	c := &Corpus{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for lineIdx := 0; scanner.Scan(); lineIdx++ {
		line := scanner.Text()
		if len(line) < opts.MinLineLength || strings.HasPrefix(line, CommentPrefix) {
			continue
		}

		line = strings.TrimRight(line, " \t\r")
		inHeader := lineIdx < opts.HeaderWindow

		rec, ferr := parseRecord(line, lineIdx+1)
		if ferr != nil {
			if inHeader {
				continue
			}
			slog.Debug("Skipping malformed corpus line", "line", ferr.Line, "reason", ferr.Reason)
			c.FormatErrors = append(c.FormatErrors, ferr)
			continue
		}

		c.add(rec)

		if opts.MaxRecords > 0 && len(c.Records) >= opts.MaxRecords {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	return c, nil
}

func parseRecord(line string, lineNo int) (Record, *apperr.CorpusFormatError) {
	parts := strings.Split(line, "\t")
	if len(parts) < MinFields {
		return Record{}, &apperr.CorpusFormatError{
			Line:   lineNo,
			Reason: fmt.Sprintf("expected at least %d fields, got %d", MinFields, len(parts)),
		}
	}

	truth, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Record{}, &apperr.CorpusFormatError{
			Line:   lineNo,
			Reason: fmt.Sprintf("invalid truth index %q", parts[0]),
		}
	}

	candidates := parts[2:]
	if truth < 0 || truth >= len(candidates) {
		return Record{}, &apperr.CorpusFormatError{
			Line:   lineNo,
			Reason: fmt.Sprintf("truth index %d out of range for %d candidates", truth, len(candidates)),
		}
	}

	return Record{
		Line:       lineNo,
		Truth:      truth,
		Target:     parts[1],
		Candidates: candidates,
		Raw:        line,
	}, nil
}
