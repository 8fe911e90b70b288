package corpus

import (
	"unicode/utf8"

	"github.com/DjordjeVuckovic/semsim/internal/apperr"
)

const (
	// DefaultMinLineLength excludes the trailing newline.
	DefaultMinLineLength = 5
	DefaultHeaderWindow  = 10
	DefaultMaxRecords    = 200

	CommentPrefix = "#"
	// MinFields is truth, target and two candidates.
	MinFields = 4
)

type Options struct {
	MinLineLength int
	// HeaderWindow is the number of leading physical lines where short or
	// non-numeric records are skipped without being counted as errors.
	HeaderWindow int
	// MaxRecords caps the number of records loaded. Zero means no limit.
	MaxRecords int
}

func DefaultOptions() Options {
	return Options{
		MinLineLength: DefaultMinLineLength,
		HeaderWindow:  DefaultHeaderWindow,
		MaxRecords:    DefaultMaxRecords,
	}
}

// Record is one test case: the index of the correct candidate, the target text and
// two or more candidate texts.
type Record struct {
	Line       int
	Truth      int
	Target     string
	Candidates []string
	Raw        string
}

// Texts returns the strings sent to the provider, target first. The truth is never included.
func (r Record) Texts() []string {
	texts := make([]string, 0, len(r.Candidates)+1)
	texts = append(texts, r.Target)
	return append(texts, r.Candidates...)
}

type Corpus struct {
	Records      []Record
	FormatErrors []*apperr.CorpusFormatError
	// Chars is the total number of characters in all texts.
	Chars int
	// Samples is the total number of texts.
	Samples int
}

// FromRecords builds a corpus from records that did not come from a file.
func FromRecords(records []Record) *Corpus {
	c := &Corpus{}
	for _, r := range records {
		c.add(r)
	}
	return c
}

func (c *Corpus) add(r Record) {
	c.Records = append(c.Records, r)
	c.Samples += len(r.Candidates) + 1
	for _, text := range r.Texts() {
		c.Chars += utf8.RuneCountInString(text)
	}
}

func (c *Corpus) Payload() [][]string {
	payload := make([][]string, len(c.Records))
	for i, r := range c.Records {
		payload[i] = r.Texts()
	}
	return payload
}

func (c *Corpus) Len() int {
	return len(c.Records)
}
