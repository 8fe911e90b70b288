package spec

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/DjordjeVuckovic/semsim/internal/bench/corpus"
	"github.com/DjordjeVuckovic/semsim/internal/bench/report"
	"github.com/DjordjeVuckovic/semsim/internal/provider"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTimeout      = 120 * time.Second
	DefaultResultsIndex = "semsim_case_results"
)

func LoadFromFile(path string) (*RunSpec, error) {
	s, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ReadFile decodes a spec without validating it, for callers that still
// override fields.
func ReadFile(path string) (*RunSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}
	return decode(data)
}

func Parse(data []byte) (*RunSpec, error) {
	s, err := decode(data)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func decode(data []byte) (*RunSpec, error) {
	var s RunSpec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse spec YAML: %w", err)
	}
	return &s, nil
}

// Default returns a spec for path with every default applied.
func Default(path string) *RunSpec {
	s := &RunSpec{Corpus: CorpusConfig{Path: path}}
	s.applyDefaults()
	return s
}

// Validate applies defaults and checks the spec. Call it again after overriding fields.
func (s *RunSpec) Validate() error {
	s.applyDefaults()

	if s.Corpus.Path == "" {
		return fmt.Errorf("spec has no corpus path")
	}
	u, err := url.Parse(s.Provider.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("provider url %q is not an absolute url", s.Provider.URL)
	}
	if s.Provider.Timeout < 0 {
		return fmt.Errorf("provider timeout must not be negative")
	}
	if !report.Mode(s.Output.Mode).Valid() {
		return fmt.Errorf("output has invalid mode %q", s.Output.Mode)
	}
	if s.Output.Mode == string(report.ModeStrip) && (s.Output.ShowTexts || s.Output.ShowFingerprints) {
		return fmt.Errorf("show_texts and show_fingerprints need the table mode")
	}
	if pg := s.Sinks.Postgres; pg != nil && pg.Connection == "" {
		return fmt.Errorf("postgres sink has no connection")
	}
	if es := s.Sinks.Elasticsearch; es != nil && len(es.Addresses) == 0 {
		return fmt.Errorf("elasticsearch sink has no addresses")
	}
	return nil
}

func (s *RunSpec) applyDefaults() {
	if s.Provider.URL == "" {
		s.Provider.URL = provider.DefaultURL
	}
	if s.Provider.Timeout == 0 {
		s.Provider.Timeout = DefaultTimeout
	}
	if len(s.Provider.Options) == 0 {
		s.Provider.Options = provider.DefaultOptions()
	}
	if s.Corpus.MaxLines == 0 {
		s.Corpus.MaxLines = corpus.DefaultMaxRecords
	}
	if s.Corpus.HeaderWindow <= 0 {
		s.Corpus.HeaderWindow = corpus.DefaultHeaderWindow
	}
	if s.Corpus.MinLineLength <= 0 {
		s.Corpus.MinLineLength = corpus.DefaultMinLineLength
	}
	if s.Output.Mode == "" {
		s.Output.Mode = string(report.ModeTable)
	}
	if es := s.Sinks.Elasticsearch; es != nil && es.Index == "" {
		es.Index = DefaultResultsIndex
	}
}

func (s *RunSpec) CorpusOptions() corpus.Options {
	opts := corpus.Options{
		MinLineLength: s.Corpus.MinLineLength,
		HeaderWindow:  s.Corpus.HeaderWindow,
		MaxRecords:    s.Corpus.MaxLines,
	}
	if opts.MaxRecords < 0 {
		opts.MaxRecords = 0
	}
	return opts
}

func (s *RunSpec) ConsoleOptions() report.ConsoleOptions {
	return report.ConsoleOptions{
		Mode:             report.Mode(s.Output.Mode),
		ShowTexts:        s.Output.ShowTexts,
		ShowFingerprints: s.Output.ShowFingerprints,
		NoColor:          s.Output.NoColor,
	}
}
