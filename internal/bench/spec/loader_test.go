package spec

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/semsim/internal/bench/corpus"
	"github.com/DjordjeVuckovic/semsim/internal/bench/report"
	"github.com/DjordjeVuckovic/semsim/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("valid run spec", func(t *testing.T) {
		yaml := `
provider:
  url: "http://localhost:8080/understand"
  timeout: 30s
  options:
    topn: 40
    debug: true

corpus:
  path: testdata/chat-200.tsv
  max_lines: 50

output:
  mode: strip
  json: report.json
  failures: failedtests.tsv
  log: semsimout.txt

sinks:
  postgres:
    connection: "postgresql://localhost/semsim"
  elasticsearch:
    addresses: ["http://localhost:9200"]
`
		s, err := Parse([]byte(yaml))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/understand", s.Provider.URL)
		assert.Equal(t, 30*time.Second, s.Provider.Timeout)
		assert.Equal(t, 40, s.Provider.Options["topn"])
		assert.Equal(t, 50, s.Corpus.MaxLines)
		assert.Equal(t, "strip", s.Output.Mode)
		assert.Equal(t, "failedtests.tsv", s.Output.Failures)
		require.NotNil(t, s.Sinks.Postgres)
		require.NotNil(t, s.Sinks.Elasticsearch)
		assert.Equal(t, DefaultResultsIndex, s.Sinks.Elasticsearch.Index)
	})

	t.Run("defaults applied", func(t *testing.T) {
		s, err := Parse([]byte("corpus:\n  path: chat.tsv\n"))
		require.NoError(t, err)
		assert.Equal(t, provider.DefaultURL, s.Provider.URL)
		assert.Equal(t, DefaultTimeout, s.Provider.Timeout)
		assert.Equal(t, provider.DefaultOptions(), s.Provider.Options)
		assert.Equal(t, corpus.DefaultMaxRecords, s.Corpus.MaxLines)
		assert.Equal(t, corpus.DefaultHeaderWindow, s.Corpus.HeaderWindow)
		assert.Equal(t, corpus.DefaultMinLineLength, s.Corpus.MinLineLength)
		assert.Equal(t, string(report.ModeTable), s.Output.Mode)
		assert.Nil(t, s.Sinks.Postgres)
	})

	t.Run("no corpus path", func(t *testing.T) {
		_, err := Parse([]byte("output:\n  mode: table\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no corpus path")
	})

	t.Run("relative provider url", func(t *testing.T) {
		_, err := Parse([]byte("provider:\n  url: understand\ncorpus:\n  path: c.tsv\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "absolute url")
	})

	t.Run("invalid mode", func(t *testing.T) {
		_, err := Parse([]byte("corpus:\n  path: c.tsv\noutput:\n  mode: fancy\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid mode")
	})

	t.Run("strip mode cannot show texts", func(t *testing.T) {
		_, err := Parse([]byte("corpus:\n  path: c.tsv\noutput:\n  mode: strip\n  show_texts: true\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "table mode")
	})

	t.Run("postgres sink without connection", func(t *testing.T) {
		_, err := Parse([]byte("corpus:\n  path: c.tsv\nsinks:\n  postgres: {}\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "postgres sink")
	})

	t.Run("elasticsearch sink without addresses", func(t *testing.T) {
		_, err := Parse([]byte("corpus:\n  path: c.tsv\nsinks:\n  elasticsearch:\n    index: x\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no addresses")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("corpus: [unclosed"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "parse spec YAML")
	})
}

func TestCorpusOptions(t *testing.T) {
	s := Default("c.tsv")
	assert.Equal(t, corpus.DefaultOptions(), s.CorpusOptions())

	s.Corpus.MaxLines = -1
	assert.Zero(t, s.CorpusOptions().MaxRecords)
}

func TestConsoleOptions(t *testing.T) {
	s := Default("c.tsv")
	s.Output.Mode = "quiet"
	s.Output.NoColor = true

	opts := s.ConsoleOptions()
	assert.Equal(t, report.ModeQuiet, opts.Mode)
	assert.True(t, opts.NoColor)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("corpus:\n  path: chat.tsv\n"), 0644))

	s, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "chat.tsv", s.Corpus.Path)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestReadFile_DoesNotValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  mode: strip\n"), 0644))

	s, err := ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, s.Corpus.Path)

	s.Corpus.Path = "chat.tsv"
	require.NoError(t, s.Validate())
	assert.Equal(t, "strip", s.Output.Mode)
}
