package spec

import "time"

// RunSpec describes one evaluation run: where the provider is, which corpus to
// send, how to present results and where to store them.
type RunSpec struct {
	Provider ProviderConfig `yaml:"provider"`
	Corpus   CorpusConfig   `yaml:"corpus"`
	Output   OutputConfig   `yaml:"output"`
	Sinks    SinksConfig    `yaml:"sinks"`
}

type ProviderConfig struct {
	URL     string         `yaml:"url"`
	Timeout time.Duration  `yaml:"timeout"`
	Options map[string]any `yaml:"options"`
}

type CorpusConfig struct {
	Path string `yaml:"path"`
	// MaxLines caps loaded records. Zero applies the default, negative disables the cap.
	MaxLines      int `yaml:"max_lines"`
	HeaderWindow  int `yaml:"header_window"`
	MinLineLength int `yaml:"min_line_length"`
}

type OutputConfig struct {
	Mode             string `yaml:"mode"`
	ShowTexts        bool   `yaml:"show_texts"`
	ShowFingerprints bool   `yaml:"show_fingerprints"`
	NoColor          bool   `yaml:"no_color"`
	JSON             string `yaml:"json,omitempty"`
	Failures         string `yaml:"failures,omitempty"`
	Log              string `yaml:"log,omitempty"`
}

type SinksConfig struct {
	Postgres      *PostgresSink      `yaml:"postgres,omitempty"`
	Elasticsearch *ElasticsearchSink `yaml:"elasticsearch,omitempty"`
}

type PostgresSink struct {
	Connection string `yaml:"connection"`
}

type ElasticsearchSink struct {
	Addresses []string `yaml:"addresses"`
	Index     string   `yaml:"index"`
	Username  string   `yaml:"username,omitempty"`
	Password  string   `yaml:"password,omitempty"`
}
