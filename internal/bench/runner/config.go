package runner

import "github.com/DjordjeVuckovic/semsim/internal/provider"

type Config struct {
	// Options are forwarded verbatim to the provider.
	Options map[string]any
}

func DefaultConfig() Config {
	return Config{
		Options: provider.DefaultOptions(),
	}
}
