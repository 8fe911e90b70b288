package factory

import (
	"os"

	"github.com/DjordjeVuckovic/semsim/internal/bench/spec"
	"github.com/DjordjeVuckovic/semsim/pkg/utils"
)

const (
	EnvPGConnection = "SEMSIM_PG_CONNECTION_STRING"
	EnvESAddresses  = "SEMSIM_ES_ADDRESSES"
	EnvESIndex      = "SEMSIM_ES_INDEX"
	EnvESUsername   = "SEMSIM_ES_USERNAME"
	EnvESPassword   = "SEMSIM_ES_PASSWORD"
)

// ApplyEnv enables sinks from the environment when the run spec leaves them unset.
func ApplyEnv(cfg *spec.SinksConfig) {
	if cfg.Postgres == nil {
		if conn := os.Getenv(EnvPGConnection); conn != "" {
			cfg.Postgres = &spec.PostgresSink{Connection: conn}
		}
	}

	if cfg.Elasticsearch == nil {
		addrs := utils.SplitNonEmpty(os.Getenv(EnvESAddresses), ",")
		if len(addrs) > 0 {
			index := os.Getenv(EnvESIndex)
			if index == "" {
				index = spec.DefaultResultsIndex
			}
			cfg.Elasticsearch = &spec.ElasticsearchSink{
				Addresses: addrs,
				Index:     index,
				Username:  os.Getenv(EnvESUsername),
				Password:  os.Getenv(EnvESPassword),
			}
		}
	}
}
