package es

import (
	"errors"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
)

const maxRetries = 3

type ClientConfig struct {
	Addresses []string
	IndexName string
	// Username and Password enable basic auth when both are set.
	Username string
	Password string
}

func newClient(config ClientConfig) (*elasticsearch.TypedClient, error) {
	if len(config.Addresses) == 0 {
		return nil, errors.New("no elasticsearch addresses configured")
	}

	cfg := elasticsearch.Config{
		Addresses:     config.Addresses,
		MaxRetries:    maxRetries,
		RetryOnStatus: []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout, http.StatusTooManyRequests},
	}
	if config.Username != "" && config.Password != "" {
		cfg.Username, cfg.Password = config.Username, config.Password
	}

	return elasticsearch.NewTypedClient(cfg)
}
