package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/DjordjeVuckovic/semsim/internal/apperr"
)

const defaultTimeout = 120 * time.Second

type HTTPClientOption func(client *HTTPClient)

// HTTPClient posts a whole batch to the understanding provider in one request.
type HTTPClient struct {
	endpoint url.URL
	http     *http.Client
}

func NewHTTPClient(endpoint string, opts ...HTTPClientOption) (*HTTPClient, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse provider url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, apperr.NewValidation(fmt.Sprintf("provider url %q must be absolute", endpoint))
	}

	client := &HTTPClient{
		endpoint: *u,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

func WithHTTPClient(httpClient *http.Client) HTTPClientOption {
	return func(client *HTTPClient) {
		client.http = httpClient
	}
}

func WithTimeout(timeout time.Duration) HTTPClientOption {
	return func(client *HTTPClient) {
		if timeout > 0 {
			client.http.Timeout = timeout
		}
	}
}

func (c *HTTPClient) Understand(ctx context.Context, req Request) Result {
	body, err := json.Marshal(req)
	if err != nil {
		return Failed(apperr.NewCommunication("marshal request", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return Failed(apperr.NewCommunication("create request", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	slog.Debug("Sending batch to provider", "url", c.endpoint.String(), "cases", len(req.Payload))

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Failed(apperr.NewCommunication("request failed", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Failed(apperr.NewCommunication("read response", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Failed(apperr.NewCommunication(
			fmt.Sprintf("unexpected status code: %d, body: %s", resp.StatusCode, string(respBody)), nil))
	}

	return decodeResponse(respBody)
}

func decodeResponse(body []byte) Result {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return Failed(apperr.NewCommunication("unmarshal response", err))
	}

	if resp.Error != "" {
		slog.Warn("Provider reported an error", "error", resp.Error)
	}

	if resp.Moniform == nil {
		reason := "response has no moniform entry"
		if resp.Error != "" {
			reason += ": " + resp.Error
		}
		return Failed(apperr.NewCommunication(reason, nil))
	}

	if err := validateMoniform(resp.Moniform); err != nil {
		return Failed(apperr.NewCommunication("invalid moniform", err))
	}

	return Success(&resp)
}

func validateMoniform(moniform [][][]int) error {
	for i, entry := range moniform {
		for j, ids := range entry {
			for _, id := range ids {
				if id < 0 {
					return fmt.Errorf("case %d fingerprint %d: negative concept id %d", i, j, id)
				}
			}
		}
	}
	return nil
}
