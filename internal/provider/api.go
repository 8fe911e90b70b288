package provider

import (
	"context"

	"github.com/DjordjeVuckovic/semsim/internal/apperr"
)

const DefaultURL = "https://free.understanding-machines.com/understand"

func DefaultOptions() map[string]any {
	return map[string]any{"topn": 60, "debug": false}
}

type Request struct {
	// Payload holds one entry per case: target text followed by candidate texts.
	Payload [][]string `json:"payload"`

	// Options lists provider-specific options.
	Options map[string]any `json:"options"`
}

// Meta is batch metadata returned by the provider. It is passed through to reports.
type Meta struct {
	TotalTicks       float64 `json:"totalticks,omitempty"`
	UptimeSecs       float64 `json:"uptimesecs,omitempty"`
	CorpusSize       float64 `json:"corpussize,omitempty"`
	CreatedZulu      any     `json:"createdzulu,omitempty"`
	CompetenceID     any     `json:"competenceid,omitempty"`
	MS               float64 `json:"ms,omitempty"`
	CompetenceUUID   any     `json:"competenceuuid,omitempty"`
	LearningTimeSecs float64 `json:"learningtimesecs,omitempty"`
}

type Response struct {
	// Moniform is parallel to Request.Payload. A null fingerprint means the
	// provider failed on that text; an empty one means no concepts were found.
	Moniform [][][]int `json:"moniform"`
	Error    string    `json:"error,omitempty"`
	Meta
}

// Result is either a response or the reason the exchange failed.
type Result struct {
	Response *Response
	Failure  *apperr.ProviderError
}

func Success(resp *Response) Result {
	return Result{Response: resp}
}

func Failed(err *apperr.ProviderError) Result {
	return Result{Failure: err}
}

func (r Result) OK() bool {
	return r.Failure == nil && r.Response != nil
}

// SemanticError returns the error the provider embedded in an otherwise valid response.
func (r Result) SemanticError() *apperr.ProviderError {
	if r.Response == nil || r.Response.Error == "" {
		return nil
	}
	return apperr.NewSemantic(r.Response.Error)
}

type Client interface {
	Understand(ctx context.Context, req Request) Result
}

// ClientFunc adapts a function to the Client interface.
type ClientFunc func(ctx context.Context, req Request) Result

func (f ClientFunc) Understand(ctx context.Context, req Request) Result {
	return f(ctx, req)
}
