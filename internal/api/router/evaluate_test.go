package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/semsim/internal/apperr"
	"github.com/DjordjeVuckovic/semsim/internal/bench/classify"
	"github.com/DjordjeVuckovic/semsim/internal/dto"
	"github.com/DjordjeVuckovic/semsim/internal/provider"
	"github.com/DjordjeVuckovic/semsim/internal/storage/in_mem"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, client provider.Client) (*echo.Echo, *in_mem.InMemStorer) {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	runs := in_mem.NewInMemStorer(10)
	NewEvaluateRouter(e, client, runs).Bind()
	return e, runs
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func echoClient(t *testing.T) provider.Client {
	return provider.ClientFunc(func(ctx context.Context, req provider.Request) provider.Result {
		moniform := make([][][]int, len(req.Payload))
		for i, texts := range req.Payload {
			entry := make([][]int, len(texts))
			for j, text := range texts {
				// texts sharing a first word share a concept
				entry[j] = []int{int(text[0])}
			}
			moniform[i] = entry
		}
		return provider.Success(&provider.Response{Moniform: moniform, Meta: provider.Meta{MS: 12}})
	})
}

func TestEvaluateHandler(t *testing.T) {
	e, runs := setup(t, echoClient(t))

	rec := do(e, http.MethodPost, "/v1/evaluate", `{
		"cases": [
			{"truth": 1, "target": "apple", "candidates": ["banana", "avocado"]},
			{"truth": 0, "target": "cherry", "candidates": ["date", "cranberry"]}
		]
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.RunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Summary.CasesProcessed)
	assert.Equal(t, 1, resp.Summary.Correct)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, 1, resp.Results[0].WinnerIndex)
	require.NotNil(t, resp.Provider)
	assert.Equal(t, 12.0, resp.Provider.MS)
	assert.Equal(t, 1, runs.Len())
}

func TestEvaluateHandler_OptionsOverrideDefaults(t *testing.T) {
	var got map[string]any
	client := provider.ClientFunc(func(ctx context.Context, req provider.Request) provider.Result {
		got = req.Options
		return provider.Success(&provider.Response{Moniform: [][][]int{{{1}, {1}, {2}}}})
	})
	e, _ := setup(t, client)

	rec := do(e, http.MethodPost, "/v1/evaluate",
		`{"cases": [{"truth": 0, "target": "t", "candidates": ["a", "b"]}], "options": {"topn": 10}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10.0, got["topn"])
	assert.Equal(t, false, got["debug"])
}

func TestEvaluateHandler_ProviderFailure(t *testing.T) {
	client := provider.ClientFunc(func(ctx context.Context, req provider.Request) provider.Result {
		return provider.Failed(apperr.NewCommunication("connection refused", nil))
	})
	e, runs := setup(t, client)

	rec := do(e, http.MethodPost, "/v1/evaluate",
		`{"cases": [{"truth": 0, "target": "t", "candidates": ["a", "b"]}]}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
	assert.Zero(t, runs.Len())
}

func TestEvaluateHandler_Validation(t *testing.T) {
	e, _ := setup(t, echoClient(t))

	tests := []struct {
		name string
		body string
	}{
		{name: "no cases", body: `{"cases": []}`},
		{name: "truth out of range", body: `{"cases": [{"truth": 2, "target": "t", "candidates": ["a", "b"]}]}`},
		{name: "single candidate", body: `{"cases": [{"truth": 0, "target": "t", "candidates": ["a"]}]}`},
		{name: "empty target", body: `{"cases": [{"truth": 0, "target": " ", "candidates": ["a", "b"]}]}`},
		{name: "malformed json", body: `{"cases": [`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodPost, "/v1/evaluate", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestClassifyHandler(t *testing.T) {
	e, runs := setup(t, nil)

	rec := do(e, http.MethodPost, "/v1/classify", `{
		"cases": [
			{"truth": 0, "target": [1, 2], "candidates": [[1, 2], [3]]},
			{"truth": 0, "target": [], "candidates": [[], [4]]},
			{"truth": 1, "target": [5], "candidates": [null, [5]]}
		]
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.RunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.Provider)
	assert.Equal(t, 2, resp.Summary.CasesProcessed)
	assert.Equal(t, 2, resp.Summary.Correct)
	assert.Equal(t, 1, resp.Summary.Degenerate)
	assert.Equal(t, 1, resp.Summary.CandidateFailures)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, classify.StatusDegenerate, resp.Results[2].Status)
	assert.Equal(t, 1, runs.Len())
}

func TestClassifyHandler_NegativeID(t *testing.T) {
	e, _ := setup(t, nil)

	rec := do(e, http.MethodPost, "/v1/classify",
		`{"cases": [{"truth": 0, "target": [1], "candidates": [[-1], [2]]}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRunHandler(t *testing.T) {
	e, _ := setup(t, nil)

	rec := do(e, http.MethodPost, "/v1/classify",
		`{"cases": [{"truth": 0, "target": [1], "candidates": [[1], [2]]}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var created dto.RunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = do(e, http.MethodGet, "/v1/runs/"+created.RunID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched dto.RunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, created.RunID, fetched.RunID)
	assert.Equal(t, created.Summary, fetched.Summary)

	t.Run("unknown run", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/v1/runs/5b1f6a7e-8a0f-4a53-9d2c-6c1f0c8f3e11", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/v1/runs/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
