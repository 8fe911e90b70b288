package router

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"time"

	"github.com/DjordjeVuckovic/semsim/internal/apperr"
	"github.com/DjordjeVuckovic/semsim/internal/bench/runner"
	"github.com/DjordjeVuckovic/semsim/internal/dto"
	"github.com/DjordjeVuckovic/semsim/internal/provider"
	"github.com/DjordjeVuckovic/semsim/internal/storage"
	"github.com/DjordjeVuckovic/semsim/internal/storage/in_mem"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type EvaluateRouterOption func(*EvaluateRouter)

// WithStorers adds sinks every finished run is written to.
func WithStorers(storers ...storage.Storer) EvaluateRouterOption {
	return func(r *EvaluateRouter) {
		r.storers = append(r.storers, storers...)
	}
}

// WithOptions sets the provider options requests start from.
func WithOptions(options map[string]any) EvaluateRouterOption {
	return func(r *EvaluateRouter) {
		r.options = options
	}
}

type EvaluateRouter struct {
	e       *echo.Echo
	client  provider.Client
	runs    *in_mem.InMemStorer
	storers []storage.Storer
	options map[string]any
}

func NewEvaluateRouter(e *echo.Echo, client provider.Client, runs *in_mem.InMemStorer, opts ...EvaluateRouterOption) *EvaluateRouter {
	r := &EvaluateRouter{
		e:       e,
		client:  client,
		runs:    runs,
		options: provider.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *EvaluateRouter) Bind() {
	v1 := r.e.Group("/v1")
	v1.POST("/evaluate", r.evaluateHandler)
	v1.POST("/classify", r.classifyHandler)
	v1.GET("/runs/:id", r.getRunHandler)
}

func (r *EvaluateRouter) evaluateHandler(c echo.Context) error {
	var req dto.EvaluateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	options := make(map[string]any, len(r.options)+len(req.Options))
	maps.Copy(options, r.options)
	maps.Copy(options, req.Options)

	res := runner.New(r.client, runner.Config{Options: options}).Run(c.Request().Context(), req.Corpus())
	if res.Failed() {
		return res.Err
	}

	r.store(c.Request().Context(), res)
	return c.JSON(http.StatusOK, dto.NewRunResponse(res, true))
}

func (r *EvaluateRouter) classifyHandler(c echo.Context) error {
	var req dto.ClassifyRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	start := time.Now()
	cases := req.ToCases()
	out := runner.Evaluate(cases, 0)

	res := &runner.Result{
		RunID:     uuid.New(),
		StartedAt: start,
		Summary:   out.Summary,
		Cases:     cases,
		Results:   out.Results,
		Timing:    runner.Timing{Elapsed: time.Since(start)},
	}

	r.store(c.Request().Context(), res)
	return c.JSON(http.StatusOK, dto.NewRunResponse(res, false))
}

func (r *EvaluateRouter) getRunHandler(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NewValidationWrap("invalid run id", err)
	}

	res, err := r.runs.Get(c.Request().Context(), id)
	if errors.Is(err, storage.ErrRunNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "run not found")
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewRunResponse(res, res.Options != nil))
}

// store keeps the run for lookups and forwards it to the sinks. Sink failures
// are logged; the caller already has its result.
func (r *EvaluateRouter) store(ctx context.Context, res *runner.Result) {
	if err := r.runs.Store(ctx, res); err != nil {
		slog.Error("Failed to keep run in memory", "run_id", res.RunID, "error", err)
	}
	if len(r.storers) == 0 {
		return
	}
	if err := storage.StoreAll(ctx, res, r.storers...); err != nil {
		slog.Error("Failed to store run", "run_id", res.RunID, "error", err)
	}
}
