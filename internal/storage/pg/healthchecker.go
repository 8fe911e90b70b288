package pg

import (
	"context"
	"log/slog"
	"time"
)

const healthTimeout = 2 * time.Second

// HealthChecker reports whether the result database answers a ping within healthTimeout.
type HealthChecker struct {
	pool *ConnectionPool
}

func NewHealthChecker(pool *ConnectionPool) *HealthChecker {
	return &HealthChecker{pool: pool}
}

func (hc *HealthChecker) Healthy(ctx context.Context) bool {
	if hc.pool == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	if err := hc.pool.Ping(ctx); err != nil {
		slog.Warn("Result database is unhealthy", "error", err)
		return false
	}
	return true
}
