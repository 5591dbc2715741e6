package ports

import (
	"context"
	"time"
)

// DashboardCache stores per-user dashboard payloads.
// Invalidate must make every entry written before it unreachable.
// Get reports the generation it read; a Set for an older generation must never become visible,
// so a value computed before a write cannot outlive that write.
type DashboardCache interface {
	Get(ctx context.Context, key string, dest any) (generation int64, hit bool, err error)
	Set(ctx context.Context, generation int64, key string, value any, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

type noopDashboardCache struct{}

// NewNoopDashboardCache is used when no Redis is configured.
func NewNoopDashboardCache() DashboardCache {
	return noopDashboardCache{}
}

func (noopDashboardCache) Get(context.Context, string, any) (int64, bool, error) { return 0, false, nil }

func (noopDashboardCache) Set(context.Context, int64, string, any, time.Duration) error { return nil }

func (noopDashboardCache) Invalidate(context.Context) error { return nil }
