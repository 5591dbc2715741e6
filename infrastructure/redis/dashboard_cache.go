package redis

import (
	"context"
	"strconv"
	"time"

	"taskmaster/domain/ports"
)

const (
	dashboardPrefix        = "taskmaster:dashboard:"
	dashboardGenerationKey = dashboardPrefix + "generation"
)

// DashboardCache namespaces entries under a generation counter.
// Invalidate bumps the counter so older entries are never read again and expire on their own.
type DashboardCache struct {
	client *Client
}

func NewDashboardCache(client *Client) ports.DashboardCache {
	return &DashboardCache{client: client}
}

func entryKey(generation int64, key string) string {
	return dashboardPrefix + strconv.FormatInt(generation, 10) + ":" + key
}

func (c *DashboardCache) Get(ctx context.Context, key string, dest any) (int64, bool, error) {
	gen, err := c.client.GetInt(ctx, dashboardGenerationKey)
	if err != nil {
		return 0, false, err
	}
	hit, err := c.client.GetJSON(ctx, entryKey(gen, key), dest)
	return gen, hit, err
}

// Set writes under the generation the caller read, so a value computed across an Invalidate
// lands in a namespace nobody reads any more.
func (c *DashboardCache) Set(ctx context.Context, generation int64, key string, value any, ttl time.Duration) error {
	return c.client.SetJSON(ctx, entryKey(generation, key), value, ttl)
}

func (c *DashboardCache) Invalidate(ctx context.Context) error {
	_, err := c.client.Incr(ctx, dashboardGenerationKey)
	return err
}
