// Package dataset loads tenant-scoped campaign records from a CSV file or a
// sqlite database. Tenant scoping happens inside every loader: rows belonging
// to another tenant never leave this package.
package dataset

import (
	"context"
	"errors"
	"sync"

	"github.com/angelcm/campaign-insight-go/internal/models"
)

// ErrDataUnavailable wraps any missing or unreadable source. The HTTP layer
// maps it to a data-unavailable page that halts further rendering.
var ErrDataUnavailable = errors.New("dataset unavailable")

type Loader interface {
	Load(ctx context.Context, tenant string) ([]models.CampaignRecord, error)
}

// Cache reads through to a Loader once per tenant and keeps the result until
// Invalidate. The dataset is read-only within the system, so staleness is
// only a concern when the backing file is replaced out of band.
type Cache struct {
	loader Loader

	mu       sync.RWMutex
	byTenant map[string][]models.CampaignRecord
}

func NewCache(loader Loader) *Cache {
	return &Cache{loader: loader, byTenant: make(map[string][]models.CampaignRecord)}
}

func (c *Cache) Load(ctx context.Context, tenant string) ([]models.CampaignRecord, error) {
	c.mu.RLock()
	recs, ok := c.byTenant[tenant]
	c.mu.RUnlock()
	if ok {
		return recs, nil
	}
	recs, err := c.loader.Load(ctx, tenant)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.byTenant[tenant] = recs
	c.mu.Unlock()
	return recs, nil
}

// Invalidate drops the cached rows for one tenant, or for all tenants when
// tenant is empty.
func (c *Cache) Invalidate(tenant string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tenant == "" {
		c.byTenant = make(map[string][]models.CampaignRecord)
		return
	}
	delete(c.byTenant, tenant)
}
