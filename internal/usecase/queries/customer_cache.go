package queries

import (
	"context"
	"sync"

	"court-grid/internal/infra/metrics"
	"court-grid/internal/usecase/shared"
)

// CustomerCache lazily memoizes customer details for the session. Entries
// are never evicted; a full reload invalidates everything.
type CustomerCache interface {
	Lookup(ctx context.Context, customerID int64) (*shared.CustomerDetails, error)
	Invalidate()
	Len() int
}

type customerCacheImpl struct {
	accounts shared.AccountGateway
	metrics  *metrics.Recorder

	mu      sync.RWMutex
	entries map[int64]shared.CustomerDetails
}

func NewCustomerCache(accounts shared.AccountGateway, rec *metrics.Recorder) CustomerCache {
	return &customerCacheImpl{
		accounts: accounts,
		metrics:  rec,
		entries:  make(map[int64]shared.CustomerDetails),
	}
}

// Lookup does not deduplicate concurrent misses for the same id.
func (c *customerCacheImpl) Lookup(ctx context.Context, customerID int64) (*shared.CustomerDetails, error) {
	c.mu.RLock()
	hit, ok := c.entries[customerID]
	c.mu.RUnlock()
	if ok {
		c.metrics.ObserveCustomerLookup(true)
		return &hit, nil
	}
	c.metrics.ObserveCustomerLookup(false)

	details, err := c.accounts.LookupCustomer(ctx, customerID)
	if err != nil {
		return nil, shared.ClassifyGatewayError(err)
	}

	c.mu.Lock()
	c.entries[customerID] = *details
	c.mu.Unlock()

	out := *details
	return &out, nil
}

func (c *customerCacheImpl) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int64]shared.CustomerDetails)
}

func (c *customerCacheImpl) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
