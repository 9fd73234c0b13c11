package metrics

import (
	"context"
	"fmt"
	"time"
)

// Metrics represents the current state of the webhook store.
type Metrics struct {
	// Total is the number of webhooks ever stored
	Total int64 `json:"total"`

	// Processed is the number of webhooks a consumer has marked processed
	Processed int64 `json:"processed"`

	// Pending is Total minus Processed
	Pending int64 `json:"pending"`

	// Timestamp when metrics were collected
	Timestamp time.Time `json:"timestamp"`
}

// Collector defines the interface for collecting metrics from the store.
type Collector interface {
	// Collect gathers current metrics
	Collect(ctx context.Context) (Metrics, error)
}

// StoreCounter is the slice of the repository the collector needs.
type StoreCounter interface {
	Count(ctx context.Context) (int64, error)
	CountProcessed(ctx context.Context) (int64, error)
}

// StoreCollector implements Collector over the SQL-backed webhook store.
type StoreCollector struct {
	store StoreCounter
}

// NewStoreCollector creates a collector reading counts from the store
func NewStoreCollector(store StoreCounter) *StoreCollector {
	return &StoreCollector{store: store}
}

// Collect gathers webhook counts from the store. Total and processed are
// two independent statements; the split can drift under concurrent writes.
func (c *StoreCollector) Collect(ctx context.Context) (Metrics, error) {
	total, err := c.store.Count(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("counting webhooks: %w", err)
	}
	processed, err := c.store.CountProcessed(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("counting processed webhooks: %w", err)
	}

	return Metrics{
		Total:     total,
		Processed: processed,
		Pending:   total - processed,
		Timestamp: time.Now(),
	}, nil
}
