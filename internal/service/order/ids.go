package order

import (
	"sync"
	"time"

	"storefront/internal/domain"
)

// IDGenerator issues strictly increasing order ids that track wall-clock
// milliseconds when the clock allows it.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
}

// Next returns an id greater than every id in existing and every id issued before.
func (g *IDGenerator) Next(now time.Time, existing []domain.Order) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := now.UnixMilli()
	floor := g.last
	for _, o := range existing {
		if o.ID > floor {
			floor = o.ID
		}
	}
	if id <= floor {
		id = floor + 1
	}
	g.last = id
	return id
}
