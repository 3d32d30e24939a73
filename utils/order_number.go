package utils

import (
	"fmt"
	"sync"
	"time"
)

// OrderNumberGenerator produces ORD-XXXXXXXX numbers from the millisecond
// clock. Numbers are strictly increasing within a process; the database
// unique index catches collisions across processes.
type OrderNumberGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewOrderNumberGenerator() *OrderNumberGenerator {
	return &OrderNumberGenerator{now: time.Now}
}

func (g *OrderNumberGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms

	return fmt.Sprintf("ORD-%08d", ms%100_000_000)
}
