// Package idgen hands out element ids that are unique within one process-wide Counter.
package idgen

import (
	"strconv"
	"sync"
)

// Counter starts at zero and needs no teardown. Share one per process and inject it.
type Counter struct {
	mu   sync.Mutex
	next uint64
}

// New returns a zeroed counter.
func New() *Counter {
	return &Counter{}
}

// Next returns prefix-N with N increasing from 1.
func (c *Counter) Next(prefix string) string {
	c.mu.Lock()
	c.next++
	n := c.next
	c.mu.Unlock()
	return prefix + "-" + strconv.FormatUint(n, 10)
}

// Reset puts the counter back to zero.
func (c *Counter) Reset() {
	c.mu.Lock()
	c.next = 0
	c.mu.Unlock()
}
