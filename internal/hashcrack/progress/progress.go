// Package progress provides the shared attempt counter handle workers flush
// their batches into.
package progress

import "sync/atomic"

// Counter is an approximate, monotonically increasing count of candidates
// tried. It is diagnostic only.
type Counter interface {
	Add(n uint64)
	Load() uint64
}

type atomicCounter struct {
	v atomic.Uint64
}

func NewCounter() Counter {
	return &atomicCounter{}
}

func (c *atomicCounter) Add(n uint64) {
	c.v.Add(n)
}

func (c *atomicCounter) Load() uint64 {
	return c.v.Load()
}

// Observed wraps a counter and forwards every flush to observe, e.g. a
// metrics collector.
func Observed(c Counter, observe func(n uint64)) Counter {
	return &observedCounter{Counter: c, observe: observe}
}

type observedCounter struct {
	Counter
	observe func(n uint64)
}

func (c *observedCounter) Add(n uint64) {
	c.Counter.Add(n)
	c.observe(n)
}
