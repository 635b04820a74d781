package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Process-wide application counters, surfaced on the admin stats endpoint.
var (
	RequestsServed  Counter
	OrdersCreated   Counter
	OrdersCancelled Counter
	FailedLogins    Counter
)

// Snapshot returns the current counter values keyed by name.
func Snapshot() map[string]uint64 {
	return map[string]uint64{
		"requests_served":  RequestsServed.Load(),
		"orders_created":   OrdersCreated.Load(),
		"orders_cancelled": OrdersCancelled.Load(),
		"failed_logins":    FailedLogins.Load(),
	}
}
