package monitor

import (
	"math"
	"sync/atomic"
	"time"
)

// Counter is a thread-safe monotonically increasing counter
type Counter struct {
	value atomic.Int64
	name  string
}

// NewCounter creates a new counter
func NewCounter(name string) *Counter {
	return &Counter{name: name}
}

// Inc increments the counter by 1
func (c *Counter) Inc() {
	c.value.Add(1)
}

// Get returns the current counter value
func (c *Counter) Get() int64 {
	return c.value.Load()
}

// Name returns the counter name
func (c *Counter) Name() string {
	return c.name
}

// Gauge is a thread-safe value that can go up and down
type Gauge struct {
	bits atomic.Uint64
	name string
}

// NewGauge creates a new gauge
func NewGauge(name string) *Gauge {
	return &Gauge{name: name}
}

// Get returns the current gauge value
func (g *Gauge) Get() float64 {
	return math.Float64frombits(g.bits.Load())
}

// Add adds delta to the gauge
func (g *Gauge) Add(delta float64) {
	for {
		old := g.bits.Load()
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if g.bits.CompareAndSwap(old, next) {
			return
		}
	}
}

// Name returns the gauge name
func (g *Gauge) Name() string {
	return g.name
}

const noMin = math.MaxInt64

// Timer tracks count, total, min and max of observed durations
type Timer struct {
	count atomic.Int64
	total atomic.Int64
	min   atomic.Int64
	max   atomic.Int64
	name  string
}

// NewTimer creates a new timer
func NewTimer(name string) *Timer {
	t := &Timer{name: name}
	t.min.Store(noMin)
	return t
}

// Record records one duration
func (t *Timer) Record(d time.Duration) {
	nanos := d.Nanoseconds()
	t.count.Add(1)
	t.total.Add(nanos)

	for {
		current := t.min.Load()
		if nanos >= current || t.min.CompareAndSwap(current, nanos) {
			break
		}
	}
	for {
		current := t.max.Load()
		if nanos <= current || t.max.CompareAndSwap(current, nanos) {
			break
		}
	}
}

// Count returns the number of recorded durations
func (t *Timer) Count() int64 {
	return t.count.Load()
}

// Min returns the shortest recorded duration, or 0 when nothing was recorded
func (t *Timer) Min() time.Duration {
	v := t.min.Load()
	if v == noMin {
		return 0
	}
	return time.Duration(v)
}

// Max returns the longest recorded duration
func (t *Timer) Max() time.Duration {
	return time.Duration(t.max.Load())
}

// Avg returns the mean recorded duration
func (t *Timer) Avg() time.Duration {
	count := t.count.Load()
	if count == 0 {
		return 0
	}
	return time.Duration(t.total.Load() / count)
}

// Name returns the timer name
func (t *Timer) Name() string {
	return t.name
}
