// Package monitor keeps per-operation request statistics for the HTTP
// services and serves them as JSON.
package monitor

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Collector aggregates request timings by operation name
type Collector struct {
	mu       sync.RWMutex
	timers   map[string]*Timer
	started  time.Time
	requests Counter
	inFlight Gauge
	now      func() time.Time
}

// New creates an empty collector
func New() *Collector {
	return &Collector{
		timers:  make(map[string]*Timer),
		started: time.Now(),
		now:     time.Now,
	}
}

func (c *Collector) timer(op string) *Timer {
	c.mu.RLock()
	t, ok := c.timers[op]
	c.mu.RUnlock()
	if ok {
		return t
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok = c.timers[op]; !ok {
		t = NewTimer()
		c.timers[op] = t
	}
	return t
}

// Record adds one finished operation
func (c *Collector) Record(op string, d time.Duration, failed bool) {
	c.requests.Inc()
	c.timer(op).Record(d, failed)
}

// TrackOperation runs fn and records its duration and outcome under op
func (c *Collector) TrackOperation(op string, fn func() error) error {
	c.inFlight.Add(1)
	defer c.inFlight.Add(-1)

	start := c.now()
	err := fn()
	c.Record(op, c.now().Sub(start), err != nil)
	return err
}

// Snapshot returns the current statistics, operations sorted by name
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	ops := make([]OperationMetrics, 0, len(c.timers))
	for name, t := range c.timers {
		ops = append(ops, t.Metrics(name))
	}
	c.mu.RUnlock()
	sort.Slice(ops, func(i, j int) bool { return ops[i].Operation < ops[j].Operation })

	return Snapshot{
		Timestamp:  c.now(),
		Uptime:     time.Since(c.started).Round(time.Second).String(),
		InFlight:   c.inFlight.Get(),
		Requests:   c.requests.Get(),
		Operations: ops,
		Runtime:    collectRuntime(),
	}
}

// Middleware records each request under its :kind parameter, or its route
// when there is none. Responses with status >= 400 count as errors.
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		op := ctx.Param("kind")
		if op == "" {
			op = ctx.FullPath()
		}

		c.inFlight.Add(1)
		start := c.now()
		ctx.Next()
		c.inFlight.Add(-1)

		c.Record(op, c.now().Sub(start), ctx.Writer.Status() >= http.StatusBadRequest)
	}
}

// Handler serves the snapshot as JSON
func (c *Collector) Handler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, c.Snapshot())
	}
}
