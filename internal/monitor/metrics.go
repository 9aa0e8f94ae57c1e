package monitor

import (
	"math"
	"runtime"
	"sync/atomic"
	"time"
)

// OperationMetrics holds request statistics for one operation
type OperationMetrics struct {
	Operation    string `json:"operation"`
	Count        int64  `json:"count"`
	SuccessCount int64  `json:"success_count"`
	ErrorCount   int64  `json:"error_count"`
	TotalTime    int64  `json:"total_time_ns"`
	MinTime      int64  `json:"min_time_ns"`
	MaxTime      int64  `json:"max_time_ns"`
	AvgTime      int64  `json:"avg_time_ns"`
}

// RuntimeMetrics holds process-level metrics from the Go runtime
type RuntimeMetrics struct {
	Goroutines   int    `json:"goroutines"`
	HeapAlloc    uint64 `json:"heap_alloc"`
	HeapInuse    uint64 `json:"heap_inuse"`
	Sys          uint64 `json:"sys"`
	NumGC        uint32 `json:"num_gc"`
	PauseTotalNs uint64 `json:"pause_total_ns"`
}

// Snapshot is a point-in-time view of a collector
type Snapshot struct {
	Timestamp  time.Time          `json:"timestamp"`
	Uptime     string             `json:"uptime"`
	InFlight   float64            `json:"in_flight"`
	Requests   int64              `json:"requests"`
	Operations []OperationMetrics `json:"operations"`
	Runtime    RuntimeMetrics     `json:"runtime"`
}

// Counter is a thread-safe counter
type Counter struct {
	value int64
}

// Inc increments the counter by 1
func (c *Counter) Inc() {
	atomic.AddInt64(&c.value, 1)
}

// Get returns the current value
func (c *Counter) Get() int64 {
	return atomic.LoadInt64(&c.value)
}

// Gauge is a thread-safe value that can go up and down
type Gauge struct {
	bits uint64
}

// Add adds delta to the gauge
func (g *Gauge) Add(delta float64) {
	for {
		old := atomic.LoadUint64(&g.bits)
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if atomic.CompareAndSwapUint64(&g.bits, old, next) {
			return
		}
	}
}

// Get returns the current value
func (g *Gauge) Get() float64 {
	return math.Float64frombits(atomic.LoadUint64(&g.bits))
}

const noMin = int64(^uint64(0) >> 1)

// Timer records durations and outcomes for one operation
type Timer struct {
	count     int64
	errors    int64
	totalTime int64
	minTime   int64
	maxTime   int64
}

// NewTimer creates an empty timer
func NewTimer() *Timer {
	return &Timer{minTime: noMin}
}

// Record adds one measurement
func (t *Timer) Record(d time.Duration, failed bool) {
	nanos := d.Nanoseconds()
	atomic.AddInt64(&t.count, 1)
	atomic.AddInt64(&t.totalTime, nanos)
	if failed {
		atomic.AddInt64(&t.errors, 1)
	}

	for {
		current := atomic.LoadInt64(&t.minTime)
		if nanos >= current || atomic.CompareAndSwapInt64(&t.minTime, current, nanos) {
			break
		}
	}
	for {
		current := atomic.LoadInt64(&t.maxTime)
		if nanos <= current || atomic.CompareAndSwapInt64(&t.maxTime, current, nanos) {
			break
		}
	}
}

// Metrics returns the timer's statistics under name
func (t *Timer) Metrics(name string) OperationMetrics {
	count := atomic.LoadInt64(&t.count)
	errs := atomic.LoadInt64(&t.errors)
	total := atomic.LoadInt64(&t.totalTime)

	m := OperationMetrics{
		Operation:    name,
		Count:        count,
		SuccessCount: count - errs,
		ErrorCount:   errs,
		TotalTime:    total,
		MaxTime:      atomic.LoadInt64(&t.maxTime),
	}
	if minTime := atomic.LoadInt64(&t.minTime); minTime != noMin {
		m.MinTime = minTime
	}
	if count > 0 {
		m.AvgTime = total / count
	}
	return m
}

func collectRuntime() RuntimeMetrics {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return RuntimeMetrics{
		Goroutines:   runtime.NumGoroutine(),
		HeapAlloc:    m.HeapAlloc,
		HeapInuse:    m.HeapInuse,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}
