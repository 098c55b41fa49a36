// Package stats tracks process-lifetime conversation counters. Counts are
// in-memory only and reset on restart; the same instruments are exported
// as Prometheus counters for the optional /metrics surface.
package stats

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Counters struct {
	start time.Time

	totalMessages atomic.Int64
	apiCalls      atomic.Int64
	errors        atomic.Int64

	promMessages prometheus.Counter
	promAPICalls prometheus.Counter
	promErrors   prometheus.Counter
}

func New(namespace string) *Counters {
	return &Counters{
		start: time.Now(),
		promMessages: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Turns that produced a delivered reply.",
		}),
		promAPICalls: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_calls_total",
			Help:      "Successful completion API calls.",
		}),
		promErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Unexpected completion failures.",
		}),
	}
}

// NewUnregistered returns counters without Prometheus instruments, for
// tests that build several bots in one process.
func NewUnregistered() *Counters {
	return &Counters{start: time.Now()}
}

func (c *Counters) MessageHandled() {
	c.totalMessages.Add(1)
	if c.promMessages != nil {
		c.promMessages.Inc()
	}
}

func (c *Counters) APICall() {
	c.apiCalls.Add(1)
	if c.promAPICalls != nil {
		c.promAPICalls.Inc()
	}
}

func (c *Counters) Error() {
	c.errors.Add(1)
	if c.promErrors != nil {
		c.promErrors.Inc()
	}
}

type Snapshot struct {
	TotalMessages int64
	APICalls      int64
	Errors        int64
	Uptime        time.Duration
}

func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		TotalMessages: c.totalMessages.Load(),
		APICalls:      c.apiCalls.Load(),
		Errors:        c.errors.Load(),
		Uptime:        time.Since(c.start).Truncate(time.Second),
	}
}
