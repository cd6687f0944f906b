package allocator

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts allocator traffic. One Metrics can instrument any number of
// allocators; the counters are shared.
type Metrics struct {
	requests       *prometheus.CounterVec
	requestedBytes *prometheus.CounterVec
	failures       *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		requests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "jsondoc",
			Subsystem: "allocator",
			Name:      "requests_total",
			Help:      "Total number of allocator requests by operation.",
		}, []string{"op"}),
		requestedBytes: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "jsondoc",
			Subsystem: "allocator",
			Name:      "requested_bytes_total",
			Help:      "Total number of bytes requested by allocate and reallocate.",
		}, []string{"op"}),
		failures: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "jsondoc",
			Subsystem: "allocator",
			Name:      "failures_total",
			Help:      "Total number of allocator requests that could not be satisfied.",
		}, []string{"op", "reason"}),
	}
}

// Instrument returns an allocator that forwards to next and records every
// request in m.
func (m *Metrics) Instrument(next Allocator) Allocator {
	return &instrumented{next: OrDefault(next), m: m}
}

type instrumented struct {
	next Allocator
	m    *Metrics
}

func (i *instrumented) Allocate(size int) ([]byte, error) {
	i.m.requests.WithLabelValues("allocate").Inc()
	i.m.requestedBytes.WithLabelValues("allocate").Add(float64(size))
	block, err := i.next.Allocate(size)
	if err != nil {
		i.m.failures.WithLabelValues("allocate", failureReason(err)).Inc()
	}
	return block, err
}

func (i *instrumented) Reallocate(block []byte, size int) ([]byte, error) {
	i.m.requests.WithLabelValues("reallocate").Inc()
	i.m.requestedBytes.WithLabelValues("reallocate").Add(float64(size))
	grown, err := i.next.Reallocate(block, size)
	if err != nil {
		i.m.failures.WithLabelValues("reallocate", failureReason(err)).Inc()
	}
	return grown, err
}

func (i *instrumented) Deallocate(block []byte) {
	i.m.requests.WithLabelValues("deallocate").Inc()
	i.next.Deallocate(block)
}

func failureReason(err error) string {
	if errors.Is(err, ErrOutOfMemory) {
		return "out_of_memory"
	}
	return "other"
}
