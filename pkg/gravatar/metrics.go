package gravatar

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess        = "success"
	outcomeTransportError = "transport_error"
	outcomeHTTPError      = "http_error"
	outcomeDecodeError    = "decode_error"
)

// Metrics holds the fetch collectors. A nil *Metrics records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on registerer. When
// they are already registered the existing collectors are reused.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gravatar",
		Subsystem: "fetch",
		Name:      "requests_total",
		Help:      "Gravatar requests by format and outcome.",
	}, []string{"format", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gravatar",
		Subsystem: "fetch",
		Name:      "duration_seconds",
		Help:      "Gravatar request latency by format.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"format"})

	if registerer != nil {
		registeredRequests, err := registerCollector(registerer, requests)
		if err != nil {
			return nil, err
		}
		registeredDuration, err := registerCollector(registerer, duration)
		if err != nil {
			return nil, err
		}
		requests = registeredRequests
		duration = registeredDuration
	}

	return &Metrics{requests: requests, duration: duration}, nil
}

func registerCollector[T prometheus.Collector](registerer prometheus.Registerer, collector T) (T, error) {
	if err := registerer.Register(collector); err != nil {
		var alreadyRegistered prometheus.AlreadyRegisteredError
		if errors.As(err, &alreadyRegistered) {
			if existing, ok := alreadyRegistered.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return collector, err
	}
	return collector, nil
}

func (m *Metrics) observe(format Format, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(string(format), outcome).Inc()
	m.duration.WithLabelValues(string(format)).Observe(elapsed.Seconds())
}

func (m *Metrics) observeDecodeFailure(format Format) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(string(format), outcomeDecodeError).Inc()
}
