package timer

import (
	"time"

	"braces.dev/errtrace"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ghettovoice/gotimer/internal/errorutil"
)

const metricsSubsystem = "scheduler"

// metrics holds the scheduler collectors.
// A nil *metrics records nothing.
type metrics struct {
	reg prometheus.Registerer

	registered prometheus.Counter
	cancelled  prometheus.Counter
	fired      prometheus.Counter
	panics     prometheus.Counter
	pending    prometheus.Gauge
	lateness   prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer, ns string, labels prometheus.Labels) (*metrics, error) {
	if reg == nil {
		return nil, nil
	}

	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   metricsSubsystem,
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}

	m := &metrics{
		reg:        reg,
		registered: counter("entries_registered_total", "Total number of registered entries."),
		cancelled:  counter("entries_cancelled_total", "Total number of cancelled entries."),
		fired:      counter("entries_fired_total", "Total number of fired entries."),
		panics:     counter("callback_panics_total", "Total number of recovered callback panics."),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   metricsSubsystem,
			Name:        "entries_pending",
			Help:        "Number of scheduled entries waiting for their deadline.",
			ConstLabels: labels,
		}),
		lateness: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   ns,
			Subsystem:   metricsSubsystem,
			Name:        "fire_lateness_seconds",
			Help:        "Delay between the entry deadline and the callback invocation.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}

	var (
		done []prometheus.Collector
		errs []error
	)
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			errs = append(errs, err)
			continue
		}
		done = append(done, c)
	}
	if len(errs) > 0 {
		for _, c := range done {
			reg.Unregister(c)
		}
		return nil, errtrace.Wrap(errorutil.JoinPrefix("register scheduler metrics:", errs...))
	}
	return m, nil
}

func (m *metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.registered, m.cancelled, m.fired, m.panics, m.pending, m.lateness}
}

func (m *metrics) unregister() {
	if m == nil {
		return
	}
	for _, c := range m.collectors() {
		m.reg.Unregister(c)
	}
}

func (m *metrics) onRegister(pending int) {
	if m == nil {
		return
	}
	m.registered.Inc()
	m.pending.Set(float64(pending))
}

func (m *metrics) onCancel(pending int) {
	if m == nil {
		return
	}
	m.cancelled.Inc()
	m.pending.Set(float64(pending))
}

func (m *metrics) onFire(pending int, lateness time.Duration) {
	if m == nil {
		return
	}
	m.fired.Inc()
	m.pending.Set(float64(pending))
	m.lateness.Observe(lateness.Seconds())
}

func (m *metrics) onPanic() {
	if m == nil {
		return
	}
	m.panics.Inc()
}

func (m *metrics) onDiscard() {
	if m == nil {
		return
	}
	m.pending.Set(0)
}
