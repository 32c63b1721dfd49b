package timer

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ghettovoice/gotimer/internal/timeutil"
	"github.com/ghettovoice/gotimer/log"
)

// DefaultIdleHorizon is the worker wake interval used while no entries are scheduled.
const DefaultIdleHorizon = 2 * time.Second

// DefaultMetricsNamespace is the metrics namespace used when none is configured.
const DefaultMetricsNamespace = "gotimer"

// Options are the options for a [Scheduler].
// Nil options or zero fields mean default values.
type Options struct {
	// IdleHorizon is the interval after which the idle worker wakes up to re-check the schedule.
	// If 0, the [DefaultIdleHorizon] is used. Negative value is invalid.
	IdleHorizon time.Duration
	// Clock is the clock used to check deadlines.
	// Entries should be created with the same clock, see [NewEntryWithClock].
	// If nil, the [timeutil.SystemClock] is used.
	Clock Clock
	// Logger is the logger.
	// If nil, the [log.Default] is used.
	Logger *slog.Logger
	// Registerer is the Prometheus registerer for the scheduler metrics.
	// If nil, metrics are not collected.
	Registerer prometheus.Registerer
	// MetricsNamespace is the namespace of the scheduler metrics.
	// If empty, the [DefaultMetricsNamespace] is used.
	MetricsNamespace string
	// ConstLabels are attached to every scheduler metric.
	// Use them to distinguish several schedulers registered in the same registry.
	ConstLabels prometheus.Labels
}

func (o *Options) validate() error {
	if o != nil && o.IdleHorizon < 0 {
		return NewInvalidArgumentError("negative idle horizon %v", o.IdleHorizon) //errtrace:skip
	}
	return nil
}

func (o *Options) idleHorizon() time.Duration {
	if o == nil || o.IdleHorizon == 0 {
		return DefaultIdleHorizon
	}
	return o.IdleHorizon
}

func (o *Options) clock() Clock {
	if o == nil || o.Clock == nil {
		return timeutil.SystemClock
	}
	return o.Clock
}

func (o *Options) log() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

func (o *Options) registerer() prometheus.Registerer {
	if o == nil {
		return nil
	}
	return o.Registerer
}

func (o *Options) metricsNamespace() string {
	if o == nil || o.MetricsNamespace == "" {
		return DefaultMetricsNamespace
	}
	return o.MetricsNamespace
}

func (o *Options) constLabels() prometheus.Labels {
	if o == nil {
		return nil
	}
	return o.ConstLabels
}
