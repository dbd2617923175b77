package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Game Metrics
var (
	RoundsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRoundsStarted,
			Help: HelpTextRoundsStarted,
		},
		[]string{LabelDifficulty},
	)

	RollsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRollsTotal,
			Help: HelpTextRollsTotal,
		},
	)

	RoundsLost = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRoundsLost,
			Help: HelpTextRoundsLost,
		},
		[]string{LabelDifficulty},
	)

	SettlementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSettlementsTotal,
			Help: HelpTextSettlementsTotal,
		},
		[]string{LabelOutcome},
	)

	CashoutMultiplier = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameCashoutMultiplier,
			Help:    HelpTextCashoutMultiplier,
			Buckets: MultiplierBuckets,
		},
	)

	BalanceRefreshes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBalanceRefreshes,
			Help: HelpTextBalanceRefreshes,
		},
	)
)
