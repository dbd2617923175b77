package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Game metric names
const (
	MetricNameRoundsStarted     = "rounds_started_total"
	MetricNameRollsTotal        = "rolls_total"
	MetricNameRoundsLost        = "rounds_lost_total"
	MetricNameSettlementsTotal  = "settlements_total"
	MetricNameCashoutMultiplier = "cashout_multiplier"
	MetricNameBalanceRefreshes  = "balance_refreshes_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Game metric help text
const (
	HelpTextRoundsStarted     = "Total number of rounds started"
	HelpTextRollsTotal        = "Total number of resolved rolls"
	HelpTextRoundsLost        = "Total number of rounds lost on a hazard"
	HelpTextSettlementsTotal  = "Total number of cashout settlement attempts by outcome"
	HelpTextCashoutMultiplier = "Multiplier of settled cashouts"
	HelpTextBalanceRefreshes  = "Total number of balance updates observed"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelType       = "type"
	LabelDifficulty = "difficulty"
	LabelOutcome    = "outcome"
)

// UnmatchedRoute labels requests that matched no route
const UnmatchedRoute = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// MultiplierBuckets covers cashout multipliers from break-even to long bonus streaks
var MultiplierBuckets = []float64{1, 1.25, 1.5, 2, 3, 5, 8, 13, 21, 34}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnknownPayload  = "Event payload has an unexpected type"
	LogMsgMetricsRecorded = "Metrics recorded for event"
)
