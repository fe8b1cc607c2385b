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

// Business metric names
const (
	MetricNameTasksCreated     = "questkeeper_tasks_created_total"
	MetricNameTasksCompleted   = "questkeeper_tasks_completed_total"
	MetricNameLevelUps         = "questkeeper_level_ups_total"
	MetricNameItemsDropped     = "questkeeper_items_dropped_total"
	MetricNameGoldEarned       = "questkeeper_gold_earned_total"
	MetricNameExperienceEarned = "questkeeper_experience_earned_total"
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

// Business metric help text
const (
	HelpTextTasksCreated     = "Total number of tasks created"
	HelpTextTasksCompleted   = "Total number of tasks completed"
	HelpTextLevelUps         = "Total number of character level ups"
	HelpTextItemsDropped     = "Total number of loot items dropped"
	HelpTextGoldEarned       = "Total gold banked from completed tasks"
	HelpTextExperienceEarned = "Total experience earned from completed tasks"
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
	LabelQuestType  = "quest_type"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, ranging from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgPayloadDecodeFailed = "Event payload decode failed"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
