package webhook

import "time"

/* Webhook represents a received webhook request stored in the system
 * Uses value semantics as it represents data, not behavior
 */
type Webhook struct {
	ID          int64
	URL         string
	Method      string
	Headers     string // JSON-encoded map of the (redacted) request headers
	Body        *string
	ReceivedAt  time.Time
	ProcessedAt *time.Time
}

// DefaultMethod is used when a webhook is captured without an explicit method.
const DefaultMethod = "POST"
