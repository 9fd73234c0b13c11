package webhook

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by repositories when a webhook id has no row.
var ErrNotFound = errors.New("webhook not found")

/* Small, focused interfaces following "The Go Way"
 * Interfaces abstract behavior, not things
 * Written for users of the API, not just for testing
 */

// Reader provides read operations for stored webhooks
type Reader interface {
	/* Context is always the first parameter in functions that do I/O
	 * This allows for cancellation, timeouts, and shared values
	 */
	Select(ctx context.Context, id int64) (Webhook, error)
	/* SelectPage returns a window of webhooks ordered by receivedAt ascending */
	SelectPage(ctx context.Context, limit, offset int) ([]Webhook, error)
	Count(ctx context.Context) (int64, error)
	CountProcessed(ctx context.Context) (int64, error)
}

// Writer provides write operations for stored webhooks
type Writer interface {
	/* Insert stores a webhook and returns the server-assigned id */
	Insert(ctx context.Context, wh Webhook) (int64, error)
	/* SetProcessed stamps processedAt on a row that has not been
	 * processed yet. Zero rows affected is not an error
	 */
	SetProcessed(ctx context.Context, id int64, at time.Time) error
}

/* Interface composition - combining small interfaces into larger ones
 * This is preferred over large monolithic interfaces
 */
type Repository interface {
	Reader
	Writer
}
