package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/marcelsud/webhook-vault/storage"
)

type ctxKey int

const (
	correlationIDKey ctxKey = iota
	requestStartKey
	adapterKey
)

// CorrelationHeader carries the request id in and out of the service.
const CorrelationHeader = "x-correlation-id"

// correlationID tags every request with an id. An incoming
// x-correlation-id wins, then the upstream x-request-id, otherwise a
// fresh UUID is generated. The id is echoed on the response before any
// handler runs so error responses carry it too.
func correlationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(CorrelationHeader)
		if id == "" {
			id = r.Header.Get("x-request-id")
		}
		if id == "" {
			id = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), correlationIDKey, id)
		ctx = context.WithValue(ctx, requestStartKey, time.Now())

		w.Header().Set(CorrelationHeader, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CorrelationID returns the id assigned to the request, or a fixed
// placeholder when the middleware never ran.
func CorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey).(string); ok {
		return id
	}
	return "no-correlation-id"
}

// RequestStart returns the time the request entered the pipeline.
func RequestStart(ctx context.Context) time.Time {
	if start, ok := ctx.Value(requestStartKey).(time.Time); ok {
		return start
	}
	return time.Time{}
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// attachAdapter exposes the storage adapter on the request context.
// Idempotent: an adapter already present on the context is kept.
func attachAdapter(adapter storage.Adapter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adapter != nil && AdapterFrom(r.Context()) == nil {
				ctx := context.WithValue(r.Context(), adapterKey, adapter)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdapterFrom returns the storage adapter attached to the request, if any.
func AdapterFrom(ctx context.Context) storage.Adapter {
	if adapter, ok := ctx.Value(adapterKey).(storage.Adapter); ok {
		return adapter
	}
	return nil
}
