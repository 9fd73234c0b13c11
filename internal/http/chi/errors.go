package chi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/httplog"
	goerrors "github.com/goliatone/go-errors"
)

/* Handlers return errors instead of writing their own failure responses.
 * writeError is the single place that maps a failure to an HTTP response,
 * logs it and reports it. Anything that is not a recognized typed error
 * collapses to a generic 500 so internals never leak to the client.
 */

const (
	codeNotFound     = "NOT_FOUND"
	codeValidation   = "VALIDATION_ERROR"
	codeUnauthorized = "UNAUTHORIZED"
	codeForbidden    = "FORBIDDEN"
	codeConflict     = "CONFLICT"
	codeInternal     = "INTERNAL_ERROR"
)

func notFoundError(message string) error {
	return goerrors.New(message, goerrors.CategoryNotFound).
		WithCode(http.StatusNotFound).
		WithTextCode(codeNotFound)
}

func validationError(message string) error {
	return goerrors.New(message, goerrors.CategoryValidation).
		WithCode(http.StatusBadRequest).
		WithTextCode(codeValidation)
}

func unauthorizedError(message string) error {
	return goerrors.New(message, goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(codeUnauthorized)
}

func internalError(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(codeInternal)
}

// handlerFunc lets route handlers surface failures as return values.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func handle(fn handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			writeError(w, r, err)
		}
	})
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code          string         `json:"code"`
	Message       string         `json:"message"`
	Details       map[string]any `json:"details,omitempty"`
	CorrelationID string         `json:"correlationId"`
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	correlationID := CorrelationID(r.Context())

	status := http.StatusInternalServerError
	code := codeInternal
	message := "An unexpected error occurred"
	var details map[string]any

	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		status = statusForCategory(rich.Category)
		if rich.Code != 0 {
			status = rich.Code
		}
		if status < http.StatusInternalServerError {
			code = codeForStatus(status)
			if rich.TextCode != "" {
				code = rich.TextCode
			}
			message = rich.Message
			if len(rich.Metadata) > 0 {
				details = rich.Metadata
			}
		}
	}

	oplog := httplog.LogEntry(r.Context())
	event := oplog.Error().Err(err).Str("correlationId", correlationID)
	if start := RequestStart(r.Context()); !start.IsZero() {
		event = event.Dur("elapsed", time.Since(start))
	}
	event.Msg("request error")

	if status >= http.StatusInternalServerError {
		// Best effort: a failed report must never fail the response.
		sentry.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("correlation_id", correlationID)
			sentry.CaptureException(err)
		})
	}

	writeJSON(w, status, errorResponse{Error: errorDetail{
		Code:          code,
		Message:       message,
		Details:       details,
		CorrelationID: correlationID,
	}})
}

func statusForCategory(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryValidation, goerrors.CategoryBadInput:
		return http.StatusBadRequest
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusNotFound:
		return codeNotFound
	case http.StatusBadRequest:
		return codeValidation
	case http.StatusUnauthorized:
		return codeUnauthorized
	case http.StatusForbidden:
		return codeForbidden
	case http.StatusConflict:
		return codeConflict
	default:
		return codeInternal
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
