package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/marcelsud/webhook-vault/webhook"
	"github.com/marcelsud/webhook-vault/webhook/signature"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// Headers that must never be persisted with a captured request.
var sensitiveHeaders = map[string]struct{}{
	"authorization": {},
	"x-api-key":     {},
	"x-auth-token":  {},
	"cookie":        {},
}

type webhookResponse struct {
	ID          int64      `json:"id"`
	URL         string     `json:"url"`
	Method      string     `json:"method"`
	Headers     string     `json:"headers"`
	Body        *string    `json:"body"`
	ReceivedAt  time.Time  `json:"receivedAt"`
	ProcessedAt *time.Time `json:"processedAt"`
}

type receiveResponse struct {
	ID         int64     `json:"id"`
	ReceivedAt time.Time `json:"receivedAt"`
}

type listResponse struct {
	Data       []webhookResponse `json:"data"`
	Pagination pagination        `json:"pagination"`
}

type pagination struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}

func toWebhookResponse(wh webhook.Webhook) webhookResponse {
	return webhookResponse{
		ID:          wh.ID,
		URL:         wh.URL,
		Method:      wh.Method,
		Headers:     wh.Headers,
		Body:        wh.Body,
		ReceivedAt:  wh.ReceivedAt,
		ProcessedAt: wh.ProcessedAt,
	}
}

// postWebhook captures an incoming delivery. When a shared secret is
// configured the sender's HMAC signature is checked before anything is
// stored; with no secret every delivery is accepted.
func postWebhook(service webhook.UseCase, secret string) handlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return fmt.Errorf("reading webhook body: %w", err)
		}
		defer r.Body.Close()

		if secret != "" {
			sig := r.Header.Get(signature.HeaderName)
			if sig == "" {
				return unauthorizedError("Missing webhook signature")
			}
			if !signature.Verify(secret, body, sig) {
				return unauthorizedError("Invalid webhook signature")
			}
		}

		if len(body) > 0 && !json.Valid(body) {
			return validationError("Invalid JSON body")
		}

		headers := make(map[string]string, len(r.Header))
		for key, values := range r.Header {
			if _, sensitive := sensitiveHeaders[strings.ToLower(key)]; sensitive {
				continue
			}
			if len(values) > 0 {
				headers[key] = values[0]
			}
		}
		headersJSON, err := json.Marshal(headers)
		if err != nil {
			return fmt.Errorf("encoding webhook headers: %w", err)
		}

		var bodyStr *string
		if len(body) > 0 {
			s := string(body)
			bodyStr = &s
		}

		wh, err := service.Create(r.Context(), requestURL(r), r.Method, string(headersJSON), bodyStr)
		if err != nil {
			return fmt.Errorf("storing webhook: %w", err)
		}

		writeJSON(w, http.StatusCreated, receiveResponse{ID: wh.ID, ReceivedAt: wh.ReceivedAt})
		return nil
	}
}

func getWebhooks(service webhook.UseCase) handlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		limit := defaultPageLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				return validationError("Invalid limit parameter")
			}
			if n > maxPageLimit {
				n = maxPageLimit
			}
			limit = n
		}

		offset := 0
		if raw := r.URL.Query().Get("offset"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				return validationError("Invalid offset parameter")
			}
			offset = n
		}

		rows, total, err := service.List(r.Context(), limit, offset)
		if err != nil {
			return fmt.Errorf("listing webhooks: %w", err)
		}

		data := make([]webhookResponse, 0, len(rows))
		for _, wh := range rows {
			data = append(data, toWebhookResponse(wh))
		}

		writeJSON(w, http.StatusOK, listResponse{
			Data:       data,
			Pagination: pagination{Limit: limit, Offset: offset, Total: total},
		})
		return nil
	}
}

func getWebhook(service webhook.UseCase) handlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			return validationError("Invalid webhook ID")
		}

		wh, err := service.FindByID(r.Context(), id)
		if errors.Is(err, webhook.ErrNotFound) {
			return notFoundError(fmt.Sprintf("Webhook with ID %d not found", id))
		}
		if err != nil {
			return fmt.Errorf("finding webhook %d: %w", id, err)
		}

		writeJSON(w, http.StatusOK, toWebhookResponse(wh))
		return nil
	}
}

func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
