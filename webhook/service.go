package webhook

import (
	"context"
	"fmt"
	"time"
)

/* Service represents the business logic layer
 * Uses pointer semantics as it's an API, not data
 */

// UseCase defines the business operations for webhook storage
type UseCase interface {
	Create(ctx context.Context, url, method, headersJSON string, body *string) (Webhook, error)
	FindByID(ctx context.Context, id int64) (Webhook, error)
	List(ctx context.Context, limit, offset int) ([]Webhook, int64, error)
	MarkProcessed(ctx context.Context, id int64) error
}

type Service struct {
	Repo Repository
}

// NewService creates a new webhook service with dependency injection
func NewService(repo Repository) *Service {
	return &Service{
		Repo: repo,
	}
}

// Create stores a received webhook and returns it with the server-assigned
// id and receivedAt timestamp.
func (s *Service) Create(ctx context.Context, url, method, headersJSON string, body *string) (Webhook, error) {
	if method == "" {
		method = DefaultMethod
	}
	wh := Webhook{
		URL:        url,
		Method:     method,
		Headers:    headersJSON,
		Body:       body,
		ReceivedAt: time.Now().UTC().Truncate(time.Second),
	}

	id, err := s.Repo.Insert(ctx, wh)
	if err != nil {
		return Webhook{}, fmt.Errorf("storing webhook: %w", err)
	}
	wh.ID = id

	return wh, nil
}

// FindByID returns a single stored webhook. Callers can test the error
// against ErrNotFound.
func (s *Service) FindByID(ctx context.Context, id int64) (Webhook, error) {
	wh, err := s.Repo.Select(ctx, id)
	if err != nil {
		return Webhook{}, fmt.Errorf("selecting webhook: %w", err)
	}
	return wh, nil
}

// List returns a page of webhooks ordered by receivedAt ascending plus the
// full table count. Count and page are two independent statements, so the
// total may drift from the window under concurrent inserts.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Webhook, int64, error) {
	rows, err := s.Repo.SelectPage(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("selecting webhooks: %w", err)
	}
	total, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("counting webhooks: %w", err)
	}
	return rows, total, nil
}

// MarkProcessed stamps processedAt with the current time. The transition
// happens at most once; marking an already-processed or unknown id is a
// no-op.
func (s *Service) MarkProcessed(ctx context.Context, id int64) error {
	err := s.Repo.SetProcessed(ctx, id, time.Now().UTC().Truncate(time.Second))
	if err != nil {
		return fmt.Errorf("marking webhook processed: %w", err)
	}
	return nil
}
