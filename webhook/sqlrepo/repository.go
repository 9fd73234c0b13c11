/* Package sqlrepo implements webhook.Repository over a storage.Adapter.
 * One implementation serves all three backends; the only dialect
 * differences are placeholder style and how inserted ids come back.
 */
package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/marcelsud/webhook-vault/storage"
	"github.com/marcelsud/webhook-vault/webhook"
)

type Repository struct {
	adapter storage.Adapter
}

func NewRepository(adapter storage.Adapter) *Repository {
	return &Repository{adapter: adapter}
}

/* rebind rewrites ? placeholders to $1..$n for postgres. The sqlite and
 * libsql drivers take ? natively.
 */
func (r *Repository) rebind(query string) string {
	if r.adapter.Kind() != storage.Networked {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func (r *Repository) Insert(ctx context.Context, wh webhook.Webhook) (int64, error) {
	var body sql.NullString
	if wh.Body != nil {
		body = sql.NullString{String: *wh.Body, Valid: true}
	}

	query := `INSERT INTO webhooks (url, method, headers, body, received_at) VALUES (?, ?, ?, ?, ?)`
	args := []any{wh.URL, wh.Method, wh.Headers, body, wh.ReceivedAt.Unix()}

	if r.adapter.Kind() == storage.Networked {
		var id int64
		err := r.adapter.DB().QueryRowContext(ctx, r.rebind(query+" RETURNING id"), args...).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("inserting webhook: %w", err)
		}
		return id, nil
	}

	result, err := r.adapter.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting webhook: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert ID: %w", err)
	}
	return id, nil
}

func (r *Repository) Select(ctx context.Context, id int64) (webhook.Webhook, error) {
	row := r.adapter.DB().QueryRowContext(ctx,
		r.rebind(`SELECT id, url, method, headers, body, received_at, processed_at FROM webhooks WHERE id = ?`), id)

	wh, err := scanWebhook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return webhook.Webhook{}, webhook.ErrNotFound
	}
	if err != nil {
		return webhook.Webhook{}, fmt.Errorf("selecting webhook: %w", err)
	}
	return wh, nil
}

func (r *Repository) SelectPage(ctx context.Context, limit, offset int) ([]webhook.Webhook, error) {
	rows, err := r.adapter.DB().QueryContext(ctx,
		r.rebind(`SELECT id, url, method, headers, body, received_at, processed_at FROM webhooks ORDER BY received_at ASC, id ASC LIMIT ? OFFSET ?`),
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("selecting webhooks: %w", err)
	}
	defer rows.Close()

	webhooks := []webhook.Webhook{}
	for rows.Next() {
		wh, err := scanWebhook(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning webhook: %w", err)
		}
		webhooks = append(webhooks, wh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating webhooks: %w", err)
	}
	return webhooks, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.adapter.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM webhooks`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting webhooks: %w", err)
	}
	return count, nil
}

func (r *Repository) CountProcessed(ctx context.Context) (int64, error) {
	var count int64
	err := r.adapter.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM webhooks WHERE processed_at IS NOT NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting processed webhooks: %w", err)
	}
	return count, nil
}

// SetProcessed stamps processed_at once. The IS NULL guard makes the
// transition idempotent; re-marking or marking an unknown id affects zero
// rows, which is not an error.
func (r *Repository) SetProcessed(ctx context.Context, id int64, at time.Time) error {
	_, err := r.adapter.DB().ExecContext(ctx,
		r.rebind(`UPDATE webhooks SET processed_at = ? WHERE id = ? AND processed_at IS NULL`),
		at.Unix(), id)
	if err != nil {
		return fmt.Errorf("updating webhook: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWebhook(s scanner) (webhook.Webhook, error) {
	var (
		wh          webhook.Webhook
		body        sql.NullString
		receivedAt  int64
		processedAt sql.NullInt64
	)
	if err := s.Scan(&wh.ID, &wh.URL, &wh.Method, &wh.Headers, &body, &receivedAt, &processedAt); err != nil {
		return webhook.Webhook{}, err
	}
	if body.Valid {
		wh.Body = &body.String
	}
	wh.ReceivedAt = time.Unix(receivedAt, 0).UTC()
	if processedAt.Valid {
		t := time.Unix(processedAt.Int64, 0).UTC()
		wh.ProcessedAt = &t
	}
	return wh, nil
}
