package webhook_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marcelsud/webhook-vault/webhook"
	"github.com/marcelsud/webhook-vault/webhook/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := webhook.NewService(repo)

		body := `{"test":"data"}`
		repo.On("Insert", ctx, mock.MatchedBy(func(wh webhook.Webhook) bool {
			return wh.URL == "http://example.com/v1/webhooks/receive" &&
				wh.Method == "POST" &&
				wh.Headers == `{"Content-Type":"application/json"}` &&
				wh.Body != nil && *wh.Body == body &&
				!wh.ReceivedAt.IsZero() &&
				wh.ProcessedAt == nil
		})).Return(int64(42), nil)

		wh, err := service.Create(ctx, "http://example.com/v1/webhooks/receive", "POST", `{"Content-Type":"application/json"}`, &body)

		require.NoError(t, err)
		assert.Equal(t, int64(42), wh.ID)
		assert.Equal(t, "POST", wh.Method)
		repo.AssertExpectations(t)
	})

	t.Run("defaults method to POST", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := webhook.NewService(repo)

		repo.On("Insert", ctx, mock.MatchedBy(func(wh webhook.Webhook) bool {
			return wh.Method == webhook.DefaultMethod
		})).Return(int64(1), nil)

		wh, err := service.Create(ctx, "http://example.com/", "", "{}", nil)

		require.NoError(t, err)
		assert.Equal(t, "POST", wh.Method)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := webhook.NewService(repo)

		repo.On("Insert", ctx, mock.AnythingOfType("webhook.Webhook")).Return(int64(0), errors.New("boom"))

		_, err := service.Create(ctx, "http://example.com/", "POST", "{}", nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "storing webhook")
	})
}

func TestFindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := webhook.NewService(repo)

		stored := webhook.Webhook{ID: 7, URL: "http://example.com/", Method: "POST", Headers: "{}", ReceivedAt: time.Now()}
		repo.On("Select", ctx, int64(7)).Return(stored, nil)

		wh, err := service.FindByID(ctx, 7)

		require.NoError(t, err)
		assert.Equal(t, stored, wh)
	})

	t.Run("not found is detectable through the wrap", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := webhook.NewService(repo)

		repo.On("Select", ctx, int64(99)).Return(webhook.Webhook{}, webhook.ErrNotFound)

		_, err := service.FindByID(ctx, 99)

		require.Error(t, err)
		assert.ErrorIs(t, err, webhook.ErrNotFound)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()

	t.Run("returns rows and total", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := webhook.NewService(repo)

		rows := []webhook.Webhook{{ID: 1}, {ID: 2}}
		repo.On("SelectPage", ctx, 5, 0).Return(rows, nil)
		repo.On("Count", ctx).Return(int64(12), nil)

		got, total, err := service.List(ctx, 5, 0)

		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, int64(12), total)
	})

	t.Run("page error", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := webhook.NewService(repo)

		repo.On("SelectPage", ctx, 20, 0).Return(nil, errors.New("boom"))

		_, _, err := service.List(ctx, 20, 0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "selecting webhooks")
	})
}

func TestMarkProcessed(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := webhook.NewService(repo)

		repo.On("SetProcessed", ctx, int64(3), mock.AnythingOfType("time.Time")).Return(nil)

		err := service.MarkProcessed(ctx, 3)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
