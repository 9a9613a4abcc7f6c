package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daleel/internal/app"
	"daleel/internal/domain"
	"daleel/internal/storage/memory"
)

func TestStore(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	_, err := s.Get(ctx, "reviews_1")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "reviews_1", "[]"))
	v, err := s.Get(ctx, "reviews_1")
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestStore_BacksReviewService(t *testing.T) {
	s := memory.New()
	svc := app.NewReviewService(s)
	ctx := context.Background()

	_, err := svc.SaveReview(ctx, 101, "تجربة رائعة جدا")
	require.NoError(t, err)
	got := svc.GetReviews(ctx, 101)
	require.Len(t, got, 1)
	assert.Equal(t, "تجربة رائعة جدا", got[0].Text)
}
