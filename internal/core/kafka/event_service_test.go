package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Xushengqwer/post_admin/internal/listquery"
	"github.com/Xushengqwer/post_admin/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContentRepo struct {
	indexed  []models.ContentDocument
	deleted  []int64
	indexErr error
}

func (r *fakeContentRepo) IndexContent(_ context.Context, doc models.ContentDocument) error {
	if r.indexErr != nil {
		return r.indexErr
	}
	r.indexed = append(r.indexed, doc)
	return nil
}

func (r *fakeContentRepo) DeleteContent(_ context.Context, ctntNo int64) error {
	r.deleted = append(r.deleted, ctntNo)
	return nil
}

func (r *fakeContentRepo) SearchContents(context.Context, models.PageRequest) (listquery.Envelope, error) {
	return nil, nil
}

func TestEventService_HandleContentUpsert(t *testing.T) {
	repo := &fakeContentRepo{}
	svc := NewEventService(repo, newTestLogger(t))
	ctx := context.Background()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, svc.HandleContentUpsert(ctx, &models.ContentUpsertEvent{
		EventID: "e1",
		Content: models.ContentDocument{CtntNo: 1, Title: "Go", InpDttm: created},
	}))
	require.Len(t, repo.indexed, 1)
	assert.Equal(t, created, repo.indexed[0].UpdDttm, "缺少更新时间时沿用创建时间")

	err := svc.HandleContentUpsert(ctx, &models.ContentUpsertEvent{Content: models.ContentDocument{CtntNo: 0, Title: "x"}})
	assert.ErrorIs(t, err, ErrInvalidContentID)

	err = svc.HandleContentUpsert(ctx, &models.ContentUpsertEvent{Content: models.ContentDocument{CtntNo: 2, Title: "  "}})
	assert.ErrorIs(t, err, ErrEmptyTitle)

	repo.indexErr = errors.New("es down")
	err = svc.HandleContentUpsert(ctx, &models.ContentUpsertEvent{Content: models.ContentDocument{CtntNo: 3, Title: "x"}})
	assert.ErrorContains(t, err, "es down")
	assert.False(t, isPermanentError(err))
}

func TestEventService_HandleContentDelete(t *testing.T) {
	repo := &fakeContentRepo{}
	svc := NewEventService(repo, newTestLogger(t))
	ctx := context.Background()

	require.NoError(t, svc.HandleContentDelete(ctx, &models.ContentDeleteEvent{Operation: "delete", CtntNo: 4}))
	assert.Equal(t, []int64{4}, repo.deleted)

	assert.ErrorIs(t, svc.HandleContentDelete(ctx, &models.ContentDeleteEvent{Operation: "purge", CtntNo: 4}), ErrInvalidEventFormat)
	assert.ErrorIs(t, svc.HandleContentDelete(ctx, &models.ContentDeleteEvent{CtntNo: -1}), ErrInvalidContentID)
}
