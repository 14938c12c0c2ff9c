package service

import (
	"context"
	"edu_platform/internal/common"
	"edu_platform/internal/domain/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProgressEmpty(t *testing.T) {
	f := newFixture(t)
	svc := NewProgressService(f.store, f.store, f.store)

	p, err := svc.GetProgress(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.Zero(t, p.ID)
	assert.Zero(t, p.Progress)
	assert.Empty(t, p.CompletedItems)

	_, err = svc.GetProgress(context.Background(), 7, 999)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCompleteItem(t *testing.T) {
	f := newFixture(t)
	svc := NewProgressService(f.store, f.store, f.store)
	ctx := context.Background()

	p, err := svc.CompleteItem(ctx, 7, 1, f.items[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 25, p.Progress)
	assert.Equal(t, []int{f.items[1].ID}, p.CompletedItems)
	id := p.ID

	// Completing the same item twice changes nothing.
	p, err = svc.CompleteItem(ctx, 7, 1, f.items[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 25, p.Progress)
	assert.Len(t, p.CompletedItems, 1)
	assert.Equal(t, id, p.ID)

	p, err = svc.CompleteItem(ctx, 7, 1, f.items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 50, p.Progress)
	assert.Equal(t, []int{f.items[0].ID, f.items[1].ID}, p.CompletedItems)

	_, err = svc.CompleteItem(ctx, 7, 2, f.items[0].ID)
	assert.ErrorIs(t, err, common.ErrNotFound, "item belongs to another course")
	_, err = svc.CompleteItem(ctx, 7, 999, f.items[0].ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRecomputeCountsQuizResults(t *testing.T) {
	f := newFixture(t)
	svc := NewProgressService(f.store, f.store, f.store)
	ctx := context.Background()

	for _, item := range f.items {
		_, err := svc.CompleteItem(ctx, 7, 1, item.ID)
		require.NoError(t, err)
	}
	p, err := svc.GetProgress(ctx, 7, 1)
	require.NoError(t, err)
	assert.Equal(t, 75, p.Progress)

	require.NoError(t, f.store.SaveQuizResult(ctx, &model.QuizResult{UserID: 7, QuizID: f.quiz.ID, Score: 10}))
	p, err = svc.Recompute(ctx, 7, 1)
	require.NoError(t, err)
	assert.Equal(t, 100, p.Progress)

	// Another user's result does not count.
	other, err := svc.Recompute(ctx, 8, 1)
	require.NoError(t, err)
	assert.Zero(t, other.Progress)
}

func TestRecomputeCourseWithoutUnits(t *testing.T) {
	f := newFixture(t)
	svc := NewProgressService(f.store, f.store, f.store)

	p, err := svc.Recompute(context.Background(), 7, 2)
	require.NoError(t, err)
	assert.Zero(t, p.Progress)
	assert.NotZero(t, p.ID)
}
