package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/homebase/internal/repository"
)

func newTestMemoService(t *testing.T) (*MemoService, uint64, uint64) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewMemoService(repository.NewMemoRepository(db), repository.NewLikeRepository(db))
	return svc, createTestUser(t, db, "staff").ID, createTestUser(t, db, "guest").ID
}

func TestMemoService_CreateDefaultsToOngoing(t *testing.T) {
	svc, authorID, _ := newTestMemoService(t)

	memo, err := svc.Create(authorID, MemoInput{Title: "장보기", Content: "우유"})
	require.NoError(t, err)
	assert.True(t, memo.Status)

	finished, err := svc.Create(authorID, MemoInput{Title: "끝", Content: "x", Status: boolPtr(false)})
	require.NoError(t, err)

	stored, err := svc.Get(finished.ID)
	require.NoError(t, err)
	assert.False(t, stored.Status)
}

func TestMemoService_CreateValidation(t *testing.T) {
	svc, authorID, _ := newTestMemoService(t)

	_, err := svc.Create(authorID, MemoInput{Title: "", Content: " "})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "content")
}

func TestMemoService_UpdateKeepsStatusWhenOmitted(t *testing.T) {
	svc, authorID, otherID := newTestMemoService(t)
	memo, err := svc.Create(authorID, MemoInput{Title: "memo", Content: "x", Status: boolPtr(false)})
	require.NoError(t, err)

	due := time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC)
	assert.ErrorIs(t, svc.Update(otherID, memo, MemoInput{Title: "t", Content: "c"}), ErrPermissionDenied)
	require.NoError(t, svc.Update(authorID, memo, MemoInput{Title: "새 제목", Content: "c", DueDate: &due}))

	stored, err := svc.Get(memo.ID)
	require.NoError(t, err)
	assert.Equal(t, "새 제목", stored.Title)
	assert.False(t, stored.Status)
	require.NotNil(t, stored.DueDate)
}

func TestMemoService_ChangeStatusAndCounts(t *testing.T) {
	svc, authorID, otherID := newTestMemoService(t)
	for i := 0; i < 7; i++ {
		_, err := svc.Create(authorID, MemoInput{Title: "memo", Content: "x"})
		require.NoError(t, err)
	}
	memo, err := svc.Create(authorID, MemoInput{Title: "flip", Content: "x"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangeStatus(otherID, memo), ErrPermissionDenied)
	require.NoError(t, svc.ChangeStatus(authorID, memo))
	assert.False(t, memo.Status)

	page, err := svc.List(nil, 1)
	require.NoError(t, err)
	assert.Len(t, page.Memos, 6)
	assert.Equal(t, 2, page.Page.NumPages())
	assert.Equal(t, int64(7), page.OngoingCount)
	assert.Equal(t, int64(1), page.FinishedCount)

	page, err = svc.List(boolPtr(false), 1)
	require.NoError(t, err)
	require.Len(t, page.Memos, 1)
	assert.Equal(t, "flip", page.Memos[0].Title)
}

func TestMemoService_ToggleLike(t *testing.T) {
	svc, authorID, otherID := newTestMemoService(t)
	memo, err := svc.Create(authorID, MemoInput{Title: "memo", Content: "x"})
	require.NoError(t, err)

	liked, err := svc.ToggleLike(memo.ID, otherID)
	require.NoError(t, err)
	assert.True(t, liked)

	page, err := svc.List(nil, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.LikeCounts[memo.ID])

	liked, err = svc.ToggleLike(memo.ID, otherID)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestMemoService_Delete(t *testing.T) {
	svc, authorID, otherID := newTestMemoService(t)
	memo, err := svc.Create(authorID, MemoInput{Title: "memo", Content: "x"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(otherID, memo), ErrPermissionDenied)
	require.NoError(t, svc.Delete(authorID, memo))

	_, err = svc.Get(memo.ID)
	assert.ErrorIs(t, err, ErrMemoNotFound)
}
