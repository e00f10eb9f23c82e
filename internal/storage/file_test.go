package storage

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/UK-Mindset/mind-set/internal"
)

func newTestFileStorage(t *testing.T, dir string) *FileStorage {
	usersFile := dir + "/users.json"
	moodsFile := dir + "/moods.json"
	if _, err := os.Stat(usersFile); os.IsNotExist(err) {
		users := `[{"id":1,"token":"MOCK-TOKEN","name":"Test User"}]`
		require.NoError(t, os.WriteFile(usersFile, []byte(users), 0644))
	}
	logger := internal.NewZapLogger(zap.NewNop().Sugar())
	s, err := NewFileStorage(usersFile, moodsFile, logger)
	require.NoError(t, err)
	return s
}

func testMood(title string, date time.Time) *internal.Mood {
	return &internal.Mood{
		UserID:    1,
		Category:  internal.CategoryHappy,
		Situation: internal.SituationWork,
		Title:     title,
		Reason:    "because",
		Date:      date,
		CreatedAt: time.Now(),
	}
}

func TestFileStorage_AssignsIncrementalIDs(t *testing.T) {
	s := newTestFileStorage(t, t.TempDir())
	ctx := context.Background()

	m1 := testMood("first", time.Now())
	m2 := testMood("second", time.Now())
	require.NoError(t, s.SaveMood(ctx, m1))
	require.NoError(t, s.SaveMood(ctx, m2))

	assert.Equal(t, int64(1), m1.ID)
	assert.Equal(t, int64(2), m2.ID)
}

func TestFileStorage_PersistsAcrossReload(t *testing.T) {
	dir := t.TempDir()
	s := newTestFileStorage(t, dir)
	ctx := context.Background()

	m := testMood("kept", time.Now())
	require.NoError(t, s.SaveMood(ctx, m))
	require.NoError(t, s.Close())

	s2 := newTestFileStorage(t, dir)
	got, err := s2.FindMood(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Title)

	// ID counter continues past loaded data.
	m2 := testMood("next", time.Now())
	require.NoError(t, s2.SaveMood(ctx, m2))
	assert.Equal(t, m.ID+1, m2.ID)
}

func TestFileStorage_ListMoodsSortedByDateDescending(t *testing.T) {
	s := newTestFileStorage(t, t.TempDir())
	ctx := context.Background()

	now := time.Now()
	older := testMood("older", now.AddDate(0, 0, -2))
	newer := testMood("newer", now)
	require.NoError(t, s.SaveMood(ctx, older))
	require.NoError(t, s.SaveMood(ctx, newer))

	moods, err := s.ListMoods(ctx, 1)
	require.NoError(t, err)
	require.Len(t, moods, 2)
	assert.Equal(t, "newer", moods[0].Title)
	assert.Equal(t, "older", moods[1].Title)
}

func TestFileStorage_InTxRollsBackOnError(t *testing.T) {
	s := newTestFileStorage(t, t.TempDir())
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.InTx(ctx, func(tx Store) error {
		if err := tx.SaveMood(ctx, testMood("doomed", time.Now())); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	moods, err := s.ListMoods(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, moods)

	// The ID counter rolls back with the snapshot too.
	m := testMood("survivor", time.Now())
	require.NoError(t, s.SaveMood(ctx, m))
	assert.Equal(t, int64(1), m.ID)
}

func TestFileStorage_UpdateOnlyTouchesTitleAndReason(t *testing.T) {
	s := newTestFileStorage(t, t.TempDir())
	ctx := context.Background()

	m := testMood("before", time.Now())
	require.NoError(t, s.SaveMood(ctx, m))

	changed := *m
	changed.Title = "after"
	changed.Reason = "new reason"
	changed.Category = internal.CategorySad // must be ignored
	require.NoError(t, s.UpdateMood(ctx, &changed))

	got, err := s.FindMood(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.Equal(t, "new reason", got.Reason)
	assert.Equal(t, internal.CategoryHappy, got.Category)
}

func TestFileStorage_DeleteRemovesFromIndex(t *testing.T) {
	s := newTestFileStorage(t, t.TempDir())
	ctx := context.Background()

	m := testMood("gone", time.Now())
	require.NoError(t, s.SaveMood(ctx, m))
	require.NoError(t, s.DeleteMood(ctx, m.ID))

	_, err := s.FindMood(ctx, m.ID)
	assert.ErrorIs(t, err, internal.ErrNotFound)

	moods, err := s.ListMoods(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, moods)

	err = s.DeleteMood(ctx, m.ID)
	assert.ErrorIs(t, err, internal.ErrNotFound)
}

func TestFileStorage_FindUser(t *testing.T) {
	s := newTestFileStorage(t, t.TempDir())
	ctx := context.Background()

	u, err := s.FindUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Test User", u.Name)

	_, err = s.FindUser(ctx, 99)
	assert.ErrorIs(t, err, internal.ErrNotFound)

	byToken, err := s.FindUserByToken(ctx, "MOCK-TOKEN")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byToken.ID)
}
