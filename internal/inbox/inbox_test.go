package inbox

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"energy_tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store that counts calls.
type memStore struct {
	byID    map[string]models.Notification
	nextID  int
	addErr  error
	listErr error

	adds, lists, marks, deletes int
}

func newMemStore() *memStore {
	return &memStore{byID: map[string]models.Notification{}}
}

func (m *memStore) AddNotification(_ context.Context, accountID int, n models.Notification) (string, error) {
	m.adds++
	if m.addErr != nil {
		return "", m.addErr
	}
	m.nextID++
	n.ID = fmt.Sprintf("n%d", m.nextID)
	n.AccountID = accountID
	m.byID[n.ID] = n
	return n.ID, nil
}

func (m *memStore) GetNotifications(_ context.Context, accountID int) ([]models.Notification, error) {
	m.lists++
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []models.Notification
	for _, n := range m.byID {
		if n.AccountID == accountID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memStore) MarkNotificationAsRead(_ context.Context, id string) error {
	m.marks++
	n, ok := m.byID[id]
	if !ok {
		return errors.New("missing")
	}
	n.Read = true
	m.byID[id] = n
	return nil
}

func (m *memStore) DeleteNotification(_ context.Context, id string) error {
	m.deletes++
	delete(m.byID, id)
	return nil
}

func newTestInbox(t *testing.T, store Store) *Inbox {
	t.Helper()
	b, err := New(store, 8, nil)
	require.NoError(t, err)
	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	b.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	return b
}

func TestInbox_CreateSetsUnreadAndTimestamp(t *testing.T) {
	store := newMemStore()
	b := newTestInbox(t, store)

	n, err := b.Create(context.Background(), 1, models.NotificationWarning, "Energy Limit Exceeded!", "over")
	require.NoError(t, err)

	assert.Equal(t, "n1", n.ID)
	assert.False(t, n.Read)
	assert.False(t, n.Timestamp.IsZero())
	assert.Equal(t, models.NotificationWarning, store.byID["n1"].Type)
	assert.Equal(t, 1, store.lists, "create refreshes the cached list")

	// served from cache
	_, err = b.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, store.lists)
}

func TestInbox_CreateFailureIsReturned(t *testing.T) {
	store := newMemStore()
	store.addErr = errors.New("db locked")
	b := newTestInbox(t, store)

	_, err := b.Create(context.Background(), 1, models.NotificationInfo, "t", "m")
	require.Error(t, err)
	assert.Empty(t, store.byID)
}

func TestInbox_CreateRequiresTitle(t *testing.T) {
	b := newTestInbox(t, newMemStore())
	_, err := b.Create(context.Background(), 1, models.NotificationInfo, "  ", "m")
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestInbox_ListNewestFirstAndSummary(t *testing.T) {
	store := newMemStore()
	b := newTestInbox(t, store)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := b.Create(ctx, 1, models.NotificationInfo, title, "")
		require.NoError(t, err)
	}
	_, err := b.Create(ctx, 2, models.NotificationInfo, "other account", "")
	require.NoError(t, err)

	list, err := b.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Title)
	assert.Equal(t, "first", list[2].Title)

	require.NoError(t, b.MarkRead(ctx, 1, list[0].ID))

	sum, err := b.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.UnreadCount)
	assert.True(t, sum.ShowBadge)
}

func TestInbox_MarkAllReadHidesBadge(t *testing.T) {
	store := newMemStore()
	b := newTestInbox(t, store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := b.Create(ctx, 1, models.NotificationInfo, "n", "")
		require.NoError(t, err)
	}
	require.NoError(t, b.MarkRead(ctx, 1, "n2"))
	store.marks = 0

	marked, err := b.MarkAllRead(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, marked)
	assert.Equal(t, 2, store.marks, "already-read entries are not written again")

	sum, err := b.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, sum.UnreadCount)
	assert.False(t, sum.ShowBadge)
}

func TestInbox_MarkReadAndDeleteRejectForeignIDs(t *testing.T) {
	store := newMemStore()
	b := newTestInbox(t, store)
	ctx := context.Background()

	n, err := b.Create(ctx, 2, models.NotificationInfo, "theirs", "")
	require.NoError(t, err)

	assert.ErrorIs(t, b.MarkRead(ctx, 1, n.ID), ErrNotificationNotFound)
	assert.ErrorIs(t, b.Delete(ctx, 1, n.ID), ErrNotificationNotFound)
	assert.Zero(t, store.deletes)
}

func TestInbox_Delete(t *testing.T) {
	store := newMemStore()
	b := newTestInbox(t, store)
	ctx := context.Background()

	n, err := b.Create(ctx, 1, models.NotificationInfo, "x", "")
	require.NoError(t, err)
	require.NoError(t, b.Delete(ctx, 1, n.ID))

	list, err := b.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestInbox_ClearAll(t *testing.T) {
	ctx := context.Background()

	t.Run("empty inbox is a no-op", func(t *testing.T) {
		store := newMemStore()
		b := newTestInbox(t, store)

		res, err := b.ClearAll(ctx, 1, true)
		require.NoError(t, err)
		assert.True(t, res.Empty)
		assert.Zero(t, store.deletes)

		// also without confirmation
		res, err = b.ClearAll(ctx, 1, false)
		require.NoError(t, err)
		assert.True(t, res.Empty)
	})

	t.Run("requires confirmation", func(t *testing.T) {
		store := newMemStore()
		b := newTestInbox(t, store)
		_, err := b.Create(ctx, 1, models.NotificationInfo, "x", "")
		require.NoError(t, err)

		_, err = b.ClearAll(ctx, 1, false)
		assert.ErrorIs(t, err, ErrNotConfirmed)
		assert.Zero(t, store.deletes)
	})

	t.Run("deletes everything when confirmed", func(t *testing.T) {
		store := newMemStore()
		b := newTestInbox(t, store)
		for i := 0; i < 4; i++ {
			_, err := b.Create(ctx, 1, models.NotificationInfo, "x", "")
			require.NoError(t, err)
		}

		res, err := b.ClearAll(ctx, 1, true)
		require.NoError(t, err)
		assert.Equal(t, 4, res.Deleted)
		assert.False(t, res.Empty)

		n, err := b.UnreadCount(ctx, 1)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestInbox_ListErrorNotCached(t *testing.T) {
	store := newMemStore()
	store.listErr = errors.New("unavailable")
	b := newTestInbox(t, store)

	_, err := b.List(context.Background(), 1)
	require.Error(t, err)

	store.listErr = nil
	list, err := b.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, list)
}
