// Package inbox is the per-account notification inbox: create, list, read
// state and deletion over a storage port, with an LRU cache of recent lists.
package inbox

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"energy_tracker/internal/logger"
	"energy_tracker/internal/models"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 256

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotConfirmed         = errors.New("clearing all notifications requires confirmation")
	ErrEmptyTitle           = errors.New("notification title is required")
)

// Store is the persistence the inbox needs.
type Store interface {
	AddNotification(ctx context.Context, accountID int, n models.Notification) (string, error)
	GetNotifications(ctx context.Context, accountID int) ([]models.Notification, error)
	MarkNotificationAsRead(ctx context.Context, id string) error
	DeleteNotification(ctx context.Context, id string) error
}

// Summary is what the inbox badge and list render from.
type Summary struct {
	UnreadCount   int                   `json:"unread_count"`
	ShowBadge     bool                  `json:"show_badge"`
	Notifications []models.Notification `json:"notifications"`
}

// ClearResult reports what ClearAll did. Empty means there was nothing to
// clear and no deletion was attempted.
type ClearResult struct {
	Deleted int  `json:"deleted"`
	Empty   bool `json:"empty"`
}

type Inbox struct {
	store Store
	cache *lru.Cache[int, []models.Notification]
	log   *logger.Logger
	now   func() time.Time
}

// New builds an inbox. cacheSize <= 0 uses the default of 256 accounts.
func New(store Store, cacheSize int, log *logger.Logger) (*Inbox, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[int, []models.Notification](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create inbox cache: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Inbox{store: store, cache: cache, log: log, now: time.Now}, nil
}

// Create stores a new unread notification stamped with the current time and
// refreshes the account's cached list.
func (b *Inbox) Create(ctx context.Context, accountID int, typ models.NotificationType, title, message string) (models.Notification, error) {
	if strings.TrimSpace(title) == "" {
		return models.Notification{}, ErrEmptyTitle
	}
	if typ == "" {
		typ = models.NotificationInfo
	}
	n := models.Notification{
		AccountID: accountID,
		Type:      typ,
		Title:     title,
		Message:   message,
		Read:      false,
		Timestamp: b.now().UTC(),
	}
	id, err := b.store.AddNotification(ctx, accountID, n)
	if err != nil {
		return models.Notification{}, fmt.Errorf("add notification: %w", err)
	}
	n.ID = id

	if _, err := b.refresh(ctx, accountID); err != nil {
		b.log.Warnw("inbox_refresh_failed", "account_id", accountID, "err", err)
	}
	return n, nil
}

// List returns the account's notifications, newest first.
func (b *Inbox) List(ctx context.Context, accountID int) ([]models.Notification, error) {
	if cached, ok := b.cache.Get(accountID); ok {
		return sortedCopy(cached), nil
	}
	list, err := b.refresh(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return sortedCopy(list), nil
}

// UnreadCount counts notifications with read=false.
func (b *Inbox) UnreadCount(ctx context.Context, accountID int) (int, error) {
	list, err := b.List(ctx, accountID)
	if err != nil {
		return 0, err
	}
	return countUnread(list), nil
}

// Summary returns the sorted list with the unread badge state.
func (b *Inbox) Summary(ctx context.Context, accountID int) (Summary, error) {
	list, err := b.List(ctx, accountID)
	if err != nil {
		return Summary{}, err
	}
	unread := countUnread(list)
	return Summary{UnreadCount: unread, ShowBadge: unread > 0, Notifications: list}, nil
}

func (b *Inbox) MarkRead(ctx context.Context, accountID int, id string) error {
	if _, err := b.owned(ctx, accountID, id); err != nil {
		return err
	}
	if err := b.store.MarkNotificationAsRead(ctx, id); err != nil {
		return fmt.Errorf("mark notification %s read: %w", id, err)
	}
	b.cache.Remove(accountID)
	return nil
}

// MarkAllRead marks every unread notification and returns how many changed.
func (b *Inbox) MarkAllRead(ctx context.Context, accountID int) (int, error) {
	list, err := b.List(ctx, accountID)
	if err != nil {
		return 0, err
	}
	defer b.cache.Remove(accountID)

	marked := 0
	for _, n := range list {
		if n.Read {
			continue
		}
		if err := b.store.MarkNotificationAsRead(ctx, n.ID); err != nil {
			return marked, fmt.Errorf("mark notification %s read: %w", n.ID, err)
		}
		marked++
	}
	return marked, nil
}

func (b *Inbox) Delete(ctx context.Context, accountID int, id string) error {
	if _, err := b.owned(ctx, accountID, id); err != nil {
		return err
	}
	if err := b.store.DeleteNotification(ctx, id); err != nil {
		return fmt.Errorf("delete notification %s: %w", id, err)
	}
	b.cache.Remove(accountID)
	return nil
}

// ClearAll deletes every notification of the account. An empty inbox is a
// no-op; otherwise confirmed must be true.
func (b *Inbox) ClearAll(ctx context.Context, accountID int, confirmed bool) (ClearResult, error) {
	list, err := b.List(ctx, accountID)
	if err != nil {
		return ClearResult{}, err
	}
	if len(list) == 0 {
		return ClearResult{Empty: true}, nil
	}
	if !confirmed {
		return ClearResult{}, ErrNotConfirmed
	}
	defer b.cache.Remove(accountID)

	var res ClearResult
	for _, n := range list {
		if err := b.store.DeleteNotification(ctx, n.ID); err != nil {
			return res, fmt.Errorf("delete notification %s: %w", n.ID, err)
		}
		res.Deleted++
	}
	return res, nil
}

// Forget drops the cached list for an account, e.g. after it was deleted.
func (b *Inbox) Forget(accountID int) {
	b.cache.Remove(accountID)
}

func (b *Inbox) refresh(ctx context.Context, accountID int) ([]models.Notification, error) {
	list, err := b.store.GetNotifications(ctx, accountID)
	if err != nil {
		b.cache.Remove(accountID)
		return nil, fmt.Errorf("load notifications: %w", err)
	}
	b.cache.Add(accountID, list)
	return list, nil
}

func (b *Inbox) owned(ctx context.Context, accountID int, id string) (models.Notification, error) {
	list, err := b.List(ctx, accountID)
	if err != nil {
		return models.Notification{}, err
	}
	for _, n := range list {
		if n.ID == id {
			return n, nil
		}
	}
	return models.Notification{}, ErrNotificationNotFound
}

func sortedCopy(list []models.Notification) []models.Notification {
	out := make([]models.Notification, len(list))
	copy(out, list)
	slices.SortStableFunc(out, func(a, b models.Notification) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}

func countUnread(list []models.Notification) int {
	n := 0
	for _, x := range list {
		if !x.Read {
			n++
		}
	}
	return n
}
