// Package store holds the process-wide notification state.
//
// The Store is the single source of truth reconciling three producers:
// paginated REST fetches, periodic polling, and push-delivered messages.
// Notification ID is the only deduplication key across all of them; every
// insertion path checks membership before adding an entry. UI layers
// subscribe to the store and dispatch intents back into it; they never
// talk to the REST client directly.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/biponi/notify/internal/api"
	"github.com/biponi/notify/internal/domain"
	"github.com/biponi/notify/internal/logging"
)

// Client is the slice of the REST API the store consumes.
type Client interface {
	List(ctx context.Context, page, limit int, unreadOnly bool) (*api.ListResult, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id string) error
}

// Listener receives a state snapshot after every mutation.
type Listener func(Snapshot)

type subscriber struct {
	id int
	fn Listener
}

// Store is the subscribable notification state container.
// All mutations are serialized behind one mutex; listeners are invoked
// synchronously after the state change, outside the lock, so a listener
// may safely dispatch further store operations.
type Store struct {
	client   Client
	logger   logging.Logger
	pageSize int

	mu            sync.Mutex
	notifications []domain.Notification
	unreadCount   int
	loading       bool
	page          int
	hasMore       bool
	pushToken     string
	lastErr       error

	subMu  sync.Mutex
	subs   []subscriber
	nextID int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the structured logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithPageSize sets the page size used for fetches.
func WithPageSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// New creates a Store backed by the given client.
func New(client Client, opts ...Option) *Store {
	s := &Store{
		client:   client,
		logger:   logging.Noop(),
		pageSize: 20,
		page:     0,
		hasMore:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers a listener invoked synchronously after every state
// mutation. The returned function unsubscribes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i := range s.subs {
			if s.subs[i].id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// notify delivers the current snapshot to all subscribers.
// Must be called without holding s.mu.
func (s *Store) notify() {
	snap := s.Snapshot()
	s.subMu.Lock()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()
	for _, sub := range subs {
		sub.fn(snap)
	}
}

// Snapshot returns an immutable copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	notifications := make([]domain.Notification, len(s.notifications))
	copy(notifications, s.notifications)
	return Snapshot{
		Notifications: notifications,
		UnreadCount:   s.unreadCount,
		Loading:       s.loading,
		Page:          s.page,
		HasMore:       s.hasMore,
		PushToken:     s.pushToken,
		Err:           s.lastErr,
	}
}

// indexOfLocked returns the position of id in the collection, or -1.
func (s *Store) indexOfLocked(id string) int {
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			return i
		}
	}
	return -1
}

// recountLocked recomputes the unread count from the held collection.
// The count is derived state everywhere except the two explicit set
// paths: FetchUnreadCount (server truth) and the optimistic mark-read
// window.
func (s *Store) recountLocked() {
	s.unreadCount = domain.CountUnread(s.notifications)
}

// FetchPage fetches one page from the server. With append=true the
// results are concatenated after the existing entries, deduplicated by
// ID with existing entries kept ahead; otherwise the collection is
// replaced. Failures log and leave the previous state untouched.
func (s *Store) FetchPage(ctx context.Context, page int, append bool) error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.mu.Unlock()
	s.notify()

	result, err := s.client.List(ctx, page, s.pageSize, false)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		s.mu.Unlock()
		s.logger.Error("fetch page failed", "page", page, "error", err)
		s.notify()
		return err
	}
	s.lastErr = nil
	if append {
		s.appendDedupedLocked(result.Notifications)
	} else {
		s.notifications = make([]domain.Notification, len(result.Notifications))
		copy(s.notifications, result.Notifications)
		domain.SortNewestFirst(s.notifications)
	}
	s.page = page
	s.hasMore = page < result.TotalPages
	s.recountLocked()
	s.mu.Unlock()

	s.logger.Debug("fetched page", "page", page, "count", len(result.Notifications), "has_more", page < result.TotalPages)
	s.notify()
	return nil
}

// appendDedupedLocked concatenates items after the existing entries,
// skipping IDs already present.
func (s *Store) appendDedupedLocked(items []domain.Notification) {
	seen := make(map[string]bool, len(s.notifications))
	for i := range s.notifications {
		seen[s.notifications[i].ID] = true
	}
	for i := range items {
		if seen[items[i].ID] {
			continue
		}
		seen[items[i].ID] = true
		s.notifications = append(s.notifications, items[i])
	}
}

// LoadMore fetches the next page when one is available. It is a no-op
// while a fetch is in flight or when the last page has been reached.
func (s *Store) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	if s.loading || !s.hasMore {
		s.mu.Unlock()
		return nil
	}
	next := s.page + 1
	s.mu.Unlock()
	return s.FetchPage(ctx, next, true)
}

// FetchUnreadCount sets the unread count from server truth. This is the
// single path where the count is set rather than derived.
func (s *Store) FetchUnreadCount(ctx context.Context) error {
	count, err := s.client.UnreadCount(ctx)
	if err != nil {
		s.logger.Error("fetch unread count failed", "error", err)
		return err
	}
	s.mu.Lock()
	s.unreadCount = count
	s.mu.Unlock()
	s.notify()
	return nil
}

// MarkAsRead optimistically marks a notification read, notifies
// subscribers, then confirms with the server. On REST failure the
// optimistic change is reverted and the error returned.
func (s *Store) MarkAsRead(ctx context.Context, id string) error {
	now := time.Now()
	s.mu.Lock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	wasUnread := s.notifications[idx].Unread
	if wasUnread {
		s.notifications[idx].MarkRead(now)
		if s.unreadCount > 0 {
			s.unreadCount--
		}
	}
	s.mu.Unlock()
	if wasUnread {
		s.notify()
	}

	if err := s.client.MarkRead(ctx, id); err != nil {
		s.logger.Error("mark read failed, reverting", "id", id, "error", err)
		if wasUnread {
			s.mu.Lock()
			if idx := s.indexOfLocked(id); idx >= 0 {
				s.notifications[idx].MarkUnread()
				s.unreadCount++
			}
			s.mu.Unlock()
			s.notify()
		}
		return err
	}
	return nil
}

// MarkAllAsRead optimistically marks every notification read and zeroes
// the unread count, then confirms with the server. Idempotent. On REST
// failure the previous read flags are restored.
func (s *Store) MarkAllAsRead(ctx context.Context) error {
	now := time.Now()
	s.mu.Lock()
	prevUnread := make([]string, 0)
	for i := range s.notifications {
		if s.notifications[i].Unread {
			prevUnread = append(prevUnread, s.notifications[i].ID)
			s.notifications[i].MarkRead(now)
		}
	}
	prevCount := s.unreadCount
	s.unreadCount = 0
	s.mu.Unlock()
	s.notify()

	if err := s.client.MarkAllRead(ctx); err != nil {
		s.logger.Error("mark all read failed, reverting", "error", err)
		s.mu.Lock()
		for _, id := range prevUnread {
			if idx := s.indexOfLocked(id); idx >= 0 {
				s.notifications[idx].MarkUnread()
			}
		}
		s.unreadCount = prevCount
		s.mu.Unlock()
		s.notify()
		return err
	}
	return nil
}

// Delete optimistically removes a notification, then confirms with the
// server. On REST failure the entry is reinserted at its sorted position.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	removed := s.notifications[idx]
	s.notifications = append(s.notifications[:idx], s.notifications[idx+1:]...)
	s.recountLocked()
	s.mu.Unlock()
	s.notify()

	if err := s.client.Delete(ctx, id); err != nil {
		s.logger.Error("delete failed, restoring", "id", id, "error", err)
		s.mu.Lock()
		if s.indexOfLocked(id) < 0 {
			s.notifications = append(s.notifications, removed)
			domain.SortNewestFirst(s.notifications)
		}
		s.recountLocked()
		s.mu.Unlock()
		s.notify()
		return err
	}
	return nil
}

// AddPushed inserts a push-delivered notification. Duplicates (a push
// racing with, or repeating, a fetched entry) are dropped; a new entry
// is prepended newest-first and bumps the unread count by exactly one
// when unread.
func (s *Store) AddPushed(n domain.Notification) {
	s.mu.Lock()
	if n.ID == "" || s.indexOfLocked(n.ID) >= 0 {
		s.mu.Unlock()
		return
	}
	s.notifications = append([]domain.Notification{n}, s.notifications...)
	s.recountLocked()
	s.mu.Unlock()
	s.logger.Debug("push notification added", "id", n.ID, "topic", n.Topic)
	s.notify()
}

// Seed populates an empty store from the local cache so the UI has
// last-known state while the first fetch is in flight. A later fetch
// with append=false replaces the seed entirely.
func (s *Store) Seed(notifications []domain.Notification) {
	if len(notifications) == 0 {
		return
	}
	s.mu.Lock()
	if len(s.notifications) > 0 {
		s.mu.Unlock()
		return
	}
	s.notifications = make([]domain.Notification, len(notifications))
	copy(s.notifications, notifications)
	domain.SortNewestFirst(s.notifications)
	s.recountLocked()
	s.mu.Unlock()
	s.notify()
}

// SetPushToken records the last obtained transport registration token.
func (s *Store) SetPushToken(token string) {
	s.mu.Lock()
	s.pushToken = token
	s.mu.Unlock()
	s.notify()
}

// PollOnce performs one polling pass: it refreshes the unread count from
// server truth and merges the newest page into the collection without
// disturbing pagination. Existing entries are updated in place (read
// state can change server-side); unseen entries are inserted in order.
func (s *Store) PollOnce(ctx context.Context) error {
	if err := s.FetchUnreadCount(ctx); err != nil {
		return err
	}

	result, err := s.client.List(ctx, 1, s.pageSize, false)
	if err != nil {
		s.logger.Error("poll fetch failed", "error", err)
		return err
	}

	s.mu.Lock()
	changed := false
	for i := range result.Notifications {
		incoming := result.Notifications[i]
		if idx := s.indexOfLocked(incoming.ID); idx >= 0 {
			if s.notifications[idx].Unread != incoming.Unread {
				s.notifications[idx].Unread = incoming.Unread
				s.notifications[idx].ReadAt = incoming.ReadAt
				changed = true
			}
			continue
		}
		s.notifications = append(s.notifications, incoming)
		changed = true
	}
	if changed {
		domain.SortNewestFirst(s.notifications)
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
	return nil
}

// StartPolling runs PollOnce at the given interval until ctx is
// cancelled. The store itself lives for the process; only this loop is
// torn down on cancellation.
func (s *Store) StartPolling(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.PollOnce(ctx); err != nil && ctx.Err() == nil {
				s.logger.Warn("poll iteration failed", "error", err)
			}
		}
	}
}
