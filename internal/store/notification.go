package store

import (
	"context"
	"sync"

	"slotify/internal/domain"
	"slotify/internal/models"

	"github.com/rs/zerolog"
)

// NotificationSlice caches the current user's notifications. Invariant: the
// unread count always equals the number of cached items with read=false;
// every mutation below preserves it.
type NotificationSlice struct {
	mu sync.Mutex
	slice

	backend domain.Backend
	logger  *zerolog.Logger

	items       []models.Notification
	unreadCount int
}

func NewNotificationSlice(backend domain.Backend, logger *zerolog.Logger) *NotificationSlice {
	return &NotificationSlice{backend: backend, logger: logger}
}

// Fetch replaces items and unread count atomically from one backend response.
func (s *NotificationSlice) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	feed, err := s.backend.Notifications(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.reject(err)
		return err
	}
	s.fulfill()
	s.items = feed.Notifications
	s.unreadCount = feed.UnreadCount
	return nil
}

// MarkRead flips one notification after the backend confirms. The unread
// count drops only when the item was previously unread, so repeated marks
// can never push it negative.
func (s *NotificationSlice) MarkRead(ctx context.Context, id string) error {
	updated, err := s.backend.MarkNotificationRead(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err.Error()
		return err
	}

	for i := range s.items {
		if s.items[i].ID == updated.ID {
			if !s.items[i].Read {
				s.unreadCount = max(0, s.unreadCount-1)
			}
			s.items[i].Read = true
			break
		}
	}
	return nil
}

// MarkAllRead flips every cached item and zeroes the count.
func (s *NotificationSlice) MarkAllRead(ctx context.Context) error {
	err := s.backend.MarkAllNotificationsRead(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err.Error()
		return err
	}

	for i := range s.items {
		s.items[i].Read = true
	}
	s.unreadCount = 0
	return nil
}

// Delete removes the item; the count drops only when it was unread.
func (s *NotificationSlice) Delete(ctx context.Context, id string) error {
	err := s.backend.DeleteNotification(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err.Error()
		return err
	}

	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID == id {
			if !item.Read {
				s.unreadCount = max(0, s.unreadCount-1)
			}
			continue
		}
		kept = append(kept, item)
	}
	s.items = kept
	return nil
}

// Push prepends a server-pushed notification and bumps the count. It is the
// synchronous entry point reserved for real-time delivery.
func (s *NotificationSlice) Push(n models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]models.Notification{n}, s.items...)
	s.unreadCount++
}

func (s *NotificationSlice) Items() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Notification(nil), s.items...)
}

func (s *NotificationSlice) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unreadCount
}

func (s *NotificationSlice) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *NotificationSlice) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
