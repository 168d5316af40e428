// Package store holds the client-side read model: five independent slices,
// each caching one entity type plus a loading flag and an error value.
// Async operations follow a fixed pending/fulfilled/rejected discipline:
// pending sets loading and clears the error, fulfilled replaces or patches
// the cache, rejected records the error message and leaves the prior cache
// untouched (stale but present). Responses are applied in settlement order;
// when two fetches race, the last one to settle wins.
package store

import (
	"encoding/json"

	"slotify/internal/domain"
	"slotify/internal/events"
	"slotify/internal/models"

	"github.com/rs/zerolog"
)

// Store composes the slices into one process-wide read model. It is created
// at process start and passed explicitly; there are no package-level
// singletons.
type Store struct {
	Auth          *AuthSlice
	Categories    *CategorySlice
	Vendors       *VendorSlice
	Bookings      *BookingSlice
	Notifications *NotificationSlice
}

func New(backend domain.Backend, profiles domain.ProfileStore, bus *events.EventBus, logger *zerolog.Logger) *Store {
	s := &Store{
		Auth:          NewAuthSlice(backend, profiles, logger),
		Categories:    NewCategorySlice(backend, logger),
		Vendors:       NewVendorSlice(backend, logger),
		Bookings:      NewBookingSlice(backend, bus, logger),
		Notifications: NewNotificationSlice(backend, logger),
	}

	if bus != nil {
		// Reserved real-time path: a pushed notification lands in the slice
		// without a fetch round-trip.
		bus.Subscribe(events.EventNotificationReceived, func(event *events.Event) error {
			var payload events.NotificationEventPayload
			if err := json.Unmarshal(event.Payload, &payload); err != nil {
				return err
			}
			s.Notifications.Push(models.Notification{
				ID:        payload.ID,
				Message:   payload.Message,
				CreatedAt: payload.CreatedAt,
			})
			return nil
		})
	}

	return s
}

// slice carries the loading/error pair shared by every cache.
type slice struct {
	loading bool
	err     string
}

func (s *slice) begin() {
	s.loading = true
	s.err = ""
}

func (s *slice) reject(err error) {
	s.loading = false
	s.err = err.Error()
}

func (s *slice) fulfill() {
	s.loading = false
}
