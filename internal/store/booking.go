package store

import (
	"context"
	"sync"

	"slotify/internal/domain"
	"slotify/internal/events"
	"slotify/internal/models"

	"github.com/rs/zerolog"
)

// BookingSlice holds one scope of bookings at a time: either the current
// user's bookings or a vendor's bookings, whichever was fetched last. The
// two fetches write the same field and are never mixed by the UI.
type BookingSlice struct {
	mu sync.Mutex
	slice

	backend domain.Backend
	bus     domain.EventPublisher
	logger  *zerolog.Logger

	bookings []models.Booking
}

func NewBookingSlice(backend domain.Backend, bus domain.EventPublisher, logger *zerolog.Logger) *BookingSlice {
	return &BookingSlice{backend: backend, bus: bus, logger: logger}
}

func (s *BookingSlice) FetchAsUser(ctx context.Context) error {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	bookings, err := s.backend.UserBookings(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.reject(err)
		return err
	}
	s.fulfill()
	s.bookings = bookings
	return nil
}

func (s *BookingSlice) FetchAsVendor(ctx context.Context, vendorID string) error {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	bookings, err := s.backend.VendorBookings(ctx, vendorID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.reject(err)
		return err
	}
	s.fulfill()
	s.bookings = bookings
	return nil
}

// Create posts a new booking and appends the created record to the cache.
func (s *BookingSlice) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	created, err := s.backend.CreateBooking(ctx, booking)

	s.mu.Lock()
	if err != nil {
		s.reject(err)
		s.mu.Unlock()
		return nil, err
	}
	s.fulfill()
	s.bookings = append(s.bookings, *created)
	s.mu.Unlock()

	s.publish(events.EventBookingCreated, created)
	return created, nil
}

// ChangeStatus patches the booking and replaces the matching cached record
// in place. A fulfilled response whose id is not in the current cache is a
// no-op: the slice must not insert records from the other scope.
func (s *BookingSlice) ChangeStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	updated, err := s.backend.UpdateBookingStatus(ctx, id, status)

	s.mu.Lock()
	if err != nil {
		s.reject(err)
		s.mu.Unlock()
		return nil, err
	}
	s.fulfill()
	for i := range s.bookings {
		if s.bookings[i].ID == updated.ID {
			s.bookings[i] = *updated
			break
		}
	}
	s.mu.Unlock()

	s.publish(events.EventBookingStatusChanged, updated)
	return updated, nil
}

func (s *BookingSlice) publish(eventType string, booking *models.Booking) {
	if s.bus == nil {
		return
	}
	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		VendorID:  booking.Vendor.ID(),
		UserName:  booking.UserName,
		UserEmail: booking.UserEmail,
		EventDate: booking.EventDate,
		Status:    booking.Status,
		CreatedAt: booking.CreatedAt,
	}
	if err := s.bus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Str("booking_id", booking.ID).Msg("publish event error")
	}
}

func (s *BookingSlice) Bookings() []models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Booking(nil), s.bookings...)
}

func (s *BookingSlice) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *BookingSlice) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
