package store

import (
	"context"
	"sync"

	"slotify/internal/domain"
	"slotify/internal/models"

	"github.com/rs/zerolog"
)

// VendorSlice caches the vendor listing and the currently selected vendor.
// The two fields are independent: fetching a single vendor never touches the
// list and vice versa.
type VendorSlice struct {
	mu sync.Mutex
	slice

	backend domain.Backend
	logger  *zerolog.Logger

	vendors  []models.Vendor
	selected *models.Vendor
}

func NewVendorSlice(backend domain.Backend, logger *zerolog.Logger) *VendorSlice {
	return &VendorSlice{backend: backend, logger: logger}
}

// FetchByCategory loads vendors, optionally filtered; an empty categoryID
// fetches all.
func (s *VendorSlice) FetchByCategory(ctx context.Context, categoryID string) error {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	vendors, err := s.backend.Vendors(ctx, categoryID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.reject(err)
		return err
	}
	s.fulfill()
	s.vendors = vendors
	return nil
}

func (s *VendorSlice) FetchByID(ctx context.Context, id string) error {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	vendor, err := s.backend.Vendor(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.reject(err)
		return err
	}
	s.fulfill()
	s.selected = vendor
	return nil
}

// ClearSelected drops the selected record without touching the list.
func (s *VendorSlice) ClearSelected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

func (s *VendorSlice) Vendors() []models.Vendor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Vendor(nil), s.vendors...)
}

func (s *VendorSlice) Selected() *models.Vendor {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil
	}
	v := *s.selected
	return &v
}

func (s *VendorSlice) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *VendorSlice) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
