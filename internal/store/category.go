package store

import (
	"context"
	"sync"

	"slotify/internal/domain"
	"slotify/internal/models"

	"github.com/rs/zerolog"
)

// demoCategories is the fixed fallback set shown when the backend returns an
// empty category list.
var demoCategories = []models.Category{
	{ID: "507f1f77bcf86cd799439011", Name: "Photography", Image: "/assets/categories/photography.png", Color: "bg-blue-50"},
	{ID: "507f1f77bcf86cd799439012", Name: "Catering", Image: "/assets/categories/catering.png", Color: "bg-red-50"},
	{ID: "507f1f77bcf86cd799439013", Name: "Venue", Image: "/assets/categories/venue.png", Color: "bg-purple-50"},
	{ID: "507f1f77bcf86cd799439014", Name: "Makeup", Image: "/assets/categories/makeup.png", Color: "bg-pink-50"},
}

// CategorySlice caches the read-only category collection.
type CategorySlice struct {
	mu sync.Mutex
	slice

	backend domain.Backend
	logger  *zerolog.Logger

	categories []models.Category
}

func NewCategorySlice(backend domain.Backend, logger *zerolog.Logger) *CategorySlice {
	return &CategorySlice{backend: backend, logger: logger}
}

func (s *CategorySlice) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	categories, err := s.backend.Categories(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.reject(err)
		return err
	}
	s.fulfill()
	s.categories = categories
	return nil
}

func (s *CategorySlice) Categories() []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Category(nil), s.categories...)
}

// Display returns the categories to render and whether the UI is in demo
// mode: an empty cache falls back to the fixed demo set.
func (s *CategorySlice) Display() ([]models.Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.categories) == 0 {
		return append([]models.Category(nil), demoCategories...), true
	}
	return append([]models.Category(nil), s.categories...), false
}

func (s *CategorySlice) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *CategorySlice) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
