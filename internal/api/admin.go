package api

import (
	"context"
	"net/http"
	"net/url"

	"slotify/internal/models"

	"github.com/rs/zerolog"
)

// AdminClient talks to the /admin namespace. Its base URL may point at a
// different deployment than the public client; the override is read once
// from config at load time.
type AdminClient struct {
	c *Client
}

func NewAdminClient(baseURL string, tokens TokenSource, logger *zerolog.Logger) *AdminClient {
	return &AdminClient{c: NewClient(baseURL, tokens, logger)}
}

func (a *AdminClient) Stats(ctx context.Context) (*models.AdminStats, error) {
	var stats models.AdminStats
	if err := a.c.doJSON(ctx, http.MethodGet, "/admin/stats", nil, &stats, "admin_stats", "Failed to fetch stats"); err != nil {
		return nil, err
	}
	return &stats, nil
}

/* EVENTS */

func (a *AdminClient) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := a.c.doJSON(ctx, http.MethodGet, "/admin/events", nil, &events, "admin_event_list", "Failed to fetch events"); err != nil {
		return nil, err
	}
	return events, nil
}

func (a *AdminClient) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	var created models.Event
	if err := a.c.doJSON(ctx, http.MethodPost, "/admin/events", event, &created, "admin_event_create", "Failed to save event"); err != nil {
		return nil, err
	}
	return &created, nil
}

func (a *AdminClient) UpdateEvent(ctx context.Context, id string, event *models.Event) (*models.Event, error) {
	var updated models.Event
	path := "/admin/events/" + url.PathEscape(id)
	if err := a.c.doJSON(ctx, http.MethodPut, path, event, &updated, "admin_event_update", "Failed to save event"); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (a *AdminClient) DeleteEvent(ctx context.Context, id string) error {
	path := "/admin/events/" + url.PathEscape(id)
	return a.c.doJSON(ctx, http.MethodDelete, path, nil, nil, "admin_event_delete", "Failed to delete event")
}

/* VENDORS */

func (a *AdminClient) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	var vendors []models.Vendor
	if err := a.c.doJSON(ctx, http.MethodGet, "/admin/vendors", nil, &vendors, "admin_vendor_list", "Failed to fetch vendors"); err != nil {
		return nil, err
	}
	return vendors, nil
}

func (a *AdminClient) CreateVendor(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error) {
	var created models.Vendor
	if err := a.c.doJSON(ctx, http.MethodPost, "/admin/vendors", vendor, &created, "admin_vendor_create", "Failed to save vendor"); err != nil {
		return nil, err
	}
	return &created, nil
}

func (a *AdminClient) UpdateVendor(ctx context.Context, id string, vendor *models.Vendor) (*models.Vendor, error) {
	var updated models.Vendor
	path := "/admin/vendors/" + url.PathEscape(id)
	if err := a.c.doJSON(ctx, http.MethodPut, path, vendor, &updated, "admin_vendor_update", "Failed to save vendor"); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (a *AdminClient) DeleteVendor(ctx context.Context, id string) error {
	path := "/admin/vendors/" + url.PathEscape(id)
	return a.c.doJSON(ctx, http.MethodDelete, path, nil, nil, "admin_vendor_delete", "Failed to delete vendor")
}

/* CATEGORIES */

func (a *AdminClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := a.c.doJSON(ctx, http.MethodGet, "/admin/categories", nil, &categories, "admin_category_list", "Failed to fetch categories"); err != nil {
		return nil, err
	}
	return categories, nil
}

func (a *AdminClient) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	var created models.Category
	if err := a.c.doJSON(ctx, http.MethodPost, "/admin/categories", category, &created, "admin_category_create", "Failed to save category"); err != nil {
		return nil, err
	}
	return &created, nil
}

func (a *AdminClient) UpdateCategory(ctx context.Context, id string, category *models.Category) (*models.Category, error) {
	var updated models.Category
	path := "/admin/categories/" + url.PathEscape(id)
	if err := a.c.doJSON(ctx, http.MethodPut, path, category, &updated, "admin_category_update", "Failed to save category"); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (a *AdminClient) DeleteCategory(ctx context.Context, id string) error {
	path := "/admin/categories/" + url.PathEscape(id)
	return a.c.doJSON(ctx, http.MethodDelete, path, nil, nil, "admin_category_delete", "Failed to delete category")
}

/* BOOKINGS */

func (a *AdminClient) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := a.c.doJSON(ctx, http.MethodGet, "/admin/bookings", nil, &bookings, "admin_booking_list", "Failed to fetch bookings"); err != nil {
		return nil, err
	}
	return bookings, nil
}

// SetBookingStatus PUTs the new status immediately; callers refetch the list
// and stats afterwards.
func (a *AdminClient) SetBookingStatus(ctx context.Context, id, status string) error {
	body := map[string]string{"status": status}
	path := "/admin/bookings/" + url.PathEscape(id)
	return a.c.doJSON(ctx, http.MethodPut, path, body, nil, "admin_booking_status", "Failed to update booking")
}

func (a *AdminClient) DeleteBooking(ctx context.Context, id string) error {
	path := "/admin/bookings/" + url.PathEscape(id)
	return a.c.doJSON(ctx, http.MethodDelete, path, nil, nil, "admin_booking_delete", "Failed to delete booking")
}
