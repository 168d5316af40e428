package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"slotify/internal/metrics"
	"slotify/internal/models"

	"github.com/rs/zerolog"
)

// TokenSource supplies the bearer credential of the persisted profile.
// An empty token means the request goes out unauthenticated; the backend is
// the authority on rejecting it.
type TokenSource interface {
	Token() string
}

// Client wraps the marketplace REST backend: one method per operation.
// No retries, no response caching; errors come back as *Error carrying the
// backend message or a generic fallback.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *zerolog.Logger
}

func NewClient(baseURL string, tokens TokenSource, logger *zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		tokens:     tokens,
		logger:     logger,
	}
}

/* AUTH */

func (c *Client) SendOTP(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.doJSON(ctx, http.MethodPost, "/auth/send-otp", body, nil, "auth_send_otp", "Failed to send OTP")
}

func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (*models.User, error) {
	body := map[string]string{"email": email, "otp": otp}
	var user models.User
	if err := c.doJSON(ctx, http.MethodPost, "/auth/verify-otp", body, &user, "auth_verify_otp", "Invalid OTP"); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, user *models.User) (*models.User, error) {
	var updated models.User
	if err := c.doJSON(ctx, http.MethodPut, "/auth/profile", user, &updated, "auth_update_profile", "Update failed"); err != nil {
		return nil, err
	}
	return &updated, nil
}

/* BOOKINGS */

func (c *Client) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	var created models.Booking
	if err := c.doJSON(ctx, http.MethodPost, "/bookings", booking, &created, "booking_create", "Failed to create booking"); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UserBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.doJSON(ctx, http.MethodGet, "/bookings/my-bookings", nil, &bookings, "booking_list_user", "Failed to fetch bookings"); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) VendorBookings(ctx context.Context, vendorID string) ([]models.Booking, error) {
	path := "/bookings"
	if vendorID != "" {
		path += "?vendorId=" + url.QueryEscape(vendorID)
	}
	var bookings []models.Booking
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &bookings, "booking_list_vendor", "Failed to fetch bookings"); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) UpdateBookingStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	body := map[string]string{"status": status}
	var updated models.Booking
	path := "/bookings/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodPatch, path, body, &updated, "booking_update_status", "Failed to update booking"); err != nil {
		return nil, err
	}
	return &updated, nil
}

/* CATEGORIES */

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.doJSON(ctx, http.MethodGet, "/categories", nil, &categories, "category_list", "Failed to fetch categories"); err != nil {
		return nil, err
	}
	return categories, nil
}

/* VENDORS */

func (c *Client) Vendors(ctx context.Context, categoryID string) ([]models.Vendor, error) {
	path := "/vendors"
	if categoryID != "" {
		path += "?categoryId=" + url.QueryEscape(categoryID)
	}
	var vendors []models.Vendor
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &vendors, "vendor_list", "Failed to fetch vendors"); err != nil {
		return nil, err
	}
	return vendors, nil
}

func (c *Client) Vendor(ctx context.Context, id string) (*models.Vendor, error) {
	var vendor models.Vendor
	path := "/vendors/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &vendor, "vendor_get", "Vendor not found or server error."); err != nil {
		return nil, err
	}
	return &vendor, nil
}

/* NOTIFICATIONS */

func (c *Client) Notifications(ctx context.Context) (*models.NotificationFeed, error) {
	var feed models.NotificationFeed
	if err := c.doJSON(ctx, http.MethodGet, "/notifications", nil, &feed, "notification_list", "Failed to fetch notifications"); err != nil {
		return nil, err
	}
	return &feed, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) (*models.Notification, error) {
	var updated models.Notification
	path := "/notifications/" + url.PathEscape(id) + "/read"
	if err := c.doJSON(ctx, http.MethodPatch, path, nil, &updated, "notification_mark_read", "Failed to mark as read"); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPatch, "/notifications/read-all", nil, nil, "notification_mark_all", "Failed to mark all as read")
}

func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	path := "/notifications/" + url.PathEscape(id)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, "notification_delete", "Failed to delete notification")
}

/* PAYMENTS */

func (c *Client) CreatePaymentOrder(ctx context.Context, amount float64) (*models.PaymentOrder, error) {
	body := map[string]float64{"amount": amount}
	var order models.PaymentOrder
	if err := c.doJSON(ctx, http.MethodPost, "/payments/orders", body, &order, "payment_create_order", "Could not initiate payment. Server error."); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) VerifyPayment(ctx context.Context, callback *models.PaymentCallback) (*models.PaymentVerification, error) {
	var verification models.PaymentVerification
	if err := c.doJSON(ctx, http.MethodPost, "/payments/verify", callback, &verification, "payment_verify", "Payment verification failed. Please contact support."); err != nil {
		return nil, err
	}
	return &verification, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}, endpoint, fallback string) error {
	metrics.IncRequest(endpoint)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			metrics.IncError(endpoint)
			return newError(0, "", fallback, err)
		}
		reader = strings.NewReader(string(data))
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		metrics.IncError(endpoint)
		return newError(0, "", fallback, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.addHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.IncError(endpoint)
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("backend request failed")
		return newError(0, "", fallback, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		metrics.IncError(endpoint)
		message := decodeMessage(resp.Body)
		c.logger.Warn().Int("status", resp.StatusCode).Str("endpoint", endpoint).Str("message", message).Msg("backend rejected request")
		return newError(resp.StatusCode, message, fallback, fmt.Errorf("http %d", resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.IncError(endpoint)
		return newError(resp.StatusCode, "", fallback, err)
	}
	return nil
}

func (c *Client) addHeaders(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// decodeMessage pulls the backend's error message out of a rejection body.
func decodeMessage(r io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return ""
	}
	return payload.Message
}
