package domain

import (
	"context"
	"time"

	"slotify/internal/models"
)

// Backend is the remote REST API surface consumed by the state slices and
// flows. One method per backend operation; implementations attach the bearer
// credential themselves.
type Backend interface {
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) (*models.User, error)

	CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	UserBookings(ctx context.Context) ([]models.Booking, error)
	VendorBookings(ctx context.Context, vendorID string) ([]models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id, status string) (*models.Booking, error)

	Categories(ctx context.Context) ([]models.Category, error)
	Vendors(ctx context.Context, categoryID string) ([]models.Vendor, error)
	Vendor(ctx context.Context, id string) (*models.Vendor, error)

	Notifications(ctx context.Context) (*models.NotificationFeed, error)
	MarkNotificationRead(ctx context.Context, id string) (*models.Notification, error)
	MarkAllNotificationsRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, id string) error

	CreatePaymentOrder(ctx context.Context, amount float64) (*models.PaymentOrder, error)
	VerifyPayment(ctx context.Context, callback *models.PaymentCallback) (*models.PaymentVerification, error)
}

// AdminBackend mirrors each managed entity under the admin namespace.
type AdminBackend interface {
	Stats(ctx context.Context) (*models.AdminStats, error)

	ListEvents(ctx context.Context) ([]models.Event, error)
	CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error)
	UpdateEvent(ctx context.Context, id string, event *models.Event) (*models.Event, error)
	DeleteEvent(ctx context.Context, id string) error

	ListVendors(ctx context.Context) ([]models.Vendor, error)
	CreateVendor(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error)
	UpdateVendor(ctx context.Context, id string, vendor *models.Vendor) (*models.Vendor, error)
	DeleteVendor(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, category *models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	ListBookings(ctx context.Context) ([]models.Booking, error)
	SetBookingStatus(ctx context.Context, id, status string) error
	DeleteBooking(ctx context.Context, id string) error
}

// ProfileStore is the durable "profile" blob: read at startup, written by
// login/profile-update, deleted on logout.
type ProfileStore interface {
	Load(ctx context.Context) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	Clear(ctx context.Context) error
	Token() string
}

// FlowRepository persists interactive dialog state between prompts.
type FlowRepository interface {
	GetState(ctx context.Context, sessionID string) (*models.FlowState, error)
	SetState(ctx context.Context, state *models.FlowState) error
	ClearState(ctx context.Context, sessionID string) error
	CheckRateLimit(ctx context.Context, sessionID string, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
