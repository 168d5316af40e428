package models

import "time"

// User is the authenticated profile as returned by the backend. The whole
// record, token included, is persisted client-side as the "profile" blob.
type User struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"`
	Token string `json:"token,omitempty"`
}

type Category struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Image       string `json:"image,omitempty"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

type Vendor struct {
	ID           string      `json:"_id"`
	Name         string      `json:"name"`
	Category     CategoryRef `json:"categoryId"`
	Email        string      `json:"email,omitempty"`
	Phone        string      `json:"phone,omitempty"`
	Price        float64     `json:"price,omitempty"`
	MaxPrice     float64     `json:"maxPrice,omitempty"`
	Rating       float64     `json:"rating,omitempty"`
	Image        string      `json:"image,omitempty"`
	Services     []string    `json:"services,omitempty"`
	Description  string      `json:"description,omitempty"`
	Availability bool        `json:"availability,omitempty"`
}

// Booking keeps EventDate as the wire string (YYYY-MM-DD) so the record
// round-trips with the backend unchanged.
type Booking struct {
	ID        string    `json:"_id,omitempty"`
	Vendor    VendorRef `json:"vendorId"`
	UserName  string    `json:"userName"`
	UserEmail string    `json:"userEmail"`
	UserPhone string    `json:"userPhone,omitempty"`
	EventDate string    `json:"eventDate"`
	Notes     string    `json:"notes,omitempty"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

type Notification struct {
	ID        string    `json:"_id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// NotificationFeed is the backend response for the notification listing:
// items plus the server-computed unread count, delivered atomically.
type NotificationFeed struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unreadCount"`
}

// Event is managed through the admin surface only.
type Event struct {
	ID               string      `json:"_id,omitempty"`
	Name             string      `json:"name"`
	Category         CategoryRef `json:"categoryId"`
	Description      string      `json:"description,omitempty"`
	Venue            string      `json:"venue,omitempty"`
	Address          string      `json:"address,omitempty"`
	City             string      `json:"city,omitempty"`
	Date             string      `json:"date,omitempty"`
	StartTime        string      `json:"startTime,omitempty"`
	EndTime          string      `json:"endTime,omitempty"`
	Capacity         int         `json:"capacity,omitempty"`
	TicketPrice      float64     `json:"ticketPrice,omitempty"`
	Organizer        string      `json:"organizer,omitempty"`
	OrganizerContact string      `json:"organizerContact,omitempty"`
	OrganizerEmail   string      `json:"organizerEmail,omitempty"`
	Image            string      `json:"image,omitempty"`
	Status           string      `json:"status,omitempty"`
	IsFeatured       bool        `json:"isFeatured,omitempty"`
	Tags             []string    `json:"tags,omitempty"`
}

// PaymentOrder is the gateway order created before the external widget runs.
type PaymentOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
}

// PaymentCallback is the provider-signed payload the widget hands back.
// The client never inspects it; it is forwarded to the backend verbatim.
type PaymentCallback struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

type PaymentVerification struct {
	Message string `json:"message"`
}

// AdminStats is the aggregate counters block of the admin dashboard.
type AdminStats struct {
	TotalEvents     int `json:"totalEvents"`
	TotalVendors    int `json:"totalVendors"`
	TotalCategories int `json:"totalCategories"`
	TotalBookings   int `json:"totalBookings"`
	PendingBookings int `json:"pendingBookings"`
}
