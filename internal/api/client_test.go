package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"slotify/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *zerolog.Logger {
	l := zerolog.New(os.Stdout).Level(zerolog.Disabled)
	return &l
}

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestClientAuth(t *testing.T) {
	ctx := context.Background()

	t.Run("BearerHeaderAttached", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, staticToken("t1"), testLogger())
		_, err := c.UserBookings(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Bearer t1", gotAuth)
	})

	t.Run("NoTokenNoHeader", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, staticToken(""), testLogger())
		_, err := c.Categories(ctx)
		require.NoError(t, err)
		assert.Empty(t, gotAuth)
	})

	t.Run("SendOTPPostsEmail", func(t *testing.T) {
		var gotPath string
		var gotBody map[string]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.Method + " " + r.URL.Path
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			_, _ = w.Write([]byte(`{"message":"OTP sent"}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, nil, testLogger())
		require.NoError(t, c.SendOTP(ctx, "a@b.com"))
		assert.Equal(t, "POST /auth/send-otp", gotPath)
		assert.Equal(t, "a@b.com", gotBody["email"])
	})
}

func TestClientErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("BackendMessageSurfaced", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"Invalid or expired OTP"}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, nil, testLogger())
		_, err := c.VerifyOTP(ctx, "a@b.com", "000000")
		require.Error(t, err)
		assert.Equal(t, "Invalid or expired OTP", err.Error())

		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	})

	t.Run("FallbackWhenBodyUnreadable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`<html>boom</html>`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, nil, testLogger())
		_, err := c.VerifyOTP(ctx, "a@b.com", "000000")
		require.Error(t, err)
		assert.Equal(t, "Invalid OTP", err.Error())
	})

	t.Run("ConnectionRefusedUsesFallback", func(t *testing.T) {
		c := NewClient("http://127.0.0.1:1", nil, testLogger())
		err := c.SendOTP(ctx, "a@b.com")
		require.Error(t, err)
		assert.Equal(t, "Failed to send OTP", err.Error())
	})
}

func TestClientPaths(t *testing.T) {
	ctx := context.Background()

	newRecorder := func(response string) (*httptest.Server, *string) {
		var got string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Method + " " + r.URL.RequestURI()
			_, _ = w.Write([]byte(response))
		}))
		return srv, &got
	}

	t.Run("VendorsFilteredByCategory", func(t *testing.T) {
		srv, got := newRecorder(`[]`)
		defer srv.Close()

		c := NewClient(srv.URL, nil, testLogger())
		_, err := c.Vendors(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, "GET /vendors?categoryId=c1", *got)

		_, err = c.Vendors(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "GET /vendors", *got)
	})

	t.Run("VendorBookingsFilter", func(t *testing.T) {
		srv, got := newRecorder(`[]`)
		defer srv.Close()

		c := NewClient(srv.URL, nil, testLogger())
		_, err := c.VendorBookings(ctx, "v1")
		require.NoError(t, err)
		assert.Equal(t, "GET /bookings?vendorId=v1", *got)
	})

	t.Run("BookingStatusPatch", func(t *testing.T) {
		srv, got := newRecorder(`{"_id":"b1","status":"confirmed"}`)
		defer srv.Close()

		c := NewClient(srv.URL, nil, testLogger())
		updated, err := c.UpdateBookingStatus(ctx, "b1", models.StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, "PATCH /bookings/b1", *got)
		assert.Equal(t, models.StatusConfirmed, updated.Status)
	})

	t.Run("NotificationRoutes", func(t *testing.T) {
		srv, got := newRecorder(`{}`)
		defer srv.Close()

		c := NewClient(srv.URL, nil, testLogger())

		_, err := c.MarkNotificationRead(ctx, "n1")
		require.NoError(t, err)
		assert.Equal(t, "PATCH /notifications/n1/read", *got)

		require.NoError(t, c.MarkAllNotificationsRead(ctx))
		assert.Equal(t, "PATCH /notifications/read-all", *got)

		require.NoError(t, c.DeleteNotification(ctx, "n1"))
		assert.Equal(t, "DELETE /notifications/n1", *got)
	})

	t.Run("PaymentRoutes", func(t *testing.T) {
		srv, got := newRecorder(`{"id":"order_1","amount":500000,"currency":"INR"}`)
		defer srv.Close()

		c := NewClient(srv.URL, nil, testLogger())
		order, err := c.CreatePaymentOrder(ctx, 5000)
		require.NoError(t, err)
		assert.Equal(t, "POST /payments/orders", *got)
		assert.Equal(t, int64(500000), order.Amount)
	})

	t.Run("PopulatedVendorDecoded", func(t *testing.T) {
		srv, _ := newRecorder(`[{"_id":"b1","vendorId":{"_id":"v1","name":"DJ"},"userName":"A","userEmail":"a@b.com","eventDate":"2026-09-01"}]`)
		defer srv.Close()

		c := NewClient(srv.URL, nil, testLogger())
		bookings, err := c.UserBookings(ctx)
		require.NoError(t, err)
		require.Len(t, bookings, 1)

		vendor, ok := bookings[0].Vendor.Populated()
		require.True(t, ok)
		assert.Equal(t, "DJ", vendor.Name)
	})
}

func TestAdminClient(t *testing.T) {
	ctx := context.Background()

	t.Run("StatsAndRoutes", func(t *testing.T) {
		var got string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Method + " " + r.URL.Path
			switch r.URL.Path {
			case "/admin/stats":
				_, _ = w.Write([]byte(`{"totalEvents":3,"pendingBookings":2}`))
			default:
				_, _ = w.Write([]byte(`{}`))
			}
		}))
		defer srv.Close()

		a := NewAdminClient(srv.URL, staticToken("t1"), testLogger())

		stats, err := a.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalEvents)
		assert.Equal(t, 2, stats.PendingBookings)

		require.NoError(t, a.SetBookingStatus(ctx, "b1", models.StatusConfirmed))
		assert.Equal(t, "PUT /admin/bookings/b1", got)

		require.NoError(t, a.DeleteCategory(ctx, "c1"))
		assert.Equal(t, "DELETE /admin/categories/c1", got)
	})
}
