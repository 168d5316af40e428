package flow

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"slotify/internal/domain"
	"slotify/internal/models"
	"slotify/internal/repository"
	"slotify/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *zerolog.Logger {
	l := zerolog.New(os.Stdout).Level(zerolog.Disabled)
	return &l
}

func testRepo() domain.FlowRepository {
	return repository.NewMemoryFlowRepository(time.Hour)
}

// fakeBackend counts calls so tests can assert that validation failures
// never reach the network.
type fakeBackend struct {
	domain.Backend

	sendOTPErr   error
	verifyUser   *models.User
	verifyErr    error
	order        *models.PaymentOrder
	orderErr     error
	verification *models.PaymentVerification
	verifyPayErr error
	bookingErr   error

	calls int
}

func (f *fakeBackend) SendOTP(ctx context.Context, email string) error {
	f.calls++
	return f.sendOTPErr
}

func (f *fakeBackend) VerifyOTP(ctx context.Context, email, otp string) (*models.User, error) {
	f.calls++
	return f.verifyUser, f.verifyErr
}

func (f *fakeBackend) CreatePaymentOrder(ctx context.Context, amount float64) (*models.PaymentOrder, error) {
	f.calls++
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	order := *f.order
	order.Amount = int64(amount * 100)
	return &order, nil
}

func (f *fakeBackend) VerifyPayment(ctx context.Context, callback *models.PaymentCallback) (*models.PaymentVerification, error) {
	f.calls++
	return f.verification, f.verifyPayErr
}

func (f *fakeBackend) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	f.calls++
	if f.bookingErr != nil {
		return nil, f.bookingErr
	}
	created := *booking
	created.ID = "b1"
	return &created, nil
}

type memProfiles struct {
	user *models.User
}

func (m *memProfiles) Load(ctx context.Context) (*models.User, error) { return m.user, nil }
func (m *memProfiles) Save(ctx context.Context, user *models.User) error {
	m.user = user
	return nil
}
func (m *memProfiles) Clear(ctx context.Context) error { m.user = nil; return nil }
func (m *memProfiles) Token() string {
	if m.user == nil {
		return ""
	}
	return m.user.Token
}

func TestAuthFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("HappyPath", func(t *testing.T) {
		backend := &fakeBackend{verifyUser: &models.User{Name: "A", Email: "a@b.com", Token: "t1"}}
		auth := store.NewAuthSlice(backend, &memProfiles{}, testLogger())
		f := NewAuthFlow(auth, testRepo(), "s1", testLogger())

		assert.Equal(t, AuthAwaitingEmail, f.State(ctx))

		require.NoError(t, f.SubmitEmail(ctx, "a@b.com"))
		assert.Equal(t, AuthAwaitingOtp, f.State(ctx))

		user, err := f.SubmitOTP(ctx, "123456")
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", user.Email)
		assert.Equal(t, AuthAuthenticated, f.State(ctx))
	})

	t.Run("OtpBeforeEmailRejected", func(t *testing.T) {
		backend := &fakeBackend{}
		auth := store.NewAuthSlice(backend, &memProfiles{}, testLogger())
		f := NewAuthFlow(auth, testRepo(), "s1", testLogger())

		_, err := f.SubmitOTP(ctx, "123456")
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Zero(t, backend.calls)
	})

	t.Run("SendFailureStaysOnEmail", func(t *testing.T) {
		backend := &fakeBackend{sendOTPErr: errors.New("Failed to send OTP")}
		auth := store.NewAuthSlice(backend, &memProfiles{}, testLogger())
		f := NewAuthFlow(auth, testRepo(), "s1", testLogger())

		require.Error(t, f.SubmitEmail(ctx, "a@b.com"))
		assert.Equal(t, AuthAwaitingEmail, f.State(ctx))
	})

	t.Run("VerifyFailureStaysOnOtp", func(t *testing.T) {
		backend := &fakeBackend{verifyErr: errors.New("Invalid OTP")}
		auth := store.NewAuthSlice(backend, &memProfiles{}, testLogger())
		f := NewAuthFlow(auth, testRepo(), "s1", testLogger())

		require.NoError(t, f.SubmitEmail(ctx, "a@b.com"))
		_, err := f.SubmitOTP(ctx, "000000")
		require.Error(t, err)
		assert.Equal(t, AuthAwaitingOtp, f.State(ctx))
	})

	t.Run("ResetReturnsToEmail", func(t *testing.T) {
		backend := &fakeBackend{}
		auth := store.NewAuthSlice(backend, &memProfiles{}, testLogger())
		f := NewAuthFlow(auth, testRepo(), "s1", testLogger())

		require.NoError(t, f.SubmitEmail(ctx, "a@b.com"))
		require.NoError(t, f.Reset(ctx))
		assert.Equal(t, AuthAwaitingEmail, f.State(ctx))
	})
}

func paymentFixture(backend *fakeBackend) (*PaymentFlow, *store.BookingSlice) {
	bookings := store.NewBookingSlice(backend, nil, testLogger())
	f := NewPaymentFlow(backend, bookings, testRepo(), "s1", "Payment verified successfully", testLogger())
	return f, bookings
}

func TestPaymentFlow(t *testing.T) {
	ctx := context.Background()
	vendor := &models.Vendor{ID: "v1", Name: "DJ", Price: 5000}
	form := BookingForm{UserName: "A", UserEmail: "a@b.com", EventDate: "2026-09-01"}

	t.Run("HappyPath", func(t *testing.T) {
		backend := &fakeBackend{
			order:        &models.PaymentOrder{ID: "order_1", Currency: "INR"},
			verification: &models.PaymentVerification{Message: "Payment verified successfully"},
		}
		f, bookings := paymentFixture(backend)

		order, err := f.Start(ctx, vendor, form)
		require.NoError(t, err)
		assert.Equal(t, "order_1", order.ID)
		assert.Equal(t, int64(500000), order.Amount)
		assert.NotEmpty(t, order.Receipt)
		assert.Equal(t, PaymentOrderCreated, f.State(ctx))

		booking, err := f.HandleCallback(ctx, &models.PaymentCallback{OrderID: "order_1", PaymentID: "pay_1", Signature: "sig"})
		require.NoError(t, err)
		assert.Equal(t, models.StatusConfirmed, booking.Status)
		assert.Equal(t, "v1", booking.Vendor.ID())
		assert.Equal(t, PaymentBookingCreated, f.State(ctx))
		assert.Len(t, bookings.Bookings(), 1)
	})

	t.Run("WrongVerifyMessageCreatesNoBooking", func(t *testing.T) {
		backend := &fakeBackend{
			order:        &models.PaymentOrder{ID: "order_1", Currency: "INR"},
			verification: &models.PaymentVerification{Message: "Payment verified"},
		}
		f, bookings := paymentFixture(backend)

		_, err := f.Start(ctx, vendor, form)
		require.NoError(t, err)

		_, err = f.HandleCallback(ctx, &models.PaymentCallback{})
		assert.ErrorIs(t, err, ErrVerificationFailed)
		assert.Equal(t, PaymentFailed, f.State(ctx))
		assert.Empty(t, bookings.Bookings())
	})

	t.Run("BookingFailureAfterVerifiedPayment", func(t *testing.T) {
		backend := &fakeBackend{
			order:        &models.PaymentOrder{ID: "order_1", Currency: "INR"},
			verification: &models.PaymentVerification{Message: "Payment verified successfully"},
			bookingErr:   errors.New("Failed to create booking"),
		}
		f, _ := paymentFixture(backend)

		_, err := f.Start(ctx, vendor, form)
		require.NoError(t, err)

		_, err = f.HandleCallback(ctx, &models.PaymentCallback{})
		assert.ErrorIs(t, err, ErrContactSupport)
		assert.Equal(t, PaymentFailed, f.State(ctx))
	})

	t.Run("CallbackBeforeOrderRejected", func(t *testing.T) {
		backend := &fakeBackend{}
		f, _ := paymentFixture(backend)

		_, err := f.HandleCallback(ctx, &models.PaymentCallback{})
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Zero(t, backend.calls)
	})

	t.Run("OrderFailureFailsFlow", func(t *testing.T) {
		backend := &fakeBackend{orderErr: errors.New("Payment failed")}
		f, _ := paymentFixture(backend)

		_, err := f.Start(ctx, vendor, form)
		require.Error(t, err)
		assert.Equal(t, PaymentFailed, f.State(ctx))
	})

	t.Run("PayLaterValidationBlocksBeforeNetwork", func(t *testing.T) {
		backend := &fakeBackend{}
		f, bookings := paymentFixture(backend)

		_, err := f.PayLater(ctx, "v1", BookingForm{UserName: "", UserEmail: "a@b.com", EventDate: "2026-09-01"})
		require.Error(t, err)
		assert.Zero(t, backend.calls)
		assert.Empty(t, bookings.Bookings())
	})

	t.Run("PayLaterCreatesPending", func(t *testing.T) {
		backend := &fakeBackend{}
		f, _ := paymentFixture(backend)

		booking, err := f.PayLater(ctx, "v1", form)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, booking.Status)
	})

	t.Run("ResetRestartsFlow", func(t *testing.T) {
		backend := &fakeBackend{
			order: &models.PaymentOrder{ID: "order_1", Currency: "INR"},
		}
		f, _ := paymentFixture(backend)

		_, err := f.Start(ctx, vendor, form)
		require.NoError(t, err)
		require.NoError(t, f.Reset(ctx))
		assert.Equal(t, PaymentIdle, f.State(ctx))

		_, err = f.Start(ctx, vendor, form)
		require.NoError(t, err)
	})
}

func TestTransitionTables(t *testing.T) {
	assert.True(t, allowed(paymentTransitions, PaymentIdle, PaymentOrderCreated))
	assert.True(t, allowed(paymentTransitions, PaymentVerifying, PaymentFailed))
	assert.False(t, allowed(paymentTransitions, PaymentBookingCreated, PaymentIdle))
	assert.False(t, allowed(paymentTransitions, PaymentFailed, PaymentOrderCreated))
	assert.False(t, allowed(paymentTransitions, PaymentIdle, PaymentVerifying))

	assert.True(t, allowed(authTransitions, AuthAwaitingOtp, AuthAwaitingEmail))
	assert.False(t, allowed(authTransitions, AuthAwaitingEmail, AuthAuthenticated))
}
