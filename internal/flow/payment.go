package flow

import (
	"context"

	"slotify/internal/domain"
	"slotify/internal/metrics"
	"slotify/internal/models"
	"slotify/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Payment steps. The paid path is a strict line with no compensation on
// partial failure: order → widget callback → verify → booking. Verification
// must return the exact configured success message before a booking exists.
const (
	PaymentIdle           = "idle"
	PaymentOrderCreated   = "order_created"
	PaymentVerifying      = "verifying"
	PaymentBookingCreated = "booking_created"
	PaymentFailed         = "failed"
)

var paymentTransitions = map[string][]string{
	PaymentIdle:         {PaymentOrderCreated, PaymentFailed},
	PaymentOrderCreated: {PaymentVerifying, PaymentFailed},
	PaymentVerifying:    {PaymentBookingCreated, PaymentFailed},
	// Terminal states restart through Reset only.
	PaymentBookingCreated: {},
	PaymentFailed:         {},
}

// BookingForm carries the five fields both booking form variants collect.
// The pay-later path requires name, email and event date before any network
// call goes out; everything else is backend-enforced.
type BookingForm struct {
	UserName  string `validate:"required"`
	UserEmail string `validate:"required"`
	UserPhone string
	EventDate string `validate:"required"`
	Notes     string
}

// PaymentFlow drives the booking-with-payment sequence.
type PaymentFlow struct {
	backend        domain.Backend
	bookings       *store.BookingSlice
	repo           domain.FlowRepository
	sessionID      string
	successMessage string
	validate       *validator.Validate
	logger         *zerolog.Logger
}

func NewPaymentFlow(backend domain.Backend, bookings *store.BookingSlice, repo domain.FlowRepository, sessionID, successMessage string, logger *zerolog.Logger) *PaymentFlow {
	return &PaymentFlow{
		backend:        backend,
		bookings:       bookings,
		repo:           repo,
		sessionID:      "payment:" + sessionID,
		successMessage: successMessage,
		validate:       validator.New(),
		logger:         logger,
	}
}

// State returns the current step, defaulting to idle.
func (f *PaymentFlow) State(ctx context.Context) string {
	state, err := f.repo.GetState(ctx, f.sessionID)
	if err != nil || state == nil || state.Step == "" {
		return PaymentIdle
	}
	return state.Step
}

// Start creates a payment order for the vendor's price and stashes the form
// for the booking that follows verification. A rejected order aborts the
// flow; nothing was charged and no booking exists.
func (f *PaymentFlow) Start(ctx context.Context, vendor *models.Vendor, form BookingForm) (*models.PaymentOrder, error) {
	current := f.State(ctx)
	if current != PaymentIdle {
		return nil, ErrInvalidTransition
	}

	order, err := f.backend.CreatePaymentOrder(ctx, vendor.Price)
	if err != nil {
		_ = f.transition(ctx, current, PaymentFailed, nil)
		return nil, err
	}
	if order.Receipt == "" {
		order.Receipt = "rcpt_" + uuid.NewString()
	}

	data := map[string]interface{}{
		"order_id":   order.ID,
		"vendor_id":  vendor.ID,
		"user_name":  form.UserName,
		"user_email": form.UserEmail,
		"user_phone": form.UserPhone,
		"event_date": form.EventDate,
		"notes":      form.Notes,
	}
	if err := f.transition(ctx, current, PaymentOrderCreated, data); err != nil {
		return nil, err
	}
	return order, nil
}

// HandleCallback forwards the provider-signed payload to the backend for
// verification and creates the confirmed booking only when the response
// message equals the exact success string. The callback payload itself is
// never trusted for the decision.
func (f *PaymentFlow) HandleCallback(ctx context.Context, callback *models.PaymentCallback) (*models.Booking, error) {
	state, err := f.repo.GetState(ctx, f.sessionID)
	if err != nil {
		return nil, err
	}
	if state == nil || state.Step != PaymentOrderCreated {
		return nil, ErrInvalidTransition
	}

	if err := f.transition(ctx, state.Step, PaymentVerifying, state.Data); err != nil {
		return nil, err
	}

	verification, err := f.backend.VerifyPayment(ctx, callback)
	if err != nil {
		_ = f.transition(ctx, PaymentVerifying, PaymentFailed, nil)
		return nil, err
	}
	if verification.Message != f.successMessage {
		_ = f.transition(ctx, PaymentVerifying, PaymentFailed, nil)
		return nil, ErrVerificationFailed
	}

	booking := &models.Booking{
		Vendor:    models.VendorID(state.GetString("vendor_id")),
		UserName:  state.GetString("user_name"),
		UserEmail: state.GetString("user_email"),
		UserPhone: state.GetString("user_phone"),
		EventDate: state.GetString("event_date"),
		Notes:     state.GetString("notes"),
		Status:    models.StatusConfirmed,
	}
	created, err := f.bookings.Create(ctx, booking)
	if err != nil {
		// Payment captured, booking absent. The client cannot repair this;
		// it is a backend reconciliation concern.
		_ = f.transition(ctx, PaymentVerifying, PaymentFailed, nil)
		f.logger.Error().Err(err).Str("order_id", state.GetString("order_id")).Msg("booking creation failed after verified payment")
		return nil, ErrContactSupport
	}

	if err := f.transition(ctx, PaymentVerifying, PaymentBookingCreated, nil); err != nil {
		return created, err
	}
	return created, nil
}

// PayLater skips the payment steps entirely: validate the required fields
// locally, then create a pending booking. Validation failure blocks before
// any network call.
func (f *PaymentFlow) PayLater(ctx context.Context, vendorID string, form BookingForm) (*models.Booking, error) {
	if err := f.validate.Struct(form); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		Vendor:    models.VendorID(vendorID),
		UserName:  form.UserName,
		UserEmail: form.UserEmail,
		UserPhone: form.UserPhone,
		EventDate: form.EventDate,
		Notes:     form.Notes,
		Status:    models.StatusPending,
	}
	return f.bookings.Create(ctx, booking)
}

// Reset clears a finished or aborted flow back to idle.
func (f *PaymentFlow) Reset(ctx context.Context) error {
	return f.repo.ClearState(ctx, f.sessionID)
}

func (f *PaymentFlow) transition(ctx context.Context, from, to string, data map[string]interface{}) error {
	if !allowed(paymentTransitions, from, to) {
		return ErrInvalidTransition
	}
	metrics.IncTransition("payment", to)
	f.logger.Debug().Str("from", from).Str("to", to).Msg("payment flow transition")
	return f.repo.SetState(ctx, &models.FlowState{SessionID: f.sessionID, Step: to, Data: data})
}
