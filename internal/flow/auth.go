package flow

import (
	"context"

	"slotify/internal/domain"
	"slotify/internal/metrics"
	"slotify/internal/models"
	"slotify/internal/store"

	"github.com/rs/zerolog"
)

// Auth login steps. The wizard is a strict line: submit an email, then the
// passcode sent to it.
const (
	AuthAwaitingEmail = "awaiting_email"
	AuthAwaitingOtp   = "awaiting_otp"
	AuthAuthenticated = "authenticated"
)

var authTransitions = map[string][]string{
	AuthAwaitingEmail: {AuthAwaitingOtp},
	AuthAwaitingOtp:   {AuthAuthenticated, AuthAwaitingEmail},
	AuthAuthenticated: {AuthAwaitingEmail},
}

// AuthFlow drives the OTP login wizard against the auth slice, persisting
// the step and the pending email between prompts.
type AuthFlow struct {
	auth      *store.AuthSlice
	repo      domain.FlowRepository
	sessionID string
	logger    *zerolog.Logger
}

func NewAuthFlow(auth *store.AuthSlice, repo domain.FlowRepository, sessionID string, logger *zerolog.Logger) *AuthFlow {
	// Namespaced so the auth and payment wizards of one session never share
	// a state record.
	return &AuthFlow{auth: auth, repo: repo, sessionID: "auth:" + sessionID, logger: logger}
}

// State returns the current step, defaulting to AwaitingEmail.
func (f *AuthFlow) State(ctx context.Context) string {
	state, err := f.repo.GetState(ctx, f.sessionID)
	if err != nil || state == nil || state.Step == "" {
		return AuthAwaitingEmail
	}
	return state.Step
}

// SubmitEmail requests an OTP and, on success, advances to AwaitingOtp.
func (f *AuthFlow) SubmitEmail(ctx context.Context, email string) error {
	current := f.State(ctx)
	if current != AuthAwaitingEmail {
		return ErrInvalidTransition
	}

	if err := f.auth.SendOTP(ctx, email); err != nil {
		return err
	}

	return f.transition(ctx, current, AuthAwaitingOtp, map[string]interface{}{"email": email})
}

// SubmitOTP verifies the passcode for the pending email and, on success,
// advances to Authenticated.
func (f *AuthFlow) SubmitOTP(ctx context.Context, otp string) (*models.User, error) {
	state, err := f.repo.GetState(ctx, f.sessionID)
	if err != nil {
		return nil, err
	}
	if state == nil || state.Step != AuthAwaitingOtp {
		return nil, ErrInvalidTransition
	}

	user, err := f.auth.VerifyOTP(ctx, state.GetString("email"), otp)
	if err != nil {
		return nil, err
	}

	if err := f.transition(ctx, state.Step, AuthAuthenticated, nil); err != nil {
		return user, err
	}
	return user, nil
}

// Reset returns the wizard to AwaitingEmail, e.g. to re-enter a mistyped
// address or after logout.
func (f *AuthFlow) Reset(ctx context.Context) error {
	return f.repo.ClearState(ctx, f.sessionID)
}

func (f *AuthFlow) transition(ctx context.Context, from, to string, data map[string]interface{}) error {
	if !allowed(authTransitions, from, to) {
		return ErrInvalidTransition
	}
	metrics.IncTransition("auth", to)
	f.logger.Debug().Str("from", from).Str("to", to).Msg("auth flow transition")
	return f.repo.SetState(ctx, &models.FlowState{SessionID: f.sessionID, Step: to, Data: data})
}

func allowed(table map[string][]string, from, to string) bool {
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}
