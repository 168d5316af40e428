package store

import (
	"context"
	"sync"

	"slotify/internal/domain"
	"slotify/internal/models"

	"github.com/rs/zerolog"
)

// AuthSlice tracks the current session. VerifyOTP and UpdateProfile persist
// the returned profile blob to durable storage; Logout clears it; Restore
// hydrates from a previously persisted profile at startup.
type AuthSlice struct {
	mu sync.Mutex
	slice

	backend  domain.Backend
	profiles domain.ProfileStore
	logger   *zerolog.Logger

	user          *models.User
	token         string
	authenticated bool
}

func NewAuthSlice(backend domain.Backend, profiles domain.ProfileStore, logger *zerolog.Logger) *AuthSlice {
	return &AuthSlice{
		backend:  backend,
		profiles: profiles,
		logger:   logger,
	}
}

// SendOTP requests a one-time passcode. Success mutates nothing beyond the
// loading flag; the caller advances the UI step when the call resolves.
func (s *AuthSlice) SendOTP(ctx context.Context, email string) error {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	err := s.backend.SendOTP(ctx, email)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.reject(err)
		return err
	}
	s.fulfill()
	return nil
}

// VerifyOTP exchanges the passcode for a profile, persists it, and marks the
// session authenticated. A profile that cannot be persisted is treated as a
// rejection: the session state must never outlive a restart it claims to
// survive.
func (s *AuthSlice) VerifyOTP(ctx context.Context, email, otp string) (*models.User, error) {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	user, err := s.backend.VerifyOTP(ctx, email, otp)
	if err == nil {
		err = s.profiles.Save(ctx, user)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.reject(err)
		return nil, err
	}

	s.fulfill()
	s.user = user
	s.token = user.Token
	s.authenticated = true
	return user, nil
}

// UpdateProfile replaces the current user record and re-persists the blob.
func (s *AuthSlice) UpdateProfile(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	updated, err := s.backend.UpdateProfile(ctx, user)
	if err == nil {
		err = s.profiles.Save(ctx, updated)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.reject(err)
		return nil, err
	}

	s.fulfill()
	s.user = updated
	s.token = updated.Token
	return updated, nil
}

// Logout is synchronous: it clears durable storage and resets the session.
func (s *AuthSlice) Logout(ctx context.Context) {
	if err := s.profiles.Clear(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to clear persisted profile")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
	s.authenticated = false
	s.err = ""
}

// Restore hydrates the session from the persisted profile, if any.
func (s *AuthSlice) Restore(ctx context.Context) error {
	user, err := s.profiles.Load(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to restore persisted profile")
		return err
	}
	if user == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.token = user.Token
	s.authenticated = true
	return nil
}

func (s *AuthSlice) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *AuthSlice) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

func (s *AuthSlice) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *AuthSlice) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
