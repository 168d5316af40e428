package repository

import (
	"context"
	"sync/atomic"
	"time"

	"slotify/internal/domain"
	"slotify/internal/models"

	"github.com/rs/zerolog"
)

// FailoverFlowRepository prefers the primary (Redis) repository and falls
// back to the in-memory one when the primary errors, probing for recovery
// after a minute.
type FailoverFlowRepository struct {
	primary   domain.FlowRepository
	fallback  domain.FlowRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck time.Time
}

func NewFailoverFlowRepository(primary, fallback domain.FlowRepository, logger *zerolog.Logger) *FailoverFlowRepository {
	return &FailoverFlowRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverFlowRepository) GetState(ctx context.Context, sessionID string) (*models.FlowState, error) {
	if !r.isDown.Load() {
		state, err := r.primary.GetState(ctx, sessionID)
		if err == nil {
			return state, nil
		}
		r.markDown(err)
	}

	// Try to recover after 1 minute
	if r.isDown.Load() && time.Since(r.lastCheck) > time.Minute {
		state, err := r.primary.GetState(ctx, sessionID)
		if err == nil {
			r.isDown.Store(false)
			return state, nil
		}
		r.lastCheck = time.Now()
	}

	return r.fallback.GetState(ctx, sessionID)
}

func (r *FailoverFlowRepository) SetState(ctx context.Context, state *models.FlowState) error {
	if !r.isDown.Load() {
		err := r.primary.SetState(ctx, state)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}

	return r.fallback.SetState(ctx, state)
}

func (r *FailoverFlowRepository) ClearState(ctx context.Context, sessionID string) error {
	if !r.isDown.Load() {
		err := r.primary.ClearState(ctx, sessionID)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}

	return r.fallback.ClearState(ctx, sessionID)
}

func (r *FailoverFlowRepository) CheckRateLimit(ctx context.Context, sessionID string, limit int, window time.Duration) (bool, error) {
	if !r.isDown.Load() {
		allowed, err := r.primary.CheckRateLimit(ctx, sessionID, limit, window)
		if err == nil {
			return allowed, nil
		}
		r.markDown(err)
	}

	return r.fallback.CheckRateLimit(ctx, sessionID, limit, window)
}

func (r *FailoverFlowRepository) markDown(err error) {
	r.logger.Error().Err(err).Msg("Primary flow repository failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck = time.Now()
}
