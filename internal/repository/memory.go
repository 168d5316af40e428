package repository

import (
	"context"
	"sync"
	"time"

	"slotify/internal/models"
)

type MemoryFlowRepository struct {
	states     sync.Map
	rateLimits sync.Map
	ttl        time.Duration
}

func NewMemoryFlowRepository(ttl time.Duration) *MemoryFlowRepository {
	return &MemoryFlowRepository{
		ttl: ttl,
	}
}

func (r *MemoryFlowRepository) GetState(ctx context.Context, sessionID string) (*models.FlowState, error) {
	val, ok := r.states.Load(sessionID)
	if !ok {
		return nil, nil
	}
	return val.(*models.FlowState), nil
}

func (r *MemoryFlowRepository) SetState(ctx context.Context, state *models.FlowState) error {
	r.states.Store(state.SessionID, state)
	return nil
}

func (r *MemoryFlowRepository) ClearState(ctx context.Context, sessionID string) error {
	r.states.Delete(sessionID)
	return nil
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

func (r *MemoryFlowRepository) CheckRateLimit(ctx context.Context, sessionID string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	val, ok := r.rateLimits.Load(sessionID)

	var entry *rateLimitEntry
	if !ok {
		entry = &rateLimitEntry{
			count:     1,
			expiresAt: now.Add(window),
		}
	} else {
		entry = val.(*rateLimitEntry)
		if now.After(entry.expiresAt) {
			entry.count = 1
			entry.expiresAt = now.Add(window)
		} else {
			entry.count++
		}
	}

	r.rateLimits.Store(sessionID, entry)
	return entry.count <= limit, nil
}
