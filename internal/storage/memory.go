package storage

import (
	"fmt"
	"sync"
	"time"

	"github.com/ayacoo/mfa-sms-backend/internal/models"
)

// MemoryStore holds all factors in memory, for tests and local development.
type MemoryStore struct {
	factors map[string]*models.Factor
	mu      sync.RWMutex

	counter uint
}

// NewMemoryStore creates a new in-memory factor store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		factors: make(map[string]*models.Factor),
	}
}

// GetFactor returns a copy of the stored factor, so callers can mutate the
// snapshot without writing through.
func (m *MemoryStore) GetFactor(userID string) (*models.Factor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	factor, exists := m.factors[userID]
	if !exists {
		return nil, ErrFactorNotFound
	}
	snapshot := *factor
	return &snapshot, nil
}

func (m *MemoryStore) HasFactor(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.factors[userID]
	return exists
}

func (m *MemoryStore) CreateFactor(factor *models.Factor) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.factors[factor.UserID]; exists {
		return fmt.Errorf("factor already exists for user %s", factor.UserID)
	}

	m.counter++
	stored := *factor
	stored.ID = m.counter
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = time.Now()
	m.factors[factor.UserID] = &stored
	return nil
}

func (m *MemoryStore) UpdateFactor(factor *models.Factor) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, exists := m.factors[factor.UserID]
	if !exists {
		return ErrFactorNotFound
	}

	stored := *factor
	stored.ID = existing.ID
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now()
	m.factors[factor.UserID] = &stored
	return nil
}
