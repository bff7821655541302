package storage

import (
	"errors"
	"log"

	"github.com/ayacoo/mfa-sms-backend/internal/models"
)

// ErrFactorNotFound is returned when no factor exists for a user.
var ErrFactorNotFound = errors.New("factor not found")

// Store defines the interface for factor persistence.
//
// Implementations maintain the UpdatedAt timestamp on every write; callers
// never set it. Implementations are not required to serialize concurrent
// updates to the same factor - last write wins. Deployments that need
// stronger guarantees must serialize updates per user key at the storage
// layer.
type Store interface {
	GetFactor(userID string) (*models.Factor, error)
	HasFactor(userID string) bool
	CreateFactor(factor *models.Factor) error
	UpdateFactor(factor *models.Factor) error
}

// PropertyManager binds a Store to a single user's factor. It dispatches
// writes to create or update depending on whether an entry already exists.
type PropertyManager struct {
	store  Store
	userID string
}

func NewPropertyManager(store Store, userID string) *PropertyManager {
	return &PropertyManager{store: store, userID: userID}
}

func (pm *PropertyManager) UserID() string {
	return pm.userID
}

// HasEntry reports whether a factor has been persisted for this user.
func (pm *PropertyManager) HasEntry() bool {
	return pm.store.HasFactor(pm.userID)
}

// Properties returns the current factor state. When no entry exists, a
// zero-value factor carrying the user id is returned, so callers can treat
// missing and empty state uniformly.
func (pm *PropertyManager) Properties() *models.Factor {
	factor, err := pm.store.GetFactor(pm.userID)
	if err != nil {
		if !errors.Is(err, ErrFactorNotFound) {
			log.Printf("❌ Failed to read factor for user %s: %v", pm.userID, err)
		}
		return &models.Factor{UserID: pm.userID}
	}
	return factor
}

// Save persists the factor, creating the entry if absent and updating it
// otherwise. Returns false when the store write fails.
func (pm *PropertyManager) Save(factor *models.Factor) bool {
	factor.UserID = pm.userID

	var err error
	if pm.HasEntry() {
		err = pm.store.UpdateFactor(factor)
	} else {
		err = pm.store.CreateFactor(factor)
	}
	if err != nil {
		log.Printf("❌ Failed to persist factor for user %s: %v", pm.userID, err)
		return false
	}
	return true
}
