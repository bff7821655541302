package storage

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ayacoo/mfa-sms-backend/internal/models"
)

// DatabaseStore persists factors in PostgreSQL via GORM.
type DatabaseStore struct {
	db *gorm.DB
}

func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func (d *DatabaseStore) GetFactor(userID string) (*models.Factor, error) {
	var factor models.Factor
	err := d.db.Where("user_id = ?", userID).First(&factor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFactorNotFound
		}
		return nil, err
	}
	return &factor, nil
}

func (d *DatabaseStore) HasFactor(userID string) bool {
	var count int64
	d.db.Model(&models.Factor{}).Where("user_id = ?", userID).Count(&count)
	return count > 0
}

func (d *DatabaseStore) CreateFactor(factor *models.Factor) error {
	return d.db.Create(factor).Error
}

func (d *DatabaseStore) UpdateFactor(factor *models.Factor) error {
	var existing models.Factor
	err := d.db.Where("user_id = ?", factor.UserID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFactorNotFound
		}
		return err
	}

	existing.Phone = factor.Phone
	existing.Active = factor.Active
	existing.AuthCode = factor.AuthCode
	existing.Attempts = factor.Attempts
	existing.LastUsed = factor.LastUsed

	// Save updates all fields so zero values (cleared code, reset
	// attempts) are written through.
	return d.db.Save(&existing).Error
}
