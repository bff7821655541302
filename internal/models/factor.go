package models

import (
	"gorm.io/gorm"
)

// Factor is the persisted MFA registration state for one user.
type Factor struct {
	gorm.Model
	UserID   string `gorm:"uniqueIndex;not null"`
	Phone    string `gorm:"not null"` // E.164, e.g. +491721234567
	Active   bool   `gorm:"default:false"`
	AuthCode string // pending code, empty when none
	Attempts int    `gorm:"default:0"`
	LastUsed int64  `gorm:"default:0"` // epoch seconds, 0 = never
}

// UpdatedUnix returns the store-maintained modification time as epoch
// seconds, 0 when the factor was never persisted.
func (f *Factor) UpdatedUnix() int64 {
	if f.UpdatedAt.IsZero() {
		return 0
	}
	return f.UpdatedAt.Unix()
}
