package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User represents a registered account. Password always holds the bcrypt
// hash; the plaintext is never persisted.
type User struct {
	gorm.Model
	Name      string    `gorm:"size:255;not null"`
	BirthDate time.Time `gorm:"not null"`
	Email     string    `gorm:"size:255;unique;not null"`
	Password  string    `gorm:"size:255;not null"`

	IsVerified        bool
	VerificationToken string `gorm:"size:128"`

	// Refresh-token state. Cleared on logout, replaced on every
	// login/refresh (single-use rotation).
	RefreshToken       *string `gorm:"size:128;index"`
	RefreshTokenExpiry *time.Time

	CharacterCount int `gorm:"not null;default:0"`

	Characters []Character `gorm:"foreignKey:UserID"`
}

// CheckPassword compares a candidate plaintext against the stored hash.
// It returns false on mismatch, never an error.
func (u *User) CheckPassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate)) == nil
}
