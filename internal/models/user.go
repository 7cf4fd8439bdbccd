package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// unusablePassword marks an account that cannot log in with a password.
const unusablePassword = "!"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"size:255;not null;default:''" json:"name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	IsStaff      bool      `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser  bool      `gorm:"not null;default:false" json:"is_superuser"`
}

// NormalizeEmail lower-cases the domain part of an address and leaves the
// local part untouched.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// SetPassword hashes raw with bcrypt. An empty password leaves the account
// without a usable password.
func (u *User) SetPassword(raw string) error {
	if raw == "" {
		u.PasswordHash = unusablePassword
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether raw matches the stored hash.
func (u *User) CheckPassword(raw string) bool {
	if raw == "" || u.PasswordHash == "" || strings.HasPrefix(u.PasswordHash, unusablePassword) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(raw)) == nil
}
