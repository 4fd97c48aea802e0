package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/pquerna/otp/totp"
	"github.com/rs/zerolog/log"
)

// User represents the admin account of the web service.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey"`
	// Active indicates whether the user account is active and can log in.
	Active bool
	// Username is the unique username for login.
	Username string `gorm:"unique;size:100;not null"`
	// Password is the Argon2id hashed password.
	Password string `gorm:"size:255" json:"-"`
	// TOTPSecret enables a second login factor when set.
	TOTPSecret string `gorm:"column:totp_secret;size:64" json:"-"`
	// LastLogin is the time of the last successful login.
	LastLogin *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the user's stored hashed password.
func (u *User) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}

// TwoFactorEnabled reports whether the user has a TOTP secret.
func (u *User) TwoFactorEnabled() bool {
	return u.TOTPSecret != ""
}

// VerifyCode checks a TOTP code. Users without a secret always pass.
func (u *User) VerifyCode(code string) bool {
	if !u.TwoFactorEnabled() {
		return true
	}

	return totp.Validate(code, u.TOTPSecret)
}
