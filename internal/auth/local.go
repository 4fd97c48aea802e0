package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"gorm.io/gorm"

	"github.com/devportfolio/devportfolio/internal/db/models"
)

// LocalProvider handles local database authentication.
type LocalProvider struct {
	db  *gorm.DB
	now func() time.Time
}

const whereID = "id = ?"

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{
		db:  db,
		now: time.Now,
	}
}

// Authenticate authenticates a user against the local database. The code is
// only checked for accounts with a TOTP secret.
func (p *LocalProvider) Authenticate(username, password, code string) (*models.User, error) {
	user, err := p.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}

	// Check if user is active
	if !user.Active {
		return nil, ErrUserAccountDisabled
	}

	// Verify password
	if !user.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	if !user.VerifyCode(code) {
		return nil, ErrInvalidCode
	}

	now := p.now()
	user.LastLogin = &now

	if err := p.db.Model(user).Update("last_login", now).Error; err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}

	return user, nil
}

// CreateUser creates a new active local user.
func (p *LocalProvider) CreateUser(username, password string) (*models.User, error) {
	// Check if user already exists
	var existingUser models.User

	err := p.db.Where("username = ?", username).First(&existingUser).Error
	if err == nil {
		return nil, ErrUserExists
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	user := models.User{
		Active:   true,
		Username: username,
		Password: models.HashPassword(password),
	}

	if err := p.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// ChangePassword changes a user's password.
func (p *LocalProvider) ChangePassword(userID uint64, oldPassword, newPassword string) error {
	user, err := p.GetUserByID(userID)
	if err != nil {
		return err
	}

	// Verify old password
	if !user.VerifyPassword(oldPassword) {
		return ErrInvalidOldPassword
	}

	return p.ResetPassword(userID, newPassword)
}

// ResetPassword sets a new password without checking the old one.
func (p *LocalProvider) ResetPassword(userID uint64, newPassword string) error {
	return p.db.Model(&models.User{}).
		Where(whereID, userID).
		Update("password", models.HashPassword(newPassword)).Error
}

// EnableTOTP generates and stores a new TOTP secret for the user. The returned
// key carries the otpauth URL for authenticator apps.
func (p *LocalProvider) EnableTOTP(userID uint64, issuer string) (*otp.Key, error) {
	user, err := p.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: user.Username,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate totp key: %w", err)
	}

	if err := p.db.Model(user).Update("totp_secret", key.Secret()).Error; err != nil {
		return nil, fmt.Errorf("failed to store totp secret: %w", err)
	}

	return key, nil
}

// DisableTOTP removes the user's TOTP secret.
func (p *LocalProvider) DisableTOTP(userID uint64) error {
	return p.db.Model(&models.User{}).
		Where(whereID, userID).
		Update("totp_secret", "").Error
}

// GetUserByID retrieves a user by ID.
func (p *LocalProvider) GetUserByID(userID uint64) (*models.User, error) {
	var user models.User
	if err := p.db.First(&user, userID).Error; err != nil {
		return nil, notFound(err)
	}

	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (p *LocalProvider) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := p.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err)
	}

	return &user, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}

	return fmt.Errorf("failed to query user: %w", err)
}
