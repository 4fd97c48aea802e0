package auth

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/devportfolio/devportfolio/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}))

	return db
}

func TestAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	p := NewLocalProvider(db)

	loginAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return loginAt }

	_, err := p.CreateUser("admin", "s3cret")
	require.NoError(t, err)

	disabled, err := p.CreateUser("old", "s3cret")
	require.NoError(t, err)
	require.NoError(t, db.Model(disabled).Update("active", false).Error)

	testCases := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "valid", username: "admin", password: "s3cret"},
		{name: "wrong password", username: "admin", password: "nope", wantErr: ErrInvalidPassword},
		{name: "unknown user", username: "ghost", password: "s3cret", wantErr: ErrUserNotFound},
		{name: "disabled user", username: "old", password: "s3cret", wantErr: ErrUserAccountDisabled},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := p.Authenticate(tc.username, tc.password, "")
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, user.LastLogin)
			assert.True(t, loginAt.Equal(*user.LastLogin))
		})
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	p := NewLocalProvider(setupTestDB(t))

	_, err := p.CreateUser("admin", "a")
	require.NoError(t, err)

	_, err = p.CreateUser("admin", "b")
	require.ErrorIs(t, err, ErrUserExists)
}

func TestChangePassword(t *testing.T) {
	p := NewLocalProvider(setupTestDB(t))

	user, err := p.CreateUser("admin", "old")
	require.NoError(t, err)

	require.ErrorIs(t, p.ChangePassword(user.ID, "wrong", "new"), ErrInvalidOldPassword)
	require.NoError(t, p.ChangePassword(user.ID, "old", "new"))

	_, err = p.Authenticate("admin", "old", "")
	require.ErrorIs(t, err, ErrInvalidPassword)

	_, err = p.Authenticate("admin", "new", "")
	require.NoError(t, err)
}

func TestTOTP(t *testing.T) {
	p := NewLocalProvider(setupTestDB(t))

	user, err := p.CreateUser("admin", "pw")
	require.NoError(t, err)

	key, err := p.EnableTOTP(user.ID, "devportfolio")
	require.NoError(t, err)
	assert.Contains(t, key.URL(), "otpauth://totp/")

	_, err = p.Authenticate("admin", "pw", "000000x")
	require.ErrorIs(t, err, ErrInvalidCode)

	code, err := totp.GenerateCode(key.Secret(), time.Now())
	require.NoError(t, err)

	_, err = p.Authenticate("admin", "pw", code)
	require.NoError(t, err)

	require.NoError(t, p.DisableTOTP(user.ID))

	_, err = p.Authenticate("admin", "pw", "")
	require.NoError(t, err)
}
