package models

import (
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserVerifyPassword(t *testing.T) {
	u := User{Username: "admin", Password: HashPassword("changeme")}

	assert.True(t, u.VerifyPassword("changeme"))
	assert.False(t, u.VerifyPassword("wrong"))

	broken := User{Password: "not-a-hash"}
	assert.False(t, broken.VerifyPassword("changeme"))
}

func TestUserVerifyCode(t *testing.T) {
	key, err := totp.Generate(totp.GenerateOpts{Issuer: "devportfolio", AccountName: "admin"})
	require.NoError(t, err)

	u := User{Username: "admin", TOTPSecret: key.Secret()}
	require.True(t, u.TwoFactorEnabled())

	code, err := totp.GenerateCode(key.Secret(), time.Now())
	require.NoError(t, err)

	assert.True(t, u.VerifyCode(code))
	assert.False(t, u.VerifyCode("000000x"))

	plain := User{Username: "admin"}
	assert.False(t, plain.TwoFactorEnabled())
	assert.True(t, plain.VerifyCode(""))
}
