package contact

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/devportfolio/devportfolio/internal/db/models"
)

func TestCreateAndList(t *testing.T) {
	require.ErrorIs(t, Create(nil, &models.ContactMessage{}), ErrDBNil)

	_, err := List(nil)
	require.ErrorIs(t, err, ErrDBNil)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.ContactMessage{}))

	messages, err := List(db)
	require.NoError(t, err)
	assert.Empty(t, messages)
	assert.NotNil(t, messages)

	for _, name := range []string{"Ann", "Bob"} {
		require.NoError(t, Create(db, &models.ContactMessage{
			Name:    name,
			Email:   "a@example.com",
			Subject: "Hi",
			Message: "Hello",
		}))
	}

	messages, err = List(db)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "Ann", messages[0].Name)
	assert.Equal(t, "Bob", messages[1].Name)
	assert.False(t, messages[0].CreatedAt.IsZero())
}
