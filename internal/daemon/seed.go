package daemon

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/devportfolio/devportfolio/internal/auth"
	"github.com/devportfolio/devportfolio/internal/config"
	"github.com/devportfolio/devportfolio/internal/db/models"
)

const defaultAdminUsername = "admin"

// seed creates the admin account from the config if the user table is empty.
// Without a configured password a random one is generated and logged once.
func seed(cfg *config.Config, db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	username := cfg.Admin.Username
	if username == "" {
		username = defaultAdminUsername
	}

	password := cfg.Admin.Password
	generated := password == ""

	if generated {
		password = uuid.NewString()
	}

	user, err := auth.NewLocalProvider(db).CreateUser(username, password)
	if err != nil {
		return err
	}

	if cfg.Admin.TOTPSecret != "" {
		if err = db.Model(user).Update("totp_secret", cfg.Admin.TOTPSecret).Error; err != nil {
			return err
		}
	}

	event := log.Info().Str("username", username).Bool("totp", cfg.Admin.TOTPSecret != "")
	if generated {
		event = event.Str("password", password)
	}

	event.Msg("created admin user")

	return nil
}
