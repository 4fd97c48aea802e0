// Package db opens gorm connections for the configured engine.
package db

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/devportfolio/devportfolio/internal/config"
	"github.com/devportfolio/devportfolio/internal/db/dsn"
	gormadapter "github.com/devportfolio/devportfolio/internal/logger/adapter/gorm"
)

// Open connects to the database and migrates the given models.
func Open(dbCfg *config.DB, devMode bool, migrate ...interface{}) (*gorm.DB, error) {
	dialector, err := dsn.Dialector(dbCfg)
	if err != nil {
		return nil, err
	}

	if dialector.Name() == config.EngineSQLite && dbCfg.Path != ":memory:" {
		if err = os.MkdirAll(filepath.Dir(dbCfg.Path), 0o750); err != nil { //nolint:mnd
			return nil, errors.Wrap(err, "failed to create database directory")
		}
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormadapter.New(devMode)})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if dialector.Name() == config.EngineSQLite {
		// sqlite allows a single writer
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get database handle")
		}

		sqlDB.SetMaxOpenConns(1)
	}

	if len(migrate) > 0 {
		if err = db.AutoMigrate(migrate...); err != nil {
			return nil, errors.Wrap(err, "failed to migrate database")
		}
	}

	return db, nil
}
