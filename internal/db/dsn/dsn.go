// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/devportfolio/devportfolio/internal/config"
)

// ErrMissingPath is returned when a sqlite database has no file path.
var ErrMissingPath = errors.New("sqlite database needs a path")

// Create builds the MySQL Data Source Name from the configuration.
func Create(dbCfg *config.DB) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.Name,
		dbCfg.Extras,
	)

	return out
}

// Postgres builds a postgres connection URI. Extras are appended as the
// query string, sslmode defaults to disable.
func Postgres(dbCfg *config.DB) string {
	query, err := url.ParseQuery(dbCfg.Extras)
	if err != nil {
		query = url.Values{}
	}

	if query.Get("sslmode") == "" {
		query.Set("sslmode", "disable")
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(dbCfg.User, dbCfg.Password),
		Host:     dbCfg.Host + ":" + strconv.Itoa(dbCfg.Port),
		Path:     "/" + dbCfg.Name,
		RawQuery: query.Encode(),
	}

	return u.String()
}

// Dialector returns the gorm dialector for the configured engine.
func Dialector(dbCfg *config.DB) (gorm.Dialector, error) {
	switch dbCfg.GormEngine {
	case config.EngineMySQL:
		return mysql.Open(Create(dbCfg)), nil
	case config.EnginePostgres:
		return postgres.Open(Postgres(dbCfg)), nil
	case config.EngineSQLite, "":
		if dbCfg.Path == "" {
			return nil, ErrMissingPath
		}

		return sqlite.Open(dbCfg.Path), nil
	default:
		return nil, errors.Wrap(config.ErrUnknownEngine, dbCfg.GormEngine)
	}
}
