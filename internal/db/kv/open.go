package kv

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/memory/v2"
	mysqlstorage "github.com/gofiber/storage/mysql/v2"
	pgstorage "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"

	"github.com/devportfolio/devportfolio/internal/config"
	"github.com/devportfolio/devportfolio/internal/db"
	"github.com/devportfolio/devportfolio/internal/db/dsn"
)

// Open returns the storage for the configured engine: the gofiber mysql and
// postgres storages for those engines, the gorm storage for sqlite and the
// gofiber memory storage for memory.
func Open(dbCfg *config.DB, devMode bool) (fiber.Storage, error) {
	if dbCfg.Table == "" {
		return nil, ErrEmptyTable
	}

	log.Debug().Str("engine", dbCfg.GormEngine).Str("table", dbCfg.Table).Msg("opening kv storage")

	switch dbCfg.GormEngine {
	case config.EngineMySQL:
		return mysqlstorage.New(mysqlstorage.Config{
			ConnectionURI: dsn.Create(dbCfg),
			Table:         dbCfg.Table,
		}), nil
	case config.EngineMemory:
		return memory.New(), nil
	case config.EnginePostgres:
		return pgstorage.New(pgstorage.Config{
			ConnectionURI: dsn.Postgres(dbCfg),
			Table:         dbCfg.Table,
		}), nil
	default:
		gdb, err := db.Open(dbCfg, devMode)
		if err != nil {
			return nil, err
		}

		return New(gdb, dbCfg.Table, 0)
	}
}
