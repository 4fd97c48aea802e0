package config

// Supported values for DB.GormEngine.
const (
	EngineSQLite   = "sqlite"
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
	EngineMemory   = "memory" // key/value storages only, lost on exit
)

// DB holds the database configuration settings.
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	Path       string // sqlite file, ":memory:" for an in-memory database
	Table      string // key/value table used by storage backends
	GormEngine string
}
