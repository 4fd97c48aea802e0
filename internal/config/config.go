// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvConfigJSON names the environment variable holding a JSON config override.
	EnvConfigJSON = "DEVPORTFOLIO_CONFIG_JSON"

	defaultShutDownTime = 5
	defaultTimeout      = 8 * time.Second
	defaultKVTable      = "kv_store"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	v.SetConfigFile(filepath.Join(path, "main.toml"))
	v.SetConfigType("toml")
	setDefaults(v)

	if err = v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("Title", "devportfolio")
	v.SetDefault("Webserver.ShutDownTime", defaultShutDownTime)
	v.SetDefault("Webserver.Session.ExpiryTime", "24h")
	v.SetDefault("DB.GormEngine", EngineSQLite)
	v.SetDefault("DB.Path", "./data/web.db")
	v.SetDefault("Upstream.Timeout", defaultTimeout.String())
	v.SetDefault("Store.Port", 8000)
	v.SetDefault("Store.DB.GormEngine", EngineSQLite)
	v.SetDefault("Store.DB.Path", "./data/portfolio.db")
	v.SetDefault("Client.Timeout", defaultTimeout.String())
	v.SetDefault("Client.Cache.GormEngine", EngineSQLite)
	v.SetDefault("Client.Cache.Path", "./data/cache.db")
	v.SetDefault("Log.LogLevel", "info")
	v.SetDefault("Log.AppName", "devportfolio")
	v.SetDefault("Log.ServiceName", "devportfolio")
	v.SetDefault("Log.Console.Enabled", true)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate minimal config settings and fills in defaults that
// a partial JSON override may have zeroed.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	// validate webserver listening port
	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Upstream.URL == "" {
		return errors.Wrap(ErrEmptyUpstreamURL, invalidErrMessage)
	}

	for _, db := range []*DB{&c.DB, &c.Store.DB, &c.Client.Cache} {
		if err := validateDB(db); err != nil {
			return errors.Wrap(err, invalidErrMessage)
		}
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Upstream.Timeout == 0 {
		c.Upstream.Timeout = defaultTimeout
	}

	if c.Client.Timeout == 0 {
		c.Client.Timeout = defaultTimeout
	}

	return nil
}

func validateDB(db *DB) error {
	if db.GormEngine == "" {
		db.GormEngine = EngineSQLite
	}

	if db.Table == "" {
		db.Table = defaultKVTable
	}

	switch db.GormEngine {
	case EngineSQLite, EngineMySQL, EnginePostgres, EngineMemory:
		return nil
	default:
		return errors.Wrap(ErrUnknownEngine, db.GormEngine)
	}
}
