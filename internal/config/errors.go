package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrEmptyUpstreamURL error if config upstream.url is empty.
	ErrEmptyUpstreamURL = errors.New("toml config upstream.url can not be empty")

	// ErrUnknownEngine error if a gorm engine is not one of sqlite, mysql or postgres.
	ErrUnknownEngine = errors.New("toml config db.gormengine is not supported")
)
