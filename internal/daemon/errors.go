package daemon

import "errors"

// ErrConfigNil is returned when a daemon is created without configuration.
var ErrConfigNil = errors.New("config is nil")
