package store

import "errors"

// ErrDBNil is returned by New without a database.
var ErrDBNil = errors.New("store database is nil")
