// Package cache is the admin client's local cache: the four portfolio records
// stored under fixed keys in any fiber.Storage.
package cache

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/devportfolio/devportfolio/internal/portfolio"
)

// Keys of the cached records. All share the Prefix namespace.
const (
	Prefix          = "portfolio_"
	KeyPersonalInfo = Prefix + "personal_info"
	KeyProjects     = Prefix + "projects"
	KeySkills       = Prefix + "skills"
	KeyTheme        = Prefix + "theme"
)

var (
	// ErrStorageNil is returned by New when no storage is given.
	ErrStorageNil = errors.New("cache storage is nil")

	// ErrNotObject is logged when a personal info or theme record is not a JSON object.
	ErrNotObject = portfolio.ErrNotObject
)

// Cache reads and writes snapshots to a key/value storage. Writes are last
// write wins and never expire.
type Cache struct {
	storage fiber.Storage
}

// New creates a cache on top of storage.
func New(storage fiber.Storage) (*Cache, error) {
	if storage == nil {
		return nil, ErrStorageNil
	}

	return &Cache{storage: storage}, nil
}

// Read returns the raw value of key. Storage errors count as a miss.
func (c *Cache) Read(key string) ([]byte, bool) {
	val, err := c.storage.Get(key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		return nil, false
	}

	if len(val) == 0 {
		return nil, false
	}

	return val, true
}

// Write stores value under key.
func (c *Cache) Write(key string, value []byte) error {
	return c.storage.Set(key, value, 0)
}

// ReadSnapshot assembles a snapshot from the four records. It hydrates only
// when all four are present and the personal info and theme records parse.
// Projects or skills that are not lists are replaced by empty lists.
func (c *Cache) ReadSnapshot() (portfolio.Snapshot, bool) {
	var (
		s     portfolio.Snapshot
		err   error
		found = map[string][]byte{}
	)

	for _, key := range []string{KeyPersonalInfo, KeyProjects, KeySkills, KeyTheme} {
		val, ok := c.Read(key)
		if !ok {
			return portfolio.Snapshot{}, false
		}

		found[key] = val
	}

	if err = portfolio.DecodeObject(found[KeyPersonalInfo], &s.PersonalInfo); err != nil {
		malformed(KeyPersonalInfo, err)
		return portfolio.Snapshot{}, false
	}

	if err = portfolio.DecodeObject(found[KeyTheme], &s.ThemeSettings); err != nil {
		malformed(KeyTheme, err)
		return portfolio.Snapshot{}, false
	}

	if s.Projects, err = portfolio.DecodeProjects(found[KeyProjects]); err != nil {
		malformed(KeyProjects, err)
	}

	if s.Skills, err = portfolio.DecodeSkills(found[KeySkills]); err != nil {
		malformed(KeySkills, err)
	}

	s.Normalize()

	return s, true
}

// WriteSnapshot overwrites all four records. Every record is attempted even
// if an earlier one fails.
func (c *Cache) WriteSnapshot(s portfolio.Snapshot) error {
	s = s.Clone()
	s.Normalize()

	records := []struct {
		key   string
		value any
	}{
		{KeyPersonalInfo, s.PersonalInfo},
		{KeyProjects, s.Projects},
		{KeySkills, s.Skills},
		{KeyTheme, s.ThemeSettings},
	}

	var errs []error

	for _, r := range records {
		data, err := json.Marshal(r.value)
		if err == nil {
			err = c.Write(r.key, data)
		}

		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func malformed(key string, err error) {
	log.Warn().Err(err).Str("key", key).Msg("malformed cache entry")
}
