// Package kv provides fiber.Storage implementations for sessions and the
// admin client's local cache.
package kv

import (
	"errors"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/devportfolio/devportfolio/internal/db/models"
)

const defaultGCInterval = 10 * time.Second

// ErrEmptyTable is returned when no table name is given.
var ErrEmptyTable = errors.New("kv table name cannot be empty")

var _ fiber.Storage = (*Storage)(nil)

// Storage is a fiber.Storage backed by a gorm table. Expired entries are
// invisible to Get and removed periodically.
type Storage struct {
	db    *gorm.DB
	table string
	now   func() time.Time

	done      chan struct{}
	closeOnce sync.Once
}

// New migrates the table and starts the expiry sweeper. A gcInterval of zero
// uses the default.
func New(db *gorm.DB, table string, gcInterval time.Duration) (*Storage, error) {
	if table == "" {
		return nil, ErrEmptyTable
	}

	if err := db.Table(table).AutoMigrate(&models.Entry{}); err != nil {
		return nil, err
	}

	if gcInterval <= 0 {
		gcInterval = defaultGCInterval
	}

	s := &Storage{
		db:    db,
		table: table,
		now:   time.Now,
		done:  make(chan struct{}),
	}

	go s.gcTicker(gcInterval)

	return s, nil
}

func (s *Storage) tx() *gorm.DB {
	return s.db.Table(s.table)
}

// Get returns the value for key, or nil when the key is missing or expired.
func (s *Storage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}

	var entry models.Entry

	err := s.tx().
		Where("k = ? AND (e = 0 OR e > ?)", key, s.now().Unix()).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return entry.Value, nil
}

// Set stores val under key. A zero exp never expires.
func (s *Storage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}

	entry := models.Entry{Key: key, Value: val}
	if exp > 0 {
		entry.ExpiresAt = s.now().Add(exp).Unix()
	}

	return s.tx().Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "k"}},
		DoUpdates: clause.AssignmentColumns([]string{"v", "e"}),
	}).Create(&entry).Error
}

// Delete removes key.
func (s *Storage) Delete(key string) error {
	if key == "" {
		return nil
	}

	return s.tx().Where("k = ?", key).Delete(&models.Entry{}).Error
}

// Reset removes every entry of the table.
func (s *Storage) Reset() error {
	return s.tx().Where("1 = 1").Delete(&models.Entry{}).Error
}

// Close stops the expiry sweeper. The database handle stays open.
func (s *Storage) Close() error {
	s.closeOnce.Do(func() { close(s.done) })

	return nil
}

func (s *Storage) gcTicker(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.gc()
		}
	}
}

func (s *Storage) gc() {
	s.tx().Where("e > 0 AND e <= ?", s.now().Unix()).Delete(&models.Entry{})
}
