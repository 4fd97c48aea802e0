// Package snapshot persists the portfolio snapshot as a setting blob.
package snapshot

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/devportfolio/devportfolio/internal/db/controller/setting"
	"github.com/devportfolio/devportfolio/internal/portfolio"
)

const (
	// SettingKeySnapshot is the key used to store the portfolio in the settings table.
	SettingKeySnapshot = "portfolio_snapshot"
)

// Record is the stored snapshot and the time of its last write.
type Record struct {
	portfolio.Snapshot
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
}

// Load loads the record from the database. A missing record returns
// setting.ErrSettingNotFound.
func (r *Record) Load(db *gorm.DB) error {
	s, err := setting.Get(db, SettingKeySnapshot)
	if err != nil {
		return err
	}

	snap, err := portfolio.Decode(s.Value)
	if err != nil {
		return err
	}

	var meta struct {
		LastUpdated *time.Time `json:"lastUpdated"`
	}

	// a bad timestamp does not invalidate the snapshot
	_ = json.Unmarshal(s.Value, &meta)

	r.Snapshot = snap
	r.LastUpdated = meta.LastUpdated

	return nil
}

// Save stamps LastUpdated with now and writes the record.
func (r *Record) Save(db *gorm.DB, now time.Time) error {
	now = now.UTC()
	r.LastUpdated = &now
	r.Normalize()

	data, err := json.Marshal(r)
	if err != nil {
		return err
	}

	return setting.Set(db, SettingKeySnapshot, data)
}

// Exists reports whether a snapshot has been stored.
func Exists(db *gorm.DB) bool {
	_, err := setting.Get(db, SettingKeySnapshot)

	return err == nil
}
