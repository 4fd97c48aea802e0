package models

// Entry is a row of a key/value table, laid out like the gofiber storage
// tables (k, v, e). The table name is chosen at runtime, so Entry is always
// used through db.Table(name).
type Entry struct {
	Key       string `gorm:"column:k;primaryKey;size:191"`
	Value     []byte `gorm:"column:v"`
	ExpiresAt int64  `gorm:"column:e;index;not null;default:0"` // unix seconds, 0 never expires
}
