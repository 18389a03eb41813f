package models

import "time"

// KVEntry is one row of the SQL-backed key-value store.
type KVEntry struct {
	Key       string `gorm:"column:key_name;primaryKey;size:191"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// TableName pins the table name regardless of gorm's pluralisation rules.
func (KVEntry) TableName() string {
	return "kv_entries"
}
