package dbstore

import (
	"time"
)

// KVItemModel is a single key-value pair. The clip collection is stored
// as one row holding the serialized array.
type KVItemModel struct {
	Key       string    `gorm:"primaryKey;size:100"`
	Value     string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for KVItemModel
func (KVItemModel) TableName() string {
	return "kv_items"
}
