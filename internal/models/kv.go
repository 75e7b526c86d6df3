package models

import (
	"time"

	"gorm.io/datatypes"
)

// KVDocument is a persisted key-value entry. Values are whole JSON documents
// and are always replaced atomically, never patched field by field.
type KVDocument struct {
	Key       string         `gorm:"primaryKey" json:"key"`
	Value     datatypes.JSON `gorm:"type:jsonb" json:"value"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (KVDocument) TableName() string { return "kv_documents" }
