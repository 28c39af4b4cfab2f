package db

import (
	"errors"

	"gorm.io/gorm"
)

// SyncSchema creates or updates tables and indexes from the models. There is
// no legacy data to carry, so versioned migrations are not used.
func SyncSchema(gdb *gorm.DB) error {
	if gdb == nil {
		return errors.New("db is required")
	}
	if err := gdb.AutoMigrate(
		&WorkspaceHistory{},
		&Setting{},
	); err != nil {
		return err
	}
	return gdb.Exec(`CREATE INDEX IF NOT EXISTS idx_workspace_history_last_opened ON workspace_history(last_opened_at DESC);`).Error
}
