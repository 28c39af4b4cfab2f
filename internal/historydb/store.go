// Package historydb records recently used workspace roots.
package historydb

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbmodel "codepanel/internal/db"
)

type Entry struct {
	Path        string
	FirstOpened time.Time
	LastOpened  time.Time
	OpenCount   int
}

type Store struct {
	db *gorm.DB
}

// NewStore uses the shared global DB. Caller must not close the db.
func NewStore(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("db is required")
	}
	return &Store{db: db}, nil
}

func (s *Store) Upsert(path string) error {
	if s == nil || s.db == nil {
		return errors.New("workspace history store is not initialized")
	}
	p := strings.TrimSpace(path)
	if p == "" {
		return errors.New("path is required")
	}
	now := time.Now().UTC().Unix()
	row := dbmodel.WorkspaceHistory{
		Path:          p,
		FirstOpenedAt: now,
		LastOpenedAt:  now,
		OpenCount:     1,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "path"}},
		DoUpdates: clause.Assignments(map[string]any{
			"last_opened_at": now,
			"open_count":     gorm.Expr("workspace_history.open_count + 1"),
		}),
	}).Create(&row).Error
}

func (s *Store) List(limit int) ([]Entry, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("workspace history store is not initialized")
	}
	if limit <= 0 {
		limit = 20
	}
	rows := make([]dbmodel.WorkspaceHistory, 0, limit)
	if err := s.db.Order("last_opened_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{
			Path:        row.Path,
			FirstOpened: time.Unix(row.FirstOpenedAt, 0).UTC(),
			LastOpened:  time.Unix(row.LastOpenedAt, 0).UTC(),
			OpenCount:   row.OpenCount,
		})
	}
	return entries, nil
}

func (s *Store) Clear() error {
	if s == nil || s.db == nil {
		return errors.New("workspace history store is not initialized")
	}
	return s.db.Where("1 = 1").Delete(&dbmodel.WorkspaceHistory{}).Error
}
