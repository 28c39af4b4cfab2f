package db

// WorkspaceHistory tracks workspace roots the user has started
// conversations from. Workspace context snapshots themselves are never
// stored.
type WorkspaceHistory struct {
	Path          string `gorm:"column:path;primaryKey"`
	FirstOpenedAt int64  `gorm:"column:first_opened_at;not null;default:0"`
	LastOpenedAt  int64  `gorm:"column:last_opened_at;not null;default:0"`
	OpenCount     int    `gorm:"column:open_count;not null;default:0"`
}

func (WorkspaceHistory) TableName() string { return "workspace_history" }

// Setting is a generic key-value row for small persisted settings, including
// the encrypted agent credentials.
type Setting struct {
	Key       string `gorm:"column:key;primaryKey"`
	Value     string `gorm:"column:value;not null;default:''"`
	UpdatedAt int64  `gorm:"column:updated_at;not null;default:0"`
}

func (Setting) TableName() string { return "settings" }
