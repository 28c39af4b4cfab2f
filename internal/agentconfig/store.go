// Package agentconfig persists the external agent connection settings: the
// websocket endpoint the chat proxy dials, the model label it reports, and
// an optional API key kept encrypted at rest.
package agentconfig

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbmodel "codepanel/internal/db"
)

const (
	keyEndpoint  = "agent_ws_endpoint"
	keyModel     = "agent_model"
	keyAPIKeyEnc = "agent_api_key_enc"
)

type AgentConfig struct {
	Endpoint  string
	Model     string
	APIKey    string
	APIKeySet bool
}

type Store struct {
	db  *gorm.DB
	key []byte
}

// NewStore uses the shared global DB. Caller must not close the db. The
// secret file holds the key that encrypts the stored API key.
func NewStore(db *gorm.DB, secretPath string) (*Store, error) {
	if db == nil {
		return nil, errors.New("db is required")
	}
	key, err := loadOrCreateSecretKey(secretPath)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, key: key}, nil
}

func (s *Store) Save(cfg AgentConfig) error {
	if s == nil || s.db == nil {
		return errors.New("agent config store is not initialized")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := upsertSetting(tx, keyEndpoint, strings.TrimSpace(cfg.Endpoint)); err != nil {
			return err
		}
		if err := upsertSetting(tx, keyModel, strings.TrimSpace(cfg.Model)); err != nil {
			return err
		}
		if strings.TrimSpace(cfg.APIKey) == "" {
			return nil
		}
		enc, err := encryptSecret(cfg.APIKey, s.key)
		if err != nil {
			return err
		}
		return upsertSetting(tx, keyAPIKeyEnc, enc)
	})
}

func (s *Store) Load() (AgentConfig, error) {
	if s == nil || s.db == nil {
		return AgentConfig{}, errors.New("agent config store is not initialized")
	}

	out := AgentConfig{
		Endpoint: s.settingOr(keyEndpoint, ""),
		Model:    s.settingOr(keyModel, ""),
	}
	enc := s.settingOr(keyAPIKeyEnc, "")
	if enc == "" {
		return out, nil
	}
	plain, err := decryptSecret(enc, s.key)
	if err != nil {
		return AgentConfig{}, err
	}
	out.APIKey = plain
	out.APIKeySet = true
	return out, nil
}

func (s *Store) settingOr(key, fallback string) string {
	var row dbmodel.Setting
	err := s.db.Model(&dbmodel.Setting{}).Select("value").Where("key = ?", key).Take(&row).Error
	if err != nil {
		return fallback
	}
	return strings.TrimSpace(row.Value)
}

func upsertSetting(tx *gorm.DB, key, value string) error {
	row := dbmodel.Setting{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC().Unix(),
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]any{
			"value":      row.Value,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row).Error
}
