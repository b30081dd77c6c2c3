package store

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/robparra/chatbot/internal/models"
)

// ResponseStore persists the per-account response configuration.
type ResponseStore struct {
	db *gorm.DB
}

// NewResponseStore constructs a ResponseStore.
func NewResponseStore(db *gorm.DB) *ResponseStore {
	return &ResponseStore{db: db}
}

// GetAll returns the account's full key to value mapping. A missing
// configuration is an empty map, not an error. The single query gives the
// webhook a consistent point-in-time snapshot.
func (s *ResponseStore) GetAll(accountID uuid.UUID) (map[string]string, error) {
	var entries []models.ResponseEntry
	if err := s.db.Where("account_id = ?", accountID).Find(&entries).Error; err != nil {
		return nil, err
	}

	config := make(map[string]string, len(entries))
	for _, entry := range entries {
		config[entry.Key] = entry.Value
	}
	return config, nil
}

// Upsert inserts or replaces the value for (accountID, key) atomically.
// It fails with ErrUnknownAccount when no owning account exists.
func (s *ResponseStore) Upsert(accountID uuid.UUID, key, value string) error {
	var count int64
	if err := s.db.Model(&models.Account{}).Where("id = ?", accountID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrUnknownAccount
	}

	entry := models.ResponseEntry{
		AccountID: accountID,
		Key:       key,
		Value:     value,
	}

	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

// Get returns a single entry's value, or ErrEntryNotFound.
func (s *ResponseStore) Get(accountID uuid.UUID, key string) (string, error) {
	var entry models.ResponseEntry
	err := s.db.Where("account_id = ? AND key = ?", accountID, key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrEntryNotFound
		}
		return "", err
	}
	return entry.Value, nil
}

// ErrEntryNotFound is returned by Get for an absent (account, key) pair.
var ErrEntryNotFound = errors.New("response entry not found")
