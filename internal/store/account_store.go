package store

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/robparra/chatbot/internal/models"
)

// AccountStore persists accounts.
type AccountStore struct {
	db *gorm.DB
}

// NewAccountStore constructs an AccountStore.
func NewAccountStore(db *gorm.DB) *AccountStore {
	return &AccountStore{db: db}
}

// Create inserts a new account. It fails with ErrEmailTaken or ErrPhoneTaken
// when another account already holds the identifier; the existing account is
// left untouched.
func (s *AccountStore) Create(account *models.Account) error {
	var existing models.Account
	err := s.db.Where("email = ?", account.Email).First(&existing).Error
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if account.Phone != nil {
		err = s.db.Where("phone = ?", *account.Phone).First(&existing).Error
		if err == nil {
			return ErrPhoneTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	if err := s.db.Create(account).Error; err != nil {
		// The pre-checks race against concurrent registrations; the unique
		// indexes are the authority.
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// FindByID loads an account by its id.
func (s *AccountStore) FindByID(id uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := s.db.First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownAccount
		}
		return nil, err
	}
	return &account, nil
}

// FindByEmail loads an account by its login email.
func (s *AccountStore) FindByEmail(email string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownAccount
		}
		return nil, err
	}
	return &account, nil
}

// FindByPhone resolves an account by its inbound channel phone identifier.
func (s *AccountStore) FindByPhone(phone string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("phone = ?", phone).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownAccount
		}
		return nil, err
	}
	return &account, nil
}

// UpdatePlan changes an account's subscription tier. Used by the
// administrative endpoint only; accounts are otherwise immutable.
func (s *AccountStore) UpdatePlan(id uuid.UUID, plan models.Plan) error {
	result := s.db.Model(&models.Account{}).Where("id = ?", id).Update("plan", plan)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUnknownAccount
	}
	return nil
}

func isUniqueViolation(err error) bool {
	// lib/pq reports 23505, sqlite "UNIQUE constraint failed". Matching the
	// message keeps the store driver-agnostic.
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
