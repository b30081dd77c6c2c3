package store

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/robparra/chatbot/internal/database"
	"github.com/robparra/chatbot/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(t.TempDir()+"/test.db"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createAccount(t *testing.T, accounts *AccountStore, email, phone string, plan models.Plan) *models.Account {
	t.Helper()

	account := &models.Account{
		Email:        email,
		PasswordHash: "x",
		Plan:         plan,
	}
	if phone != "" {
		account.Phone = &phone
	}
	if err := accounts.Create(account); err != nil {
		t.Fatalf("create account %s: %v", email, err)
	}
	return account
}
