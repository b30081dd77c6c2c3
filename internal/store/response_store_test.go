package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/robparra/chatbot/internal/models"
)

func TestResponseStore_GetAllEmpty(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountStore(db)
	responses := NewResponseStore(db)

	account := createAccount(t, accounts, "shop@example.com", "", models.PlanBasic)

	config, err := responses.GetAll(account.ID)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(config) != 0 {
		t.Errorf("GetAll = %v, want empty map", config)
	}
}

func TestResponseStore_UpsertAndGetAll(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountStore(db)
	responses := NewResponseStore(db)

	account := createAccount(t, accounts, "shop@example.com", "", models.PlanBasic)

	if err := responses.Upsert(account.ID, models.KeyGreeting, "hola"); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := responses.Upsert(account.ID, models.KeyOption1, "productos"); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	config, err := responses.GetAll(account.ID)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if config[models.KeyGreeting] != "hola" || config[models.KeyOption1] != "productos" {
		t.Errorf("GetAll = %v", config)
	}

	// Overwriting one key must leave the others alone.
	if err := responses.Upsert(account.ID, models.KeyGreeting, "bienvenido"); err != nil {
		t.Fatalf("Upsert overwrite: %v", err)
	}

	config, err = responses.GetAll(account.ID)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if config[models.KeyGreeting] != "bienvenido" {
		t.Errorf("greeting = %q, want overwritten value", config[models.KeyGreeting])
	}
	if config[models.KeyOption1] != "productos" {
		t.Errorf("option1 = %q, want untouched value", config[models.KeyOption1])
	}
	if len(config) != 2 {
		t.Errorf("len(config) = %d, want 2", len(config))
	}
}

func TestResponseStore_PerAccountIsolation(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountStore(db)
	responses := NewResponseStore(db)

	first := createAccount(t, accounts, "a@example.com", "", models.PlanBasic)
	second := createAccount(t, accounts, "b@example.com", "", models.PlanBasic)

	if err := responses.Upsert(first.ID, models.KeyGreeting, "hola de A"); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := responses.Upsert(second.ID, models.KeyGreeting, "hola de B"); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	configA, err := responses.GetAll(first.ID)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	configB, err := responses.GetAll(second.ID)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}

	if configA[models.KeyGreeting] != "hola de A" {
		t.Errorf("account A greeting = %q", configA[models.KeyGreeting])
	}
	if configB[models.KeyGreeting] != "hola de B" {
		t.Errorf("account B greeting = %q", configB[models.KeyGreeting])
	}
}

func TestResponseStore_UpsertUnknownAccount(t *testing.T) {
	db := newTestDB(t)
	responses := NewResponseStore(db)

	err := responses.Upsert(uuid.New(), models.KeyGreeting, "hola")
	if !errors.Is(err, ErrUnknownAccount) {
		t.Errorf("Upsert error = %v, want ErrUnknownAccount", err)
	}
}

func TestResponseStore_Get(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountStore(db)
	responses := NewResponseStore(db)

	account := createAccount(t, accounts, "shop@example.com", "", models.PlanPro)

	if _, err := responses.Get(account.ID, models.KeyCustomPrompt); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("Get error = %v, want ErrEntryNotFound", err)
	}

	if err := responses.Upsert(account.ID, models.KeyCustomPrompt, "sé amable"); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	value, err := responses.Get(account.ID, models.KeyCustomPrompt)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != "sé amable" {
		t.Errorf("Get = %q", value)
	}
}
