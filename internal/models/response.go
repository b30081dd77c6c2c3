package models

import "github.com/google/uuid"

// Well-known response keys. Accounts may store arbitrary keys; the router
// only interprets these.
const (
	KeyGreeting     = "greeting"
	KeyOption1      = "option1"
	KeyOption2      = "option2"
	KeyOption3      = "option3"
	KeyOption4      = "option4"
	KeyCatalogURL   = "catalog_url"
	KeyCustomPrompt = "custom_prompt"
)

// ResponseEntry stores one keyed reply template for an account. Keys are
// unique per account, not globally.
type ResponseEntry struct {
	BaseModel
	AccountID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_responses_account_key" json:"account_id"`
	Key       string    `gorm:"size:64;not null;uniqueIndex:idx_responses_account_key" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
}
