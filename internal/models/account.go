package models

// Account represents a registered bot owner.
type Account struct {
	BaseModel
	Email        string          `gorm:"uniqueIndex;not null" json:"email"`
	Phone        *string         `gorm:"uniqueIndex" json:"phone,omitempty"`
	PasswordHash string          `json:"-"`
	Plan         Plan            `gorm:"type:varchar(16);not null;default:'basic'" json:"plan"`
	Responses    []ResponseEntry `json:"responses,omitempty"`
}
