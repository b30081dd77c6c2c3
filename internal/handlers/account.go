package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/robparra/chatbot/internal/middleware"
	"github.com/robparra/chatbot/internal/store"
)

// AccountHandler serves the authenticated account's profile.
type AccountHandler struct {
	accounts *store.AccountStore
}

// NewAccountHandler constructs an AccountHandler.
func NewAccountHandler(accounts *store.AccountStore) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// GetAccount returns the caller's account details.
func (h *AccountHandler) GetAccount(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	account, err := h.accounts.FindByID(principal.AccountID)
	if err != nil {
		if errors.Is(err, store.ErrUnknownAccount) {
			return fiber.NewError(fiber.StatusNotFound, "account not found")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":         account.ID,
			"email":      account.Email,
			"phone":      account.Phone,
			"plan":       account.Plan,
			"created_at": account.CreatedAt,
			"updated_at": account.UpdatedAt,
		},
	})
}
