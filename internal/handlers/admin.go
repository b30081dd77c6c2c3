package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/robparra/chatbot/internal/models"
	"github.com/robparra/chatbot/internal/store"
)

// AdminHandler manages operator-only endpoints.
type AdminHandler struct {
	accounts *store.AccountStore
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(accounts *store.AccountStore) *AdminHandler {
	return &AdminHandler{accounts: accounts}
}

type updatePlanRequest struct {
	Plan string `json:"plan"`
}

// UpdatePlan changes an account's subscription tier. Plan changes are an
// operator action; account tokens issued before the change keep their old
// plan until they expire or the owner logs in again.
func (h *AdminHandler) UpdatePlan(c *fiber.Ctx) error {
	accountID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid account id")
	}

	var req updatePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	plan, err := models.ParsePlan(req.Plan)
	if err != nil || req.Plan == "" {
		return fiber.NewError(fiber.StatusBadRequest, "unknown plan")
	}

	if err := h.accounts.UpdatePlan(accountID, plan); err != nil {
		if errors.Is(err, store.ErrUnknownAccount) {
			return fiber.NewError(fiber.StatusNotFound, "account not found")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"plan":    plan,
	})
}
