package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/robparra/chatbot/internal/middleware"
	"github.com/robparra/chatbot/internal/models"
	"github.com/robparra/chatbot/internal/responder"
	"github.com/robparra/chatbot/internal/store"
)

// AIHandler exposes the plan-gated prompt preview endpoint. Unlike the
// webhook, failures here surface to the caller: the shop owner is debugging
// their prompt and wants to see them.
type AIHandler struct {
	responses *store.ResponseStore
	completer responder.Completer
}

// NewAIHandler constructs an AIHandler.
func NewAIHandler(responses *store.ResponseStore, completer responder.Completer) *AIHandler {
	return &AIHandler{responses: responses, completer: completer}
}

type previewRequest struct {
	Message string `json:"message"`
}

// Preview runs the caller's configured custom_prompt against a sample
// message. Routed behind RequirePlans(pro, premium).
func (h *AIHandler) Preview(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req previewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing message")
	}

	prompt, err := h.responses.Get(principal.AccountID, models.KeyCustomPrompt)
	if err != nil && !errors.Is(err, store.ErrEntryNotFound) {
		return err
	}
	if strings.TrimSpace(prompt) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "custom_prompt is not configured")
	}

	if h.completer == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "completion service not configured")
	}

	reply, err := h.completer.Complete(c.Context(), prompt, strings.ToLower(message))
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "completion failed")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"reply":   strings.TrimSpace(reply),
	})
}
