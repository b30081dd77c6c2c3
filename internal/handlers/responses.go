package handlers

import (
	"errors"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/robparra/chatbot/internal/middleware"
	"github.com/robparra/chatbot/internal/store"
)

// ResponsesHandler manages the authenticated account's response
// configuration.
type ResponsesHandler struct {
	responses *store.ResponseStore
}

// NewResponsesHandler constructs a ResponsesHandler.
func NewResponsesHandler(responses *store.ResponseStore) *ResponsesHandler {
	return &ResponsesHandler{responses: responses}
}

// GetResponses returns the caller's full key to value mapping.
func (h *ResponsesHandler) GetResponses(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	config, err := h.responses.GetAll(principal.AccountID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    config,
	})
}

type setResponsesRequest struct {
	Responses map[string]string `json:"responses"`
}

// SetResponses upserts a batch of key/value pairs for the caller's account.
// Each pair is written independently: a failure on one pair does not roll
// back pairs already written. Per-key failures are reported in the body.
func (h *ResponsesHandler) SetResponses(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req setResponsesRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.Responses) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no responses provided")
	}

	// Deterministic write order for a map payload.
	keys := make([]string, 0, len(req.Responses))
	for key := range req.Responses {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	failed := make(map[string]string)
	for _, key := range keys {
		trimmed := strings.TrimSpace(key)
		if trimmed == "" {
			failed[key] = "empty key"
			continue
		}

		if err := h.responses.Upsert(principal.AccountID, trimmed, req.Responses[key]); err != nil {
			if errors.Is(err, store.ErrUnknownAccount) {
				return fiber.NewError(fiber.StatusNotFound, "account not found")
			}
			failed[key] = err.Error()
		}
	}

	return c.JSON(fiber.Map{
		"success": len(failed) == 0,
		"updated": len(req.Responses) - len(failed),
		"failed":  failed,
	})
}
