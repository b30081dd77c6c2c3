package handlers

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/robparra/chatbot/internal/auth"
	"github.com/robparra/chatbot/internal/config"
	"github.com/robparra/chatbot/internal/models"
	"github.com/robparra/chatbot/internal/store"
	"github.com/robparra/chatbot/internal/utils"
)

// AuthHandler bundles dependencies for registration and login.
type AuthHandler struct {
	accounts *store.AccountStore
	cfg      *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(accounts *store.AccountStore, cfg *config.Config) *AuthHandler {
	return &AuthHandler{accounts: accounts, cfg: cfg}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Plan     string `json:"plan"`
	Phone    string `json:"phone"`
}

// Register creates a new account.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing required fields")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid email format")
	}

	plan, err := models.ParsePlan(req.Plan)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unknown plan")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	account := models.Account{
		Email:        req.Email,
		PasswordHash: passwordHash,
		Plan:         plan,
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		account.Phone = &phone
	}

	if err := h.accounts.Create(&account); err != nil {
		if errors.Is(err, store.ErrEmailTaken) || errors.Is(err, store.ErrPhoneTaken) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"account": fiber.Map{
			"id":    account.ID,
			"email": account.Email,
			"plan":  account.Plan,
			"phone": account.Phone,
		},
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates an account and issues a bearer token carrying its id,
// email and plan.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	account, err := h.accounts.FindByEmail(strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, store.ErrUnknownAccount) {
			return fiber.NewError(fiber.StatusUnauthorized, "unknown email")
		}
		return err
	}

	if !utils.CheckPassword(account.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusForbidden, "incorrect password")
	}

	token, err := auth.GenerateToken(h.cfg.JWTSecret, account, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
	})
}
