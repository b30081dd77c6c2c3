package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/robparra/chatbot/internal/auth"
	"github.com/robparra/chatbot/internal/config"
	"github.com/robparra/chatbot/internal/database"
	"github.com/robparra/chatbot/internal/middleware"
	"github.com/robparra/chatbot/internal/models"
	"github.com/robparra/chatbot/internal/responder"
	"github.com/robparra/chatbot/internal/store"
	"github.com/robparra/chatbot/internal/utils"
)

type testEnv struct {
	app       *fiber.App
	cfg       *config.Config
	accounts  *store.AccountStore
	responses *store.ResponseStore
}

// newTestEnv builds the app with the same route shape as routes.Register,
// but over a throwaway sqlite database and an injectable completer.
func newTestEnv(t *testing.T, completer responder.Completer) *testEnv {
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

	cfg := &config.Config{
		JWTSecret:    "test-secret",
		TokenExpires: time.Hour,
		AdminToken:   "admin-secret",
	}

	accounts := store.NewAccountStore(db)
	responses := store.NewResponseStore(db)
	router := responder.New(completer)

	authHandler := NewAuthHandler(accounts, cfg)
	accountHandler := NewAccountHandler(accounts)
	responsesHandler := NewResponsesHandler(responses)
	aiHandler := NewAIHandler(responses, completer)
	adminHandler := NewAdminHandler(accounts)
	webhookHandler := NewWebhookHandler(accounts, responses, router, "")

	app := fiber.New()
	app.Post("/webhook", webhookHandler.Receive)

	api := app.Group("/api")
	api.Post("/users/register", authHandler.Register)
	api.Post("/users/login", authHandler.Login)

	protected := api.Group("", middleware.AuthMiddleware(cfg))
	protected.Get("/account", accountHandler.GetAccount)
	protected.Get("/responses", responsesHandler.GetResponses)
	protected.Post("/responses", responsesHandler.SetResponses)
	protected.Post("/ai/preview", middleware.RequirePlans(models.PlanPro, models.PlanPremium), aiHandler.Preview)

	api.Put("/admin/accounts/:id/plan", middleware.AdminAuthMiddleware(cfg.AdminToken), adminHandler.UpdatePlan)

	return &testEnv{app: app, cfg: cfg, accounts: accounts, responses: responses}
}

func (e *testEnv) createAccount(t *testing.T, email, phone string, plan models.Plan) *models.Account {
	t.Helper()

	hash, err := utils.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	account := &models.Account{Email: email, PasswordHash: hash, Plan: plan}
	if phone != "" {
		account.Phone = &phone
	}
	if err := e.accounts.Create(account); err != nil {
		t.Fatalf("create account %s: %v", email, err)
	}
	return account
}

func (e *testEnv) token(t *testing.T, account *models.Account) string {
	t.Helper()

	token, err := auth.GenerateToken(e.cfg.JWTSecret, account, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func (e *testEnv) request(t *testing.T, method, path, body, contentType, bearer string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := e.app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func (e *testEnv) postJSON(t *testing.T, path, body, bearer string) *http.Response {
	return e.request(t, http.MethodPost, path, body, fiber.MIMEApplicationJSON, bearer)
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values) *http.Response {
	return e.request(t, http.MethodPost, path, form.Encode(), fiber.MIMEApplicationForm, "")
}

type fakeCompleter struct {
	reply string
	err   error
	calls int
}

func (f *fakeCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}
