package handlers

import (
	"crypto/subtle"
	"encoding/xml"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/robparra/chatbot/internal/responder"
	"github.com/robparra/chatbot/internal/store"
)

// GenericReply answers webhook calls that cannot be resolved to an account
// or fail inside the store. The provider must always get a valid envelope,
// never a transport error.
const GenericReply = "Lo sentimos, no pudimos procesar tu mensaje en este momento."

// WebhookHandler receives inbound messages from the messaging provider.
type WebhookHandler struct {
	accounts  *store.AccountStore
	responses *store.ResponseStore
	router    *responder.Router
	authToken string
}

// NewWebhookHandler constructs a WebhookHandler. authToken optionally gates
// callbacks behind a shared secret passed as a query parameter.
func NewWebhookHandler(accounts *store.AccountStore, responses *store.ResponseStore, router *responder.Router, authToken string) *WebhookHandler {
	return &WebhookHandler{
		accounts:  accounts,
		responses: responses,
		router:    router,
		authToken: authToken,
	}
}

// Receive handles one inbound message. Every code path responds 200 with a
// reply envelope: a hard failure here would trigger provider-side retries.
func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	if h.authToken != "" {
		token := c.Query("token")
		if subtle.ConstantTimeCompare([]byte(token), []byte(h.authToken)) != 1 {
			log.Println("[Webhook] rejected callback with bad auth token")
			return replyEnvelope(c, GenericReply)
		}
	}

	body := c.FormValue("Body")
	sender := normalizeChannelIdentity(c.FormValue("From"))

	account, err := h.accounts.FindByPhone(sender)
	if err != nil {
		log.Printf("[Webhook] no account for sender %q: %v", sender, err)
		return replyEnvelope(c, GenericReply)
	}

	// Single snapshot per invocation: the reply is computed against one
	// consistent read, regardless of concurrent configuration writes.
	config, err := h.responses.GetAll(account.ID)
	if err != nil {
		log.Printf("[Webhook] failed to load configuration for account %s: %v", account.ID, err)
		return replyEnvelope(c, GenericReply)
	}

	reply := h.router.Route(c.Context(), body, config, account.Plan)
	return replyEnvelope(c, reply)
}

// normalizeChannelIdentity strips the provider's transport scheme prefix
// (e.g. "whatsapp:+5215512345678") and surrounding whitespace.
func normalizeChannelIdentity(from string) string {
	from = strings.TrimSpace(from)
	from = strings.TrimPrefix(from, "whatsapp:")
	return strings.TrimSpace(from)
}

type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

func replyEnvelope(c *fiber.Ctx, message string) error {
	out, err := xml.Marshal(twimlResponse{Message: message})
	if err != nil {
		// Marshalling a string cannot realistically fail; degrade anyway.
		log.Printf("[Webhook] failed to build reply envelope: %v", err)
		out = []byte("<Response><Message></Message></Response>")
	}

	c.Set(fiber.HeaderContentType, "text/xml")
	return c.Status(fiber.StatusOK).SendString(xml.Header + string(out))
}
