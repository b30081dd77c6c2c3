// Package responder resolves an inbound chat message to an outbound reply
// against a point-in-time snapshot of one account's response configuration.
package responder

import (
	"context"
	"log"
	"strings"

	"github.com/robparra/chatbot/internal/models"
)

// Completer generates a reply from an account-supplied system prompt and the
// inbound message. The real implementation calls a language-model API.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// Built-in replies, used when an account has not configured its own.
const (
	// DefaultGreeting answers anything that is not a recognized menu input.
	DefaultGreeting = "👋 ¡Hola! Soy el asistente virtual de tu tienda.\n" +
		"¿Cómo puedo ayudarte?\n" +
		"1️⃣ Ver productos destacados\n" +
		"2️⃣ Consultar disponibilidad\n" +
		"3️⃣ Formas de pago\n" +
		"4️⃣ Hablar con atención al cliente"

	// NoCatalogReply answers a catalog request when catalog_url is unset.
	NoCatalogReply = "Lo sentimos, no hay catálogo disponible por el momento."

	// CompletionFallbackReply is used when the completion adapter fails.
	// It is distinct from every configurable template so a degraded AI path
	// is visible to the shop owner.
	CompletionFallbackReply = "Lo siento, no puedo responder a eso en este momento. Por favor intenta de nuevo más tarde."
)

var menuOptions = map[string]string{
	"1": models.KeyOption1,
	"2": models.KeyOption2,
	"3": models.KeyOption3,
	"4": models.KeyOption4,
}

// Router decides the reply for an inbound message.
type Router struct {
	completer Completer
}

// New constructs a Router. completer may be nil, in which case the AI path
// degrades to the fallback notice.
func New(completer Completer) *Router {
	return &Router{completer: completer}
}

// Route resolves an inbound message to a reply. It never returns an empty
// string and never fails: adapter errors degrade to a fallback notice.
// config is a snapshot fetched once by the caller; Route does not read the
// store.
func (r *Router) Route(ctx context.Context, inbound string, config map[string]string, plan models.Plan) string {
	msg := strings.ToLower(strings.TrimSpace(inbound))

	if plan.In(models.AIEligiblePlans...) {
		if prompt := strings.TrimSpace(config[models.KeyCustomPrompt]); prompt != "" {
			return r.complete(ctx, prompt, msg)
		}
	}

	if key, ok := menuOptions[msg]; ok {
		if value := config[key]; value != "" {
			return value
		}
		return r.greeting(config)
	}

	if msg == "catalogo" || msg == "catálogo" {
		if value := config[models.KeyCatalogURL]; value != "" {
			return value
		}
		return NoCatalogReply
	}

	return r.greeting(config)
}

func (r *Router) complete(ctx context.Context, prompt, msg string) string {
	if r.completer == nil {
		log.Println("[Responder] completion requested but no adapter configured")
		return CompletionFallbackReply
	}

	reply, err := r.completer.Complete(ctx, prompt, msg)
	if err != nil {
		log.Printf("[Responder] completion failed: %v", err)
		return CompletionFallbackReply
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		log.Println("[Responder] completion returned empty reply")
		return CompletionFallbackReply
	}
	return reply
}

func (r *Router) greeting(config map[string]string) string {
	if value := config[models.KeyGreeting]; value != "" {
		return value
	}
	return DefaultGreeting
}
