package store

import "errors"

// Sentinel errors returned by the stores. Handlers map these onto HTTP
// status codes; the webhook path swallows them into a generic reply.
var (
	ErrUnknownAccount = errors.New("account not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrPhoneTaken     = errors.New("phone already registered")
)
