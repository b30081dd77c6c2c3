package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/robparra/chatbot/internal/models"
)

var (
	// ErrInvalidToken covers malformed, expired and badly signed tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrForbidden is returned when a principal's plan is outside the
	// allowed set for a capability.
	ErrForbidden = errors.New("plan not allowed")
)

// Principal is the identity derived from a validated bearer credential.
// It is never persisted; validation is stateless.
type Principal struct {
	AccountID uuid.UUID
	Email     string
	Plan      models.Plan
}

type jwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Plan   string `json:"plan"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT carrying the account id, email and plan.
func GenerateToken(secret string, account *models.Account, ttl time.Duration) (string, error) {
	claims := &jwtCustomClaims{
		UserID: account.ID.String(),
		Email:  account.Email,
		Plan:   string(account.Plan),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates the token and returns the embedded principal.
func ParseToken(secret, tokenString string) (Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Principal{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	accountID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}

	plan, err := models.ParsePlan(claims.Plan)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}

	return Principal{AccountID: accountID, Email: claims.Email, Plan: plan}, nil
}

// Authorize checks the principal's plan against an explicit allowed set.
// There is no tier hierarchy; each capability names the plans it accepts.
func Authorize(p Principal, allowed ...models.Plan) error {
	if p.Plan.In(allowed...) {
		return nil
	}
	return ErrForbidden
}
