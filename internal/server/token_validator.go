package server

import (
	"context"
	"crypto/subtle"
	"errors"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid bearer token")
)

// TokenValidator resolves bearer tokens to user IDs. Tokens are held only as
// hashes.
type TokenValidator struct {
	users map[string]string
}

func NewTokenValidator(tokens map[string]string) *TokenValidator {
	users := make(map[string]string, len(tokens))
	for token, user := range tokens {
		users[HashSecret(token)] = user
	}
	return &TokenValidator{users: users}
}

func (v *TokenValidator) ValidateAndGetUserID(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrMissingToken
	}

	hash := HashSecret(token)
	for known, user := range v.users {
		if subtle.ConstantTimeCompare([]byte(known), []byte(hash)) == 1 {
			return user, nil
		}
	}
	return "", ErrInvalidToken
}
