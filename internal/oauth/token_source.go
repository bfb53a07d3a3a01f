package oauth

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	go_json "github.com/goccy/go-json"
	"golang.org/x/oauth2"

	"github.com/garrettladley/huddle/internal/storage"
	"github.com/garrettladley/huddle/internal/xhttp"
)

// TokenKey is the storage key holding the persisted bearer token.
const TokenKey = "auth_token"

const (
	refreshPath    = "/auth/refresh"
	refreshTimeout = 10 * time.Second
	loadTimeout    = 5 * time.Second
)

var (
	ErrNoToken      = errors.New("no token found - run huddle auth login first")
	ErrTokenExpired = errors.New("token expired and no refresh token available")
)

type TokenChecker interface {
	HasToken(ctx context.Context) (bool, error)
}

var (
	_ oauth2.TokenSource = (*StoreTokenSource)(nil)
	_ TokenChecker       = (*StoreTokenSource)(nil)
)

// StoreTokenSource serves the token persisted in a storage.KV and renews it
// through the server's refresh endpoint once it expires.
type StoreTokenSource struct {
	serverURL string
	kv        storage.KV
	client    *http.Client

	mu    sync.Mutex
	token *oauth2.Token
}

func NewStoreTokenSource(serverURL string, kv storage.KV) *StoreTokenSource {
	return &StoreTokenSource{
		serverURL: strings.TrimRight(serverURL, "/"),
		kv:        kv,
		client:    xhttp.NewHTTPClient(xhttp.WithTimeout(refreshTimeout)),
	}
}

func (s *StoreTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != nil && s.token.Valid() {
		return s.token, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	token, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if token.Valid() {
		s.token = token
		return token, nil
	}

	if token.RefreshToken == "" {
		return nil, ErrTokenExpired
	}

	newToken, err := s.refresh(ctx, token.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	if err := Save(ctx, s.kv, newToken); err != nil {
		return nil, fmt.Errorf("failed to save refreshed token: %w", err)
	}

	s.token = newToken
	return newToken, nil
}

func (s *StoreTokenSource) HasToken(ctx context.Context) (bool, error) {
	_, err := s.kv.Get(ctx, TokenKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get token: %w", err)
	}
	return true, nil
}

func (s *StoreTokenSource) load(ctx context.Context) (*oauth2.Token, error) {
	data, err := s.kv.Get(ctx, TokenKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNoToken
		}
		return nil, fmt.Errorf("failed to load token: %w", err)
	}

	var token oauth2.Token
	if err := go_json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return &token, nil
}

func (s *StoreTokenSource) refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	body, err := go_json.Marshal(struct {
		RefreshToken string `json:"refresh_token"`
	}{
		RefreshToken: refreshToken,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.serverURL+refreshPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	xhttp.SetRequestHeaderContentTypeJSON(req)
	xhttp.SetRequestHeaderAcceptJSON(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("refresh failed with status %d", resp.StatusCode)
	}

	var respBody struct {
		AccessToken  string `json:"access_token"`
		TokenType    string `json:"token_type"`
		ExpiresIn    int    `json:"expires_in"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := go_json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	token := &oauth2.Token{
		AccessToken:  respBody.AccessToken,
		TokenType:    respBody.TokenType,
		RefreshToken: respBody.RefreshToken,
	}
	if respBody.ExpiresIn > 0 {
		token.Expiry = time.Now().Add(time.Duration(respBody.ExpiresIn) * time.Second)
	}
	// servers may rotate refresh tokens or omit them
	if token.RefreshToken == "" {
		token.RefreshToken = refreshToken
	}
	return token, nil
}

// Save persists token under TokenKey.
func Save(ctx context.Context, kv storage.KV, token *oauth2.Token) error {
	data, err := go_json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	if err := kv.Set(ctx, TokenKey, data); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

// Delete removes the persisted token.
func Delete(ctx context.Context, kv storage.KV) error {
	if err := kv.Delete(ctx, TokenKey); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
