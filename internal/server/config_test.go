package server

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	appenv "github.com/garrettladley/huddle/internal/env"
)

func TestParseAuthTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    map[string]string
		wantErr bool
	}{
		{name: "empty", in: "", want: map[string]string{}},
		{name: "single", in: "abc:alice", want: map[string]string{"abc": "alice"}},
		{name: "spaces and trailing comma", in: " abc : alice , def:bob,", want: map[string]string{"abc": "alice", "def": "bob"}},
		{name: "missing user", in: "abc:", wantErr: true},
		{name: "missing separator", in: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseAuthTokens(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAuthTokens() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseAuthTokens() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	rl := RateLimit{Limit: 10, Burst: 20}

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "development without database", cfg: Config{Env: appenv.Development, RateLimit: rl}},
		{name: "production with database", cfg: Config{Env: appenv.Production, DatabaseURL: "postgres://x", RateLimit: rl}},
		{name: "production without database", cfg: Config{Env: appenv.Production, RateLimit: rl}, wantErr: true},
		{name: "unknown environment", cfg: Config{Env: "staging", RateLimit: rl}, wantErr: true},
		{name: "bad tokens", cfg: Config{Env: appenv.Development, AuthTokens: "nope", RateLimit: rl}, wantErr: true},
		{name: "zero rate", cfg: Config{Env: appenv.Development}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTokenValidator(t *testing.T) {
	t.Parallel()

	v := NewTokenValidator(map[string]string{"abc": "alice", "def": "bob"})
	ctx := context.Background()

	user, err := v.ValidateAndGetUserID(ctx, "def")
	if err != nil {
		t.Fatalf("ValidateAndGetUserID() error = %v", err)
	}
	if user != "bob" {
		t.Errorf("user = %q, want %q", user, "bob")
	}

	if _, err := v.ValidateAndGetUserID(ctx, ""); !errors.Is(err, ErrMissingToken) {
		t.Errorf("empty token error = %v, want %v", err, ErrMissingToken)
	}
	if _, err := v.ValidateAndGetUserID(ctx, "zzz"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("unknown token error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestHashSecret(t *testing.T) {
	t.Parallel()

	if HashSecret("a") == HashSecret("b") {
		t.Error("distinct secrets hash equal")
	}
	if got := len(HashSecret("a")); got != 64 {
		t.Errorf("len(HashSecret()) = %d, want 64", got)
	}
}
