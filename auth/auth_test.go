// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "correct horse" {
		t.Error("HashPassword() returned the plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("HashPassword() = %q, want a bcrypt hash", hash)
	}

	// Salted: the same password hashes differently
	hash2, _ := HashPassword("correct horse")
	if hash == hash2 {
		t.Error("HashPassword() produced identical hashes for the same password")
	}
}

func TestHashPasswordLength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"exactly the limit", strings.Repeat("a", MaxPasswordBytes), nil},
		{"one byte over", strings.Repeat("a", MaxPasswordBytes+1), ErrPasswordTooLong},
		{"multibyte runes over in bytes", strings.Repeat("é", 37), ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := HashPassword(tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("HashPassword() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	tests := []struct {
		name     string
		hash     string
		password string
		wantErr  error
		anyErr   bool
	}{
		{"match", hash, "correct horse", nil, false},
		{"mismatch", hash, "battery staple", ErrInvalidPassword, true},
		{"empty password", hash, "", ErrInvalidPassword, true},
		{"corrupt hash", "not-a-hash", "correct horse", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPassword(tt.hash, tt.password)
			if !tt.anyErr {
				if err != nil {
					t.Errorf("CheckPassword() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("CheckPassword() error = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckPassword() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIssueAndParseToken(t *testing.T) {
	const secret = "test-secret"
	now := time.Now()

	token, err := IssueToken("alice", secret, time.Hour, now)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Errorf("IssueToken() = %q, want a three-part JWT", token)
	}

	username, err := ParseToken(token, secret)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if username != "alice" {
		t.Errorf("ParseToken() username = %q, want %q", username, "alice")
	}

	// Unique jti: two tokens for the same user at the same instant differ
	token2, _ := IssueToken("alice", secret, time.Hour, now)
	if token == token2 {
		t.Error("IssueToken() produced identical tokens")
	}
}

func TestParseTokenRejects(t *testing.T) {
	const secret = "test-secret"
	now := time.Now()

	valid, _ := IssueToken("alice", secret, time.Hour, now)
	expired, _ := IssueToken("alice", secret, time.Minute, now.Add(-time.Hour))

	noExpiry, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "alice",
	}).SignedString([]byte(secret))

	noSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte(secret))

	// Payload of another user's token under the first token's signature
	parts := strings.Split(valid, ".")
	forged, _ := IssueToken("mallory", secret, time.Hour, now)
	tampered := parts[0] + "." + strings.Split(forged, ".")[1] + "." + parts[2]

	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte(secret))

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"wrong secret", valid, "other-secret"},
		{"expired", expired, secret},
		{"no expiry", noExpiry, secret},
		{"no subject", noSubject, secret},
		{"other algorithm", hs512, secret},
		{"garbage", "not.a.token", secret},
		{"empty", "", secret},
		{"tampered", tampered, secret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.token, tt.secret)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ParseToken() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}
