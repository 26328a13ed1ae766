package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"shopcore/internal/config"
	"shopcore/internal/domain"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:        "test-secret-key",
		Issuer:        config.DefaultJWTIssuer,
		Audience:      config.DefaultJWTAudience,
		ExpiryMinutes: 60,
	}
}

func testUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := domain.NewUser("alice", "alice@example.com", "digest", "User")
	if err != nil {
		t.Fatalf("failed to build test user: %v", err)
	}
	return user
}

func TestNewJWTIssuer_MissingSecret(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Secret = ""

	_, err := NewJWTIssuer(cfg)
	if !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestJWTIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewJWTIssuer(testJWTConfig())
	if err != nil {
		t.Fatalf("NewJWTIssuer failed: %v", err)
	}

	user := testUser(t)
	tokenString, err := issuer.Issue(user)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Compact serialization: three base64url segments.
	if parts := strings.Split(tokenString, "."); len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}

	userID, ok := issuer.Validate(tokenString)
	if !ok {
		t.Fatal("Validate rejected a freshly issued token")
	}
	if userID != user.ID() {
		t.Errorf("subject = %s, want %s", userID, user.ID())
	}
}

func TestJWTIssuer_UniqueTokenIDs(t *testing.T) {
	issuer, err := NewJWTIssuer(testJWTConfig())
	if err != nil {
		t.Fatalf("NewJWTIssuer failed: %v", err)
	}

	user := testUser(t)
	first, err := issuer.Issue(user)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	second, err := issuer.Issue(user)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if first == second {
		t.Error("two tokens for the same user must differ (fresh jti)")
	}
}

func TestJWTIssuer_Expiry(t *testing.T) {
	issuedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	now := issuedAt
	issuer, err := newJWTIssuer(testJWTConfig(), func() time.Time { return now })
	if err != nil {
		t.Fatalf("newJWTIssuer failed: %v", err)
	}

	tokenString, err := issuer.Issue(testUser(t))
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Just inside the lifetime.
	now = issuedAt.Add(59 * time.Minute)
	if _, ok := issuer.Validate(tokenString); !ok {
		t.Error("token should still be valid before expiry")
	}

	// Past the lifetime; there is no grace window.
	now = issuedAt.Add(60*time.Minute + time.Second)
	if _, ok := issuer.Validate(tokenString); ok {
		t.Error("token must be rejected after expiry")
	}
}

func TestJWTIssuer_DefaultLifetime(t *testing.T) {
	cfg := testJWTConfig()
	cfg.ExpiryMinutes = 0

	issuedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	now := issuedAt
	issuer, err := newJWTIssuer(cfg, func() time.Time { return now })
	if err != nil {
		t.Fatalf("newJWTIssuer failed: %v", err)
	}

	tokenString, err := issuer.Issue(testUser(t))
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	now = issuedAt.Add(59 * time.Minute)
	if _, ok := issuer.Validate(tokenString); !ok {
		t.Error("unset lifetime should default to 60 minutes")
	}
	now = issuedAt.Add(61 * time.Minute)
	if _, ok := issuer.Validate(tokenString); ok {
		t.Error("token should expire after the default 60 minutes")
	}
}

func TestJWTIssuer_RejectsTamperedToken(t *testing.T) {
	issuer, err := NewJWTIssuer(testJWTConfig())
	if err != nil {
		t.Fatalf("NewJWTIssuer failed: %v", err)
	}

	tokenString, err := issuer.Issue(testUser(t))
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Flip the last character of the signature segment.
	replacement := byte('A')
	if tokenString[len(tokenString)-1] == 'A' {
		replacement = 'B'
	}
	tampered := tokenString[:len(tokenString)-1] + string(replacement)

	if _, ok := issuer.Validate(tampered); ok {
		t.Error("tampered token must be rejected")
	}
}

func TestJWTIssuer_RejectsWrongSecretIssuerAudience(t *testing.T) {
	issuer, err := NewJWTIssuer(testJWTConfig())
	if err != nil {
		t.Fatalf("NewJWTIssuer failed: %v", err)
	}
	tokenString, err := issuer.Issue(testUser(t))
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(cfg *config.JWTConfig)
	}{
		{"different secret", func(cfg *config.JWTConfig) { cfg.Secret = "other-secret" }},
		{"different issuer", func(cfg *config.JWTConfig) { cfg.Issuer = "SomeoneElse" }},
		{"different audience", func(cfg *config.JWTConfig) { cfg.Audience = "SomeoneElseUsers" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testJWTConfig()
			tc.mutate(&cfg)
			verifier, err := NewJWTIssuer(cfg)
			if err != nil {
				t.Fatalf("NewJWTIssuer failed: %v", err)
			}
			if _, ok := verifier.Validate(tokenString); ok {
				t.Error("token must be rejected by a mismatched verifier")
			}
		})
	}
}

func TestJWTIssuer_RejectsMalformedToken(t *testing.T) {
	issuer, err := NewJWTIssuer(testJWTConfig())
	if err != nil {
		t.Fatalf("NewJWTIssuer failed: %v", err)
	}

	for _, tokenString := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, ok := issuer.Validate(tokenString); ok {
			t.Errorf("malformed token %q must be rejected", tokenString)
		}
	}
}

func TestJWTIssuer_IssueNilUser(t *testing.T) {
	issuer, err := NewJWTIssuer(testJWTConfig())
	if err != nil {
		t.Fatalf("NewJWTIssuer failed: %v", err)
	}

	if _, err := issuer.Issue(nil); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected an invalid-argument error, got %v", err)
	}
}
