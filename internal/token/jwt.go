package token

import (
	"errors"
	"time"

	"shopcore/internal/config"
	"shopcore/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrMissingSecret is returned by NewJWTIssuer when no signing secret is
// configured. Token signing cannot degrade to an empty key.
var ErrMissingSecret = errors.New("jwt signing secret is not configured")

// Issuer signs and validates access tokens for users. Tokens are stateless
// and not revocable; validity is solely signature plus expiry at validation
// time.
type Issuer interface {
	// Issue produces a signed token bound to the user's identity.
	Issue(user *domain.User) (string, error)
	// Validate verifies the token and returns the subject user ID. Any
	// verification failure reads as an unauthenticated caller, so it
	// reports absence instead of an error.
	Validate(tokenString string) (uuid.UUID, bool)
}

// Claims is the claim set carried by issued tokens.
type Claims struct {
	Username string `json:"unique_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// jwtIssuer implements Issuer with HMAC-SHA256 signing. The clock is a field
// so tests can pin time; expiry is validated with zero leeway.
type jwtIssuer struct {
	secret   []byte
	issuer   string
	audience string
	lifetime time.Duration
	now      func() time.Time
}

// NewJWTIssuer creates an Issuer from the JWT configuration. It fails when
// the signing secret is absent.
func NewJWTIssuer(cfg config.JWTConfig) (Issuer, error) {
	return newJWTIssuer(cfg, time.Now)
}

func newJWTIssuer(cfg config.JWTConfig, now func() time.Time) (*jwtIssuer, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}

	lifetime := time.Duration(cfg.ExpiryMinutes) * time.Minute
	if lifetime <= 0 {
		lifetime = time.Duration(config.DefaultJWTExpiryMinutes) * time.Minute
	}

	return &jwtIssuer{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		lifetime: lifetime,
		now:      now,
	}, nil
}

// Issue signs a token carrying the user's ID as subject plus username, email
// and role claims. Each token gets a fresh jti so two tokens for the same
// user are never identical.
func (i *jwtIssuer) Issue(user *domain.User) (string, error) {
	if user == nil {
		return "", domain.ErrInvalidArgument
	}

	now := i.now().UTC()
	claims := &Claims{
		Username: user.Username(),
		Email:    user.Email(),
		Role:     user.Role(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID().String(),
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(i.lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Validate checks signature, issuer, audience and expiry (no leeway) and
// returns the subject user ID on success.
func (i *jwtIssuer) Validate(tokenString string) (uuid.UUID, bool) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)

	claims := &Claims{}
	parsed, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}
