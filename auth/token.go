package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens issues and verifies the HS256 session tokens the API uses.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens creates a token issuer from the configuration.
func NewTokens(cfg *Config) (*Tokens, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg = cfg.MergeDefaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Tokens{secret: []byte(cfg.Secret), ttl: cfg.TokenTTL}, nil
}

// Issue returns a signed token whose subject is the user id.
func (t *Tokens) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", ErrSign(err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the user id it carries.
func (t *Tokens) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnexpectedSigningMethod(tok.Method.Alg())
		}
		return t.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken(err)
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrMissingSubject
	}
	return claims.Subject, nil
}
