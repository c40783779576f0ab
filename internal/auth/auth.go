// Package auth resolves the calling user from a request.
package auth

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingUser  = errors.New("missing user")
)

// DevUserHeader names the user when no signing secret is configured.
const DevUserHeader = "X-User-ID"

// Identity is the authenticated caller. Token is forwarded as is to the
// budget API.
type Identity struct {
	UserID string
	Token  string
}

type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier returns a verifier for HS256 tokens. An empty secret puts the
// verifier in development mode, where the user comes from DevUserHeader.
func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer}
}

func (v *Verifier) DevMode() bool {
	return len(v.secret) == 0
}

func (v *Verifier) ParseAndValidate(tokenStr string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	claims := new(Claims)
	token, err := jwt.NewParser(opts...).ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Authenticate resolves the caller from the Authorization header value and,
// in development mode, the DevUserHeader value.
func (v *Verifier) Authenticate(authorization, devUser string) (Identity, error) {
	token := bearer(authorization)
	if v.DevMode() {
		if devUser == "" {
			return Identity{}, ErrMissingUser
		}
		return Identity{UserID: devUser, Token: token}, nil
	}
	if token == "" {
		return Identity{}, ErrMissingUser
	}
	claims, err := v.ParseAndValidate(token)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: claims.Subject, Token: token}, nil
}

// Sign issues an HS256 token carrying claims.
func (v *Verifier) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

func bearer(h string) string {
	const prefix = "bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}
