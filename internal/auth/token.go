package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/fieldkeep/fieldkeep/internal/utils"
	"github.com/fieldkeep/fieldkeep/pkg/rbac"
	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "fieldkeep"

var ErrInvalidToken = errors.New("invalid session token")

type sessionClaims struct {
	jwt.RegisteredClaims

	UserID   int    `json:"uid"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Tokens issues and verifies signed session tokens. Tokens are HS256 JWTs
// carrying the user's id, username and role.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	clock  utils.Clock
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  &utils.SystemClock{},
	}
}

func (t *Tokens) Issue(s Session) (string, error) {
	now := t.clock.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   s.UserUID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		UserID:   s.UserID,
		Username: s.Username,
		Role:     string(s.Role),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("could not sign session token: %w", err)
	}
	return signed, nil
}

func (t *Tokens) Verify(tokenString string) (Session, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.clock.Now),
	)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Session{}, ErrInvalidToken
	}

	role, err := rbac.ParseRole(claims.Role)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return Session{
		UserID:   claims.UserID,
		UserUID:  claims.Subject,
		Username: claims.Username,
		Role:     role,
	}, nil
}
