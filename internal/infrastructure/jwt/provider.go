package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the JWT payload fields. The "id" claim name matches tokens
// issued by earlier deployments.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 JWTs with a process-wide secret.
type Provider struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewProvider(secret string, expiry time.Duration) (*Provider, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if expiry <= 0 {
		return nil, fmt.Errorf("jwt expiry must be positive, got %s", expiry)
	}
	return &Provider{secret: []byte(secret), expiry: expiry, now: time.Now}, nil
}

func (p *Provider) Sign(userID string) (string, error) {
	now := p.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(p.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

func (p *Provider) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(p.now))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.UserID == "" {
		return nil, errors.New("token has no user id")
	}
	return claims, nil
}
