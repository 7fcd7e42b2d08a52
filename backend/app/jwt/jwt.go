package jwtutil

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Scope string

const (
	ScopeUser      Scope = "user"
	ScopeModerator Scope = "moderator"
)

var ErrWrongScope = errors.New("token scope mismatch")

type Claims struct {
	Scope Scope `json:"scope"`
	jwt.RegisteredClaims
}

// PrincipalID is the user or moderator id the token was minted for.
func (c *Claims) PrincipalID() string { return c.Subject }

type Signer struct {
	Secret []byte
	Issuer string
	ExpMin int
}

func (s *Signer) TTL() time.Duration {
	return time.Duration(s.ExpMin) * time.Minute
}

func (s *Signer) Sign(principalID string, scope Scope) (string, error) {
	now := time.Now()
	claims := Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   principalID,
			Issuer:    s.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL())),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

func (s *Signer) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) { return s.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.Subject != "" {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}

// ParseScoped parses the token and additionally requires the given scope.
func (s *Signer) ParseScoped(tokenStr string, scope Scope) (*Claims, error) {
	claims, err := s.Parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Scope != scope {
		return nil, ErrWrongScope
	}
	return claims, nil
}
