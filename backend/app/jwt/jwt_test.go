package jwtutil

import (
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

func newSigner() *Signer {
	return &Signer{Secret: []byte("test-secret"), Issuer: "feedgate", ExpMin: 5}
}

func TestSignParse_RoundTrip(t *testing.T) {
	s := newSigner()
	tok, err := s.Sign("u-1", ScopeUser)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	claims, err := s.ParseScoped(tok, ScopeUser)
	if err != nil {
		t.Fatalf("ParseScoped: %v", err)
	}
	if claims.PrincipalID() != "u-1" {
		t.Errorf("principal = %q", claims.PrincipalID())
	}
	if claims.ID == "" {
		t.Error("expected jti")
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) > 5*time.Minute {
		t.Errorf("unexpected expiry %v", claims.ExpiresAt)
	}
}

func TestParseScoped_WrongScope(t *testing.T) {
	s := newSigner()
	tok, _ := s.Sign("m-1", ScopeModerator)
	if _, err := s.ParseScoped(tok, ScopeUser); !errors.Is(err, ErrWrongScope) {
		t.Fatalf("err = %v, want ErrWrongScope", err)
	}
}

func TestParse_Rejects(t *testing.T) {
	s := newSigner()
	good, _ := s.Sign("u-1", ScopeUser)

	other := &Signer{Secret: []byte("other"), Issuer: "feedgate", ExpMin: 5}
	forged, _ := other.Sign("u-1", ScopeUser)

	wrongIssuer := &Signer{Secret: s.Secret, Issuer: "someone-else", ExpMin: 5}
	foreign, _ := wrongIssuer.Sign("u-1", ScopeUser)

	expiredClaims := Claims{
		Scope: ScopeUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			Issuer:    "feedgate",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString(s.Secret)

	tests := map[string]string{
		"garbage":      "not-a-token",
		"empty":        "",
		"wrong secret": forged,
		"wrong issuer": foreign,
		"expired":      expired,
		"truncated":    good[:len(good)-4],
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Parse(tok); err == nil {
				t.Errorf("Parse(%s) should fail", name)
			}
		})
	}
}
