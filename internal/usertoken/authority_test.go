package usertoken

import (
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"printerstore/pkg/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestAuthority(t *testing.T, cfg Config) *Authority {
	t.Helper()
	if cfg.Secret == "" {
		cfg.Secret = testSecret
	}
	a, err := NewAuthority(cfg)
	if err != nil {
		t.Fatalf("new authority: %v", err)
	}
	return a
}

func TestIssueAndVerify(t *testing.T) {
	a := newTestAuthority(t, Config{})
	user := domain.User{ID: 42, Username: "alice", Role: domain.RoleDealer}

	token, err := a.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := a.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "alice" || claims.Role != domain.RoleDealer {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestVerifyRejectsShortSecret(t *testing.T) {
	if _, err := NewAuthority(Config{Secret: "short"}); err == nil {
		t.Fatalf("expected error for short secret")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	a := newTestAuthority(t, Config{})
	other := newTestAuthority(t, Config{Secret: "ffffffffffffffffffffffffffffffff"})

	token, err := other.Issue(domain.User{ID: 1, Username: "x", Role: domain.RoleEndUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := a.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	a := newTestAuthority(t, Config{TTL: time.Hour, Leeway: time.Millisecond})

	now := time.Now().UTC().Add(-2 * time.Hour)
	claims := tokenClaims{
		Username: "alice",
		Role:     "dealer",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			Issuer:    defaultIssuer,
			Audience:  jwt.ClaimStrings{defaultAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := a.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsUnsignedAlg(t *testing.T) {
	a := newTestAuthority(t, Config{})
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			Issuer:    defaultIssuer,
			Audience:  jwt.ClaimStrings{defaultAudience},
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := a.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	a := newTestAuthority(t, Config{})
	now := time.Now().UTC()
	claims := tokenClaims{
		Username: "mallory",
		Role:     "superadmin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			Issuer:    defaultIssuer,
			Audience:  jwt.ClaimStrings{defaultAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := a.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}
