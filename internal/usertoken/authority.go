package usertoken

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"printerstore/pkg/domain"
)

const (
	defaultIssuer   = "printerstore-api"
	defaultAudience = "printerstore-clients"
	defaultTTL      = 24 * time.Hour
	defaultLeeway   = 30 * time.Second

	minSecretLength = 32
)

// ErrInvalidToken covers every verification failure: bad signature,
// expired, wrong issuer or audience, malformed claims. Callers must not
// leak the underlying reason to clients.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload carried by an access token.
type Claims struct {
	UserID   uint
	Username string
	Role     domain.Role
}

type tokenClaims struct {
	Username string `json:"username"`
	Role     string `json:"userType"`
	jwt.RegisteredClaims
}

// Config configures access-token issuing and verification.
type Config struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
	Leeway   time.Duration
}

// Authority issues and validates user access tokens (HS256).
type Authority struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	leeway   time.Duration
}

// NewAuthority creates a token authority.
func NewAuthority(cfg Config) (*Authority, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("token secret must be at least %d characters", minSecretLength)
	}
	issuer := strings.TrimSpace(cfg.Issuer)
	if issuer == "" {
		issuer = defaultIssuer
	}
	audience := strings.TrimSpace(cfg.Audience)
	if audience == "" {
		audience = defaultAudience
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	leeway := cfg.Leeway
	if leeway <= 0 {
		leeway = defaultLeeway
	}
	return &Authority{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		leeway:   leeway,
	}, nil
}

// Issue signs a token for the user, valid for the configured TTL.
func (a *Authority) Issue(user domain.User) (string, error) {
	now := time.Now().UTC()
	claims := tokenClaims{
		Username: user.Username,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    a.issuer,
			Audience:  jwt.ClaimStrings{a.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates the token and returns its claims.
func (a *Authority) Verify(token string) (Claims, error) {
	parsed := tokenClaims{}
	result, err := jwt.ParseWithClaims(token, &parsed, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(a.issuer),
		jwt.WithAudience(a.audience),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(a.leeway),
	)
	if err != nil || !result.Valid {
		return Claims{}, ErrInvalidToken
	}
	subject := strings.TrimSpace(parsed.Subject)
	userID, err := strconv.ParseUint(subject, 10, 64)
	if err != nil || userID == 0 {
		return Claims{}, ErrInvalidToken
	}
	role, ok := domain.ParseRole(parsed.Role)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	return Claims{
		UserID:   uint(userID),
		Username: parsed.Username,
		Role:     role,
	}, nil
}
