// Package token mints and validates the signed session credential pair.
//
// Credentials are self-contained EdDSA-signed JWTs carrying the subject
// identity, its role at issuance time, and an embedded expiry. Validation is
// a pure function over the token, the configured key, and the clock; no
// server-side session state or revocation list exists, so a credential stays
// valid until its natural expiry.
package token

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/louisbranch/taskhub/internal/auth/user"
	"github.com/louisbranch/taskhub/internal/platform/config"
	apperrors "github.com/louisbranch/taskhub/internal/platform/errors"
)

// Type discriminates the two credentials of a session pair.
type Type string

const (
	// TypeAccess marks the short-lived credential presented on API calls.
	TypeAccess Type = "access"
	// TypeRefresh marks the long-lived credential used to mint new pairs.
	TypeRefresh Type = "refresh"
)

var (
	// ErrInvalid indicates a malformed, unsigned, or otherwise unusable token.
	ErrInvalid = apperrors.E(apperrors.KindUnauthorized, "token is invalid")
	// ErrExpired indicates a token past its embedded expiry.
	ErrExpired = apperrors.E(apperrors.KindUnauthorized, "token is expired")
	// ErrTypeMismatch indicates a token presented where the other credential
	// type is required.
	ErrTypeMismatch = apperrors.E(apperrors.KindUnauthorized, "token type mismatch")
)

// tokenEnv holds raw env values before post-parse validation.
type tokenEnv struct {
	Issuer     string        `env:"TASKHUB_TOKEN_ISSUER" envDefault:"taskhub"`
	PrivateKey string        `env:"TASKHUB_TOKEN_PRIVATE_KEY"`
	PublicKey  string        `env:"TASKHUB_TOKEN_PUBLIC_KEY"`
	AccessTTL  time.Duration `env:"TASKHUB_ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTTL time.Duration `env:"TASKHUB_REFRESH_TOKEN_TTL" envDefault:"720h"`
}

// Config defines how session credentials are signed and verified. It is
// loaded once at startup and never mutated afterwards.
type Config struct {
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	PrivateKey ed25519.PrivateKey
	PublicKey  ed25519.PublicKey
	Now        func() time.Time
}

// Claims captures the validated claim set of a session credential.
type Claims struct {
	UserID    string
	Role      user.Role
	Type      Type
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Pair is the access/refresh credential pair returned by login.
type Pair struct {
	Access  string
	Refresh string
}

// sessionClaims is the internal claims type used for JWT signing and parsing.
type sessionClaims struct {
	jwt.RegisteredClaims
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
}

// LoadConfigFromEnv reads session credential configuration. The signing key
// pair is required; TTLs and issuer fall back to defaults.
func LoadConfigFromEnv(now func() time.Time) (Config, error) {
	var raw tokenEnv
	if err := config.ParseEnv(&raw); err != nil {
		return Config{}, fmt.Errorf("parse token env: %w", err)
	}
	privateKey := strings.TrimSpace(raw.PrivateKey)
	publicKey := strings.TrimSpace(raw.PublicKey)
	if privateKey == "" {
		return Config{}, fmt.Errorf("TASKHUB_TOKEN_PRIVATE_KEY is required")
	}
	if publicKey == "" {
		return Config{}, fmt.Errorf("TASKHUB_TOKEN_PUBLIC_KEY is required")
	}
	privateBytes, err := decodeBase64(privateKey)
	if err != nil {
		return Config{}, fmt.Errorf("decode token private key: %w", err)
	}
	if len(privateBytes) != ed25519.PrivateKeySize {
		return Config{}, fmt.Errorf("token private key must be %d bytes", ed25519.PrivateKeySize)
	}
	publicBytes, err := decodeBase64(publicKey)
	if err != nil {
		return Config{}, fmt.Errorf("decode token public key: %w", err)
	}
	if len(publicBytes) != ed25519.PublicKeySize {
		return Config{}, fmt.Errorf("token public key must be %d bytes", ed25519.PublicKeySize)
	}
	if raw.AccessTTL <= 0 || raw.RefreshTTL <= 0 {
		return Config{}, fmt.Errorf("token TTLs must be positive")
	}
	if now == nil {
		now = time.Now
	}
	return Config{
		Issuer:     strings.TrimSpace(raw.Issuer),
		AccessTTL:  raw.AccessTTL,
		RefreshTTL: raw.RefreshTTL,
		PrivateKey: ed25519.PrivateKey(privateBytes),
		PublicKey:  ed25519.PublicKey(publicBytes),
		Now:        now,
	}, nil
}

// Issue mints a session credential pair for a resolved identity. The role
// claim reflects the identity's role at issuance time; later role changes do
// not affect already-issued credentials.
func Issue(u user.User, cfg Config) (Pair, error) {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if len(cfg.PrivateKey) != ed25519.PrivateKeySize {
		return Pair{}, errors.New("token issuer is not configured")
	}
	if strings.TrimSpace(u.ID) == "" {
		return Pair{}, errors.New("user id is required")
	}

	access, err := sign(u, TypeAccess, cfg.AccessTTL, cfg)
	if err != nil {
		return Pair{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := sign(u, TypeRefresh, cfg.RefreshTTL, cfg)
	if err != nil {
		return Pair{}, fmt.Errorf("sign refresh token: %w", err)
	}
	return Pair{Access: access, Refresh: refresh}, nil
}

// Validate verifies an access credential and resolves its claim set. Any
// failure means the caller must be treated as anonymous, not as an error.
func Validate(raw string, cfg Config) (Claims, error) {
	return validate(raw, TypeAccess, cfg)
}

// ValidateRefresh verifies a refresh credential for the re-issuance flow.
func ValidateRefresh(raw string, cfg Config) (Claims, error) {
	return validate(raw, TypeRefresh, cfg)
}

func sign(u user.User, typ Type, ttl time.Duration, cfg Config) (string, error) {
	issuedAt := cfg.Now().UTC()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
		Role:      string(u.Role),
		TokenType: string(typ),
	}
	return jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(cfg.PrivateKey)
}

func validate(raw string, want Type, cfg Config) (Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Claims{}, ErrInvalid
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if len(cfg.PublicKey) != ed25519.PublicKeySize {
		return Claims{}, errors.New("token validator is not configured")
	}

	var parsed sessionClaims
	_, err := jwt.ParseWithClaims(raw, &parsed, func(token *jwt.Token) (any, error) {
		return cfg.PublicKey, nil
	},
		jwt.WithValidMethods([]string{"EdDSA"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return Claims{}, ErrInvalid
	}

	if cfg.Issuer != "" && parsed.Issuer != cfg.Issuer {
		return Claims{}, ErrInvalid
	}
	if strings.TrimSpace(parsed.Subject) == "" {
		return Claims{}, ErrInvalid
	}
	if parsed.TokenType != string(want) {
		return Claims{}, ErrTypeMismatch
	}
	role, err := user.ParseRole(parsed.Role)
	if err != nil || strings.TrimSpace(parsed.Role) == "" {
		return Claims{}, ErrInvalid
	}
	if parsed.ExpiresAt == nil {
		return Claims{}, ErrInvalid
	}
	if !cfg.Now().Before(parsed.ExpiresAt.Time) {
		return Claims{}, ErrExpired
	}

	claims := Claims{
		UserID:    parsed.Subject,
		Role:      role,
		Type:      Type(parsed.TokenType),
		ExpiresAt: parsed.ExpiresAt.Time,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time
	}
	return claims, nil
}

func decodeBase64(value string) ([]byte, error) {
	if decoded, err := base64.RawStdEncoding.DecodeString(value); err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(value)
}
