package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"shopapi/internal/models"
	"shopapi/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

const accessTokenName = "authToken"

// Principal is the authenticated caller of a request: the user and the
// exact token they presented.
type Principal struct {
	User  *models.User
	Token *models.AccessToken
}

// TokenIssuer mints, resolves and revokes bearer tokens.
//
// A bearer token is an HS256-signed envelope carrying the token id and 32
// random bytes. Only its SHA-256 digest is stored, so a leaked table cannot
// be replayed; resolution re-hashes the presented token and compares digests.
type TokenIssuer struct {
	tokens repositories.AccessTokenRepository
	users  repositories.UserRepository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates a new TokenIssuer.
func NewTokenIssuer(tokens repositories.AccessTokenRepository, users repositories.UserRepository, secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		tokens: tokens,
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue creates a new active token for user and returns the raw bearer string.
func (s *TokenIssuer) Issue(ctx context.Context, user *models.User) (string, *models.AccessToken, error) {
	nonce := make([]byte, 32)
	if _, err := rand.Read(nonce); err != nil {
		return "", nil, fmt.Errorf("failed to generate token entropy: %w", err)
	}

	id := uuid.New().String()
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"jti": id,
		"sub": user.ID,
		"iat": issuedAt.Unix(),
		"exp": expiresAt.Unix(),
		"rnd": base64.RawURLEncoding.EncodeToString(nonce),
	})
	raw, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	row := &models.AccessToken{
		ID:        id,
		UserID:    user.ID,
		Name:      accessTokenName,
		TokenHash: hashToken(raw),
		ExpiresAt: expiresAt,
	}
	if err := s.tokens.Create(ctx, row); err != nil {
		return "", nil, fmt.Errorf("failed to store token: %w", err)
	}
	return raw, row, nil
}

// Resolve maps a raw bearer string to its principal. Every rejection is
// reported as ErrUnauthenticated; storage failures are returned wrapped.
func (s *TokenIssuer) Resolve(ctx context.Context, raw string) (*Principal, error) {
	parsed, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrUnauthenticated
	}
	id, _ := claims["jti"].(string)
	if id == "" {
		return nil, fmt.Errorf("%w: token has no id", ErrUnauthenticated)
	}

	row, err := s.tokens.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAccessTokenNotFound) {
			return nil, fmt.Errorf("%w: unknown token", ErrUnauthenticated)
		}
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(row.TokenHash), []byte(hashToken(raw))) != 1 {
		return nil, fmt.Errorf("%w: token digest mismatch", ErrUnauthenticated)
	}
	if row.Revoked() {
		return nil, fmt.Errorf("%w: token revoked", ErrUnauthenticated)
	}
	if row.Expired(s.now()) {
		return nil, fmt.Errorf("%w: token expired", ErrUnauthenticated)
	}

	user, err := s.users.GetByID(ctx, row.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: token owner missing", ErrUnauthenticated)
		}
		return nil, err
	}
	return &Principal{User: user, Token: row}, nil
}

// Revoke revokes the token with the given id. Revoking twice is a no-op.
func (s *TokenIssuer) Revoke(ctx context.Context, tokenID string) error {
	return s.tokens.Revoke(ctx, tokenID, s.now())
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
