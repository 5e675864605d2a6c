package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dom/notes-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is 36000 minutes.
const DefaultTokenTTL = 36000 * time.Minute

// Claims is the decoded session claim. It carries an identity reference
// only; profile data is fetched server-side.
type Claims struct {
	UserID    uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenCodec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock returns a copy of the codec that reads time from now.
func (c *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	cp := *c
	cp.now = now
	return &cp
}

func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for userID that expires after the codec's TTL.
func (c *TokenCodec) Issue(userID uuid.UUID) (string, time.Time, error) {
	if len(c.secret) == 0 {
		return "", time.Time{}, errors.New("issue token: empty signing secret")
	}

	now := c.now()
	expiresAt := now.Add(c.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks the signature and expiry of token and decodes its claims.
// It returns domain.ErrExpiredToken, domain.ErrInvalidSignature or
// domain.ErrMalformedToken on failure.
func (c *TokenCodec) Verify(token string) (*Claims, error) {
	var registered jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &registered, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	},
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, classify(err)
	}

	userID, err := uuid.Parse(registered.Subject)
	if err != nil {
		return nil, &domain.Error{
			Kind:    domain.KindAuth,
			Code:    domain.CodeMalformedToken,
			Message: domain.ErrMalformedToken.Message,
			Cause:   fmt.Errorf("subject claim: %w", err),
		}
	}

	claims := &Claims{UserID: userID}
	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.Time
	}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Time
	}
	return claims, nil
}

func classify(err error) error {
	var target *domain.Error
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		target = domain.ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		target = domain.ErrMalformedToken
	default:
		target = domain.ErrInvalidSignature
	}
	return &domain.Error{
		Kind:    target.Kind,
		Code:    target.Code,
		Message: target.Message,
		Cause:   err,
	}
}
