// Package session signs and verifies the value of the "sid" cookie.
//
// The cookie carries an HS256 token whose ID is the server-side session row id.
// A valid signature only proves the token was issued here; the session row is
// still looked up so that logout revokes it.
package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storefront/internal/domain"
)

const CookieName = "sid"

const issuer = "storefront"

var ErrInvalid = errors.New("invalid or expired session token")

type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (c *Codec) TTL() time.Duration { return c.ttl }

// Sign issues a token for session sid owned by userID.
func (c *Codec) Sign(sid, userID string, role domain.Role) (string, time.Time, error) {
	issued := c.now()
	exp := issued.Add(c.ttl)
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sid,
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	return tok, exp, err
}

// Parse verifies signature, issuer and expiry and returns the claims.
func (c *Codec) Parse(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrInvalid
	}
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !tok.Valid {
		return nil, ErrInvalid
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || claims.ID == "" {
		return nil, ErrInvalid
	}
	return claims, nil
}
