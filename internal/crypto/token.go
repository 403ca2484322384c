package crypto

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers every way a presented token can be unusable: bad
// signature, malformed payload, expired, or missing subject. Callers must
// not surface anything more specific to clients.
var ErrInvalidToken = errors.New("invalid or expired token")

const tokenIssuer = "taskforge"

var tokenAudience = jwt.ClaimStrings{"taskforge-api"}

// Codec issues and decodes signed, time-bounded bearer tokens. The secret,
// signing method and ttl are fixed at construction; the clock is injectable
// so expiry behaviour is testable.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec builds a Codec. algorithm must name an HMAC signing method
// (HS256, HS384 or HS512). A nil now defaults to time.Now.
func NewCodec(secret, algorithm string, ttl time.Duration, now func() time.Time) (*Codec, error) {
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	if now == nil {
		now = time.Now
	}

	return &Codec{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
		now:    now,
	}, nil
}

// Issue signs a new token for the given subject, expiring ttl from now.
// The jti claim makes every issued token distinct, so a refresh within the
// same second still produces a different token string.
func (c *Codec) Issue(subject string) (string, error) {
	now := c.now()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Audience:  tokenAudience,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}

	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// Decode validates a token and returns its subject. Every failure mode
// collapses to ErrInvalidToken.
func (c *Codec) Decode(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience[0]),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
