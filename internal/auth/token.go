package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rotisserie/eris"
)

// Issuer creates and verifies HS256 bearer tokens carrying a user id.
type Issuer struct {
	secret   []byte
	ttl      time.Duration
	timeFunc func() time.Time
}

// NewIssuer creates a token issuer. ttl bounds token lifetime.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, timeFunc: time.Now}
}

// WithTimeFunc overrides the clock used for expiry validation.
func (i *Issuer) WithTimeFunc(f func() time.Time) *Issuer {
	i.timeFunc = f
	return i
}

// Issue signs a token for the given user id, valid from now for the
// configured TTL.
func (i *Issuer) Issue(userID string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", eris.Wrap(err, "auth: sign token")
	}
	return signed, nil
}

// Verify parses and validates a token, returning the user id it carries.
func (i *Issuer) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, eris.Errorf("auth: unexpected signing method %v", t.Header["alg"])
			}
			return i.secret, nil
		},
		jwt.WithTimeFunc(i.timeFunc),
	)
	if err != nil {
		return "", eris.Wrap(err, "auth: parse token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", eris.New("auth: invalid token claims")
	}
	return claims.Subject, nil
}
