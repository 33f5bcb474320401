package helpers

import (
	"crypto/rsa"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// SessionVerifier validates identity-provider session tokens. Clerk signs
// session JWTs with RS256; the instance public key is supplied via config.
// This service never issues tokens of its own.
type SessionVerifier struct {
	key *rsa.PublicKey
}

func NewSessionVerifier(pemKey string) (*SessionVerifier, error) {
	if pemKey == "" {
		return nil, errors.New("session verifier: public key is required")
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemKey))
	if err != nil {
		return nil, err
	}
	return &SessionVerifier{key: key}, nil
}

// Verify parses and validates a session token and returns its claims. The
// subject claim carries the provider's user id.
func (v *SessionVerifier) Verify(tokenStr string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.key, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}
