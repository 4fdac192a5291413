package firstbeat

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenValidity is the lifetime of a signed bearer token. The API accepts
// tokens for 5 minutes only, so the client signs a fresh one for every
// request instead of caching them.
const tokenValidity = 300 * time.Second

// signToken produces a compact HS256-signed token asserting the consumer's
// identity: issuer is the consumer ID, issued-at is now, expiry is 5 minutes
// out. It is a pure function of its inputs.
func signToken(consumerID, sharedSecret string, now time.Time) (string, error) {
	if sharedSecret == "" {
		return "", errors.New("shared secret is empty")
	}

	claims := jwt.RegisteredClaims{
		Issuer:    consumerID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenValidity)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(sharedSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// BearerToken returns a freshly signed Authorization header value
// ("Bearer <token>") for the client's credentials. Useful for calling the
// API with external tooling; the client itself signs a new token per request.
func (c *Client) BearerToken() (string, error) {
	token, err := signToken(c.consumerID, c.sharedSecret, time.Now())
	if err != nil {
		return "", err
	}
	return "Bearer " + token, nil
}
