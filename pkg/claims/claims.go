// Package claims decodes the payload segment of a bearer token issued by the
// Video Unpack backend. The client never holds the signing secret, so tokens
// are decoded without signature verification; trust comes from the backend
// rejecting bad tokens with 401, not from local validation.
package claims

import (
	"github.com/golang-jwt/jwt/v5"
)

// Person is the identity record the backend embeds in the token payload.
type Person struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

// Claims is the decoded token payload.
type Claims struct {
	Person *Person `json:"person"`
	jwt.RegisteredClaims
}

// Decode splits the token into its three segments, base64url-decodes the
// middle one and unmarshals it. Any failure (wrong segment count, invalid
// base64, invalid JSON) is returned as an error; callers treat that as
// "no claims", never as a fatal condition.
func Decode(token string) (*Claims, error) {
	c := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, c); err != nil {
		return nil, err
	}
	return c, nil
}
