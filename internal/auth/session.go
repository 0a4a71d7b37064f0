package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is how long a login (cookie or extension token) stays valid.
const SessionTTL = 7 * 24 * time.Hour

// CookieName is the session cookie set on login.
const CookieName = "session"

// VerifyPasscode checks the login passcode. Single-user system: one shared
// passcode, plain string compare.
func VerifyPasscode(got, want string) bool {
	return got == want
}

// CreateSession issues a signed session token. The same token is set as the
// cookie and handed to the browser extension as a bearer token.
func CreateSession(secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"authenticated": true,
		"iat":           time.Now().Unix(),
		"exp":           time.Now().Add(SessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifySession reports whether the token is validly signed and unexpired.
func VerifySession(tokenString string, secret []byte) bool {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	return err == nil && token.Valid
}
