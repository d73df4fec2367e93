package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sijil-app/sijil/internal/records"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the session inside the signed cookie.
type Claims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
	Role string `json:"role"`
}

// EncodeToken signs a session into a compact HS256 token.
func EncodeToken(s *Session, secret []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		Name: s.Name,
		Role: string(s.Role),
	})
	return token.SignedString(secret)
}

// DecodeToken verifies the signature and rebuilds the session. It never
// consults the store: possession of a valid token is the whole proof.
func DecodeToken(tokenString string, secret []byte) (*Session, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	role := records.Role(claims.Role)
	if !role.Valid() {
		return nil, ErrInvalidToken
	}

	return &Session{Name: claims.Name, Role: role, Authenticated: true}, nil
}
