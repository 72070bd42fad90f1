package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed el token no tiene la forma header.payload.firma.
var ErrMalformed = errors.New("jwt: token inválido: no es un JWT válido")

// Claims payload que emite el backend: sub (id o email), email y role.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Decode lee el payload del token SIN verificar la firma. El BFF no conoce el
// secreto del backend: la verificación real ocurre en cada llamada a la API.
func Decode(tokenString string) (*Claims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if strings.Count(tokenString, ".") != 2 {
		return nil, ErrMalformed
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("jwt: decodificar payload: %w", err)
	}
	return claims, nil
}

// Generate firma un token HS256 con sub, email y role. Lo usan las
// herramientas de desarrollo y los backends falsos de los tests.
func Generate(secret, subject, email, role string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Email: email,
		Role:  role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
