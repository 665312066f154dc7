package service

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/custom_err"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/models"
)

// TokenVerifier valida tokens emitidos por el servicio de autenticación
// externo. Aquí no se emiten ni renuevan sesiones.
type TokenVerifier interface {
	ValidateToken(tokenString string) (*models.JWTClaims, error)
}

type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, custom_err.ErrTokenExpired
		}
		return nil, custom_err.ErrInvalidToken
	}
	if !token.Valid {
		return nil, custom_err.ErrInvalidToken
	}
	if claims.Role != models.RoleAgent && claims.Role != models.RoleAdmin {
		return nil, custom_err.ErrInvalidToken
	}
	return claims, nil
}
