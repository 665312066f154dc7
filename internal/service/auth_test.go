package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/custom_err"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/models"
)

const testSecret = "clave-de-prueba-no-usar-en-producción"

func signToken(t *testing.T, secret string, claims models.JWTClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims(role models.Role) models.JWTClaims {
	return models.JWTClaims{
		UserID:  uuid.New(),
		AgentID: uuid.New(),
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestValidateToken_Valid(t *testing.T) {
	v := NewJWTVerifier(testSecret)
	claims := validClaims(models.RoleAgent)

	got, err := v.ValidateToken(signToken(t, testSecret, claims))

	require.NoError(t, err)
	assert.Equal(t, claims.UserID, got.UserID)
	assert.Equal(t, claims.AgentID, got.AgentID)
	assert.Equal(t, models.RoleAgent, got.Role)
}

func TestValidateToken_Expired(t *testing.T) {
	v := NewJWTVerifier(testSecret)
	claims := validClaims(models.RoleAgent)
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	_, err := v.ValidateToken(signToken(t, testSecret, claims))

	assert.ErrorIs(t, err, custom_err.ErrTokenExpired)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	v := NewJWTVerifier(testSecret)

	_, err := v.ValidateToken(signToken(t, "otra-clave", validClaims(models.RoleAdmin)))

	assert.ErrorIs(t, err, custom_err.ErrInvalidToken)
}

func TestValidateToken_UnknownRole(t *testing.T) {
	v := NewJWTVerifier(testSecret)
	claims := validClaims("auditor")

	_, err := v.ValidateToken(signToken(t, testSecret, claims))

	assert.ErrorIs(t, err, custom_err.ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	v := NewJWTVerifier(testSecret)

	_, err := v.ValidateToken("no.es.un.token")

	assert.ErrorIs(t, err, custom_err.ErrInvalidToken)
}
