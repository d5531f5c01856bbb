package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskhive-dev/taskhive/internal/auth"
)

const testSecret = "test-secret"

func initSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	require.NoError(t, auth.InitJWTSecret())
}

func TestInitJWTSecretMissing(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	assert.Error(t, auth.InitJWTSecret())
}

func TestGenerateAndVerify(t *testing.T) {
	initSecret(t)

	tokenString, err := auth.GenerateJWT(42, "Alice")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := auth.VerifyJWT(tokenString)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, "Alice", claims["name"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	remaining := time.Until(time.Unix(int64(exp), 0))
	assert.Greater(t, remaining, auth.TokenValidity-time.Minute)
	assert.LessOrEqual(t, remaining, auth.TokenValidity)
}

func TestVerifyMalformed(t *testing.T) {
	initSecret(t)

	_, err := auth.VerifyJWT("not-a-token")
	assert.Error(t, err)
}

func TestVerifyWrongSignature(t *testing.T) {
	initSecret(t)

	claims := jwt.MapClaims{
		"user_id": 1,
		"name":    "Mallory",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = auth.VerifyJWT(tokenString)
	assert.Error(t, err)
}

func TestVerifyExpired(t *testing.T) {
	initSecret(t)

	claims := jwt.MapClaims{
		"user_id": 1,
		"name":    "Alice",
		"exp":     time.Now().Add(-time.Minute).Unix(),
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = auth.VerifyJWT(tokenString)
	assert.Error(t, err)
}

func TestVerifyRejectsUnexpectedSigningMethod(t *testing.T) {
	initSecret(t)

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = auth.VerifyJWT(tokenString)
	assert.Error(t, err)
}
