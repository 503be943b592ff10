package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/plm-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "plm-api-test"
)

func TestJWT_GenerateAndParse_ConRoles(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u-1", "alice", []string{"ROLE_USER"}, testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, []string{"ROLE_USER"}, claims.Roles)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u-1", "alice", nil, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u-1", "alice", nil, testIssuer, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestJWT_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "u-1", "alice", nil, testIssuer, 60)
	assert.Error(t, err)

	_, err = pkgjwt.Parse("", "x.y.z")
	assert.Error(t, err)
}
