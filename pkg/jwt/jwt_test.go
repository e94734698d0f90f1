package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pkgjwt "github.com/vendipos/backoffice-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "backoffice-test"
)

// TestGenerateParse_RoundTrip: un token recién emitido se valida y devuelve el
// mismo operador.
func TestGenerateParse_RoundTrip(t *testing.T) {
	token, err := pkgjwt.Generate(testSecret, "operator", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	operator, err := pkgjwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "operator", operator)
}

// TestParse_SecretIncorrecto: un token firmado con otro secreto se rechaza.
func TestParse_SecretIncorrecto(t *testing.T) {
	token, err := pkgjwt.Generate("otro-secreto", "operator", testIssuer, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, token)
	assert.Error(t, err)
}

// TestParse_TokenExpirado: expiración negativa produce un token ya vencido.
func TestParse_TokenExpirado(t *testing.T) {
	token, err := pkgjwt.Generate(testSecret, "operator", testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, token)
	assert.Error(t, err, "un token vencido debe rechazarse")
}

// TestParse_TokenBasura: una cadena arbitraria no es un token.
func TestParse_TokenBasura(t *testing.T) {
	_, err := pkgjwt.Parse(testSecret, "no-es-un-jwt")
	assert.Error(t, err)
}

// TestGenerate_SecretVacio: nunca se firma con secreto vacío.
func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "operator", testIssuer, 60)
	assert.Error(t, err)
}
