package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/plm-api/internal/application/dto"
	"github.com/jhoicas/plm-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Autenticación
// ──────────────────────────────────────────────────────────────────────────────

// Sin Authorization la ruta protegida responde 401 con el desafío Basic.
func TestAuthMiddleware_SinHeaderRetorna401(t *testing.T) {
	env := newTestEnv(t, testOptions{publicProducts: true})

	resp := env.do(t, http.MethodGet, "/api/auth/users/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, `Basic realm="plm"`, resp.Header.Get("WWW-Authenticate"))
	assert.Equal(t, "MISSING_CREDENTIALS", errorCode(t, resp))
}

func TestAuthMiddleware_BasicValidoDevuelvePrincipal(t *testing.T) {
	env := newTestEnv(t, testOptions{publicProducts: true})
	env.registerUser(t, "alice")

	resp := env.do(t, http.MethodGet, "/api/auth/users/me", nil, basic("alice", "pw123"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me dto.MeResponse
	decode(t, resp, &me)
	assert.Equal(t, "alice", me.Username)
	assert.Equal(t, "alice@x.com", me.Email)
	assert.Equal(t, []string{entity.RoleUser}, me.Roles)
	assert.NotNil(t, me.CreatedAt)
}

func TestAuthMiddleware_BasicConEmail(t *testing.T) {
	env := newTestEnv(t, testOptions{publicProducts: true})
	env.registerUser(t, "alice")

	resp := env.do(t, http.MethodGet, "/api/auth/users/me", nil, basic("alice@x.com", "pw123"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_PasswordIncorrectoYUsuarioDesconocidoIguales(t *testing.T) {
	env := newTestEnv(t, testOptions{publicProducts: true})
	env.registerUser(t, "alice")

	wrong := env.do(t, http.MethodGet, "/api/auth/users/me", nil, basic("alice", "nope"))
	unknown := env.do(t, http.MethodGet, "/api/auth/users/me", nil, basic("nobody", "pw123"))

	require.Equal(t, http.StatusUnauthorized, wrong.StatusCode)
	require.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
	var a, b dto.ErrorResponse
	decode(t, wrong, &a)
	decode(t, unknown, &b)
	assert.Equal(t, a, b)
}

func TestAuthMiddleware_HeaderMalFormado(t *testing.T) {
	env := newTestEnv(t, testOptions{publicProducts: true})

	for _, header := range []string{"Basic", "Basic %%%", "Digest abc", "Basic " + "c2luZG9zcHVudG9z"} {
		resp := env.do(t, http.MethodGet, "/api/auth/users/me", nil, header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, header)
	}
}

func TestAuthMiddleware_BearerDeLogin(t *testing.T) {
	env := newTestEnv(t, testOptions{publicProducts: true, jwtSecret: testJWTSecret})
	env.registerUser(t, "alice")

	resp := env.do(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{Username: "alice", Password: "pw123"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login dto.LoginResponse
	decode(t, resp, &login)
	require.NotEmpty(t, login.Token)

	resp = env.do(t, http.MethodGet, "/api/auth/users/me", nil, "Bearer "+login.Token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me dto.MeResponse
	decode(t, resp, &me)
	assert.Equal(t, login.Principal.UserID, me.UserID)

	resp = env.do(t, http.MethodGet, "/api/auth/users/me", nil, "Bearer token.invalido.x")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_BearerSinSecretRechazado(t *testing.T) {
	env := newTestEnv(t, testOptions{publicProducts: true})

	resp := env.do(t, http.MethodGet, "/api/auth/users/me", nil, "Bearer cualquier-cosa")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Autorización por grants (perfil restringido)
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireGrant_PerfilRestringido(t *testing.T) {
	env := newTestEnv(t, testOptions{publicProducts: false})
	env.registerUser(t, "alice")
	env.registerUser(t, "root", entity.RoleAdmin)
	product := dto.CreateProductRequest{ProductID: "P1", Name: "Widget"}

	// Lectura anónima rechazada
	resp := env.do(t, http.MethodGet, "/api/products", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// ROLE_USER puede crear
	resp = env.do(t, http.MethodPost, "/api/products", product, basic("alice", "pw123"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.ProductResponse
	decode(t, resp, &created)

	// ROLE_USER no puede cambiar el estado
	resp = env.do(t, http.MethodPut, "/api/products/"+created.ID+"/status", dto.UpdateStatusRequest{Status: "PROTOTYPE"}, basic("alice", "pw123"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, resp))

	resp = env.do(t, http.MethodPost, "/api/products/"+created.ID+"/advance", nil, basic("alice", "pw123"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// ROLE_ADMIN sí (ADMIN no implica USER ni al revés)
	resp = env.do(t, http.MethodPut, "/api/products/"+created.ID+"/status", dto.UpdateStatusRequest{Status: "PROTOTYPE"}, basic("root", "pw123"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/products/"+created.ID, nil, basic("alice", "pw123"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got dto.ProductResponse
	decode(t, resp, &got)
	assert.Equal(t, "PROTOTYPE", got.Status)
}

func TestRequireGrant_PerfilPublico(t *testing.T) {
	env := newTestEnv(t, testOptions{publicProducts: true})
	env.registerUser(t, "alice")

	resp := env.do(t, http.MethodGet, "/api/products", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Un header enviado se verifica aunque la ruta sea pública
	resp = env.do(t, http.MethodGet, "/api/products", nil, basic("alice", "mal"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/products", dto.CreateProductRequest{ProductID: "P1", Name: "Widget"}, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}
