package http_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/plm-api/internal/application/auth"
	"github.com/jhoicas/plm-api/internal/application/dto"
	"github.com/jhoicas/plm-api/internal/application/usecase"
	"github.com/jhoicas/plm-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/plm-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testJWTSecret = "test-secret-key-for-unit-tests"

type testOptions struct {
	publicProducts bool
	jwtSecret      string
	store          *memory.Store
}

type testEnv struct {
	app    *fiber.App
	authUC *auth.AuthUseCase
	store  *memory.Store
}

// newTestEnv construye la aplicación completa sobre el almacén en memoria.
func newTestEnv(t *testing.T, opts testOptions) *testEnv {
	t.Helper()
	store := opts.store
	if store == nil {
		store = memory.NewSeededStore()
	}
	authUC := auth.NewAuthUseCase(store.Users(), store, auth.NewBcryptHasher(bcrypt.MinCost), auth.JWTConfig{
		Secret:     opts.jwtSecret,
		ExpMinutes: 5,
		Issuer:     "plm-api-test",
	})
	app := apphttp.NewApp(apphttp.AppDeps{
		RouterDeps: apphttp.RouterDeps{
			AuthUC:         authUC,
			UserUC:         usecase.NewUserUseCase(store.Users()),
			ProductUC:      usecase.NewProductUseCase(store.Products(), store),
			PublicProducts: opts.publicProducts,
		},
		Name:        "plm-api-test",
		Logger:      zerolog.Nop(),
		DB:          store,
		Metrics:     apphttp.NewMetrics("plm"),
		CORSOrigins: "http://localhost:5173",
	})
	return &testEnv{app: app, authUC: authUC, store: store}
}

// registerUser crea un usuario directamente por el caso de uso.
func (e *testEnv) registerUser(t *testing.T, username string, roles ...string) {
	t.Helper()
	_, err := e.authUC.Register(context.Background(), dto.RegisterRequest{
		Username: username,
		Email:    username + "@x.com",
		Password: "pw123",
		Roles:    roles,
	})
	require.NoError(t, err)
}

func basic(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

// do lanza una petición contra la app. body puede ser nil; authHeader vacío no envía Authorization.
func (e *testEnv) do(t *testing.T, method, path string, body any, authHeader string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decode lee el cuerpo JSON de la respuesta en out.
func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var e dto.ErrorResponse
	decode(t, resp, &e)
	return e.Code
}
