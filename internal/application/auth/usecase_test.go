package auth_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/plm-api/internal/application/auth"
	"github.com/jhoicas/plm-api/internal/application/dto"
	"github.com/jhoicas/plm-api/internal/domain"
	"github.com/jhoicas/plm-api/internal/domain/entity"
	"github.com/jhoicas/plm-api/internal/infrastructure/memory"
)

func newAuth(t *testing.T, store *memory.Store, jwtCfg auth.JWTConfig) *auth.AuthUseCase {
	t.Helper()
	return auth.NewAuthUseCase(store.Users(), store, auth.NewBcryptHasher(bcrypt.MinCost), jwtCfg)
}

func alice() dto.RegisterRequest {
	return dto.RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "pw123"}
}

// ─────────────────────────────────────────────────────────────────────────────
// Register
// ─────────────────────────────────────────────────────────────────────────────

func TestRegister_SinRolesAsignaRoleUser(t *testing.T) {
	store := memory.NewSeededStore()
	uc := newAuth(t, store, auth.JWTConfig{})

	out, err := uc.Register(context.Background(), alice())
	require.NoError(t, err)
	assert.Equal(t, "alice", out.Username)
	assert.Equal(t, []string{entity.RoleUser}, out.Roles)
	assert.NotEmpty(t, out.ID)

	stored, err := store.Users().GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "pw123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw123")))
}

func TestRegister_NormalizaEmail(t *testing.T) {
	store := memory.NewSeededStore()
	uc := newAuth(t, store, auth.JWTConfig{})
	in := alice()
	in.Email = "  Alice@X.com "

	out, err := uc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", out.Email)
}

func TestRegister_RolDesconocidoUsaRoleUser(t *testing.T) {
	uc := newAuth(t, memory.NewSeededStore(), auth.JWTConfig{})
	in := alice()
	in.Roles = []string{"ROLE_X"}

	out, err := uc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleUser}, out.Roles)
}

func TestRegister_RolesMultiplesSinDuplicados(t *testing.T) {
	uc := newAuth(t, memory.NewSeededStore(), auth.JWTConfig{})
	in := alice()
	in.Role = entity.RoleAdmin
	in.Roles = []string{entity.RoleUser, "ROLE_X", entity.RoleAdmin}

	out, err := uc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleAdmin, entity.RoleUser}, out.Roles)
}

func TestRegister_UsernameDuplicado(t *testing.T) {
	store := memory.NewSeededStore()
	uc := newAuth(t, store, auth.JWTConfig{})
	_, err := uc.Register(context.Background(), alice())
	require.NoError(t, err)

	in := alice()
	in.Email = "otra@x.com"
	_, err = uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
	assert.Equal(t, 1, store.UserCount())
}

func TestRegister_EmailDuplicado(t *testing.T) {
	store := memory.NewSeededStore()
	uc := newAuth(t, store, auth.JWTConfig{})
	_, err := uc.Register(context.Background(), alice())
	require.NoError(t, err)

	in := alice()
	in.Username = "bob"
	in.Email = "ALICE@x.com"
	_, err = uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	assert.Equal(t, 1, store.UserCount())
}

func TestRegister_SinRolPorDefectoEsErrorDeConfiguracion(t *testing.T) {
	store := memory.NewStore(entity.RoleAdmin)
	uc := newAuth(t, store, auth.JWTConfig{})

	_, err := uc.Register(context.Background(), alice())
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Equal(t, 0, store.UserCount(), "no debe quedar usuario a medias")
}

func TestRegister_EntradaInvalida(t *testing.T) {
	uc := newAuth(t, memory.NewSeededStore(), auth.JWTConfig{})
	cases := map[string]dto.RegisterRequest{
		"sin username":    {Email: "a@x.com", Password: "pw"},
		"sin email":       {Username: "a", Password: "pw"},
		"sin password":    {Username: "a", Email: "a@x.com"},
		"password enorme": {Username: "a", Email: "a@x.com", Password: strings.Repeat("x", 73)},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Register(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Authenticate / Login
// ─────────────────────────────────────────────────────────────────────────────

func TestAuthenticate_CredencialesValidas(t *testing.T) {
	uc := newAuth(t, memory.NewSeededStore(), auth.JWTConfig{})
	_, err := uc.Register(context.Background(), alice())
	require.NoError(t, err)

	p, err := uc.Authenticate(context.Background(), "alice", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, []string{entity.RoleUser}, p.Grants)

	byEmail, err := uc.Authenticate(context.Background(), "Alice@X.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, p.UserID, byEmail.UserID)
}

func TestAuthenticate_MismoErrorParaUsuarioDesconocidoYPasswordIncorrecto(t *testing.T) {
	uc := newAuth(t, memory.NewSeededStore(), auth.JWTConfig{})
	_, err := uc.Register(context.Background(), alice())
	require.NoError(t, err)

	_, errWrong := uc.Authenticate(context.Background(), "alice", "wrong")
	_, errUnknown := uc.Authenticate(context.Background(), "nobody", "pw123")
	require.ErrorIs(t, errWrong, domain.ErrInvalidCredentials)
	require.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
}

func TestLogin_SinSecretNoEmiteToken(t *testing.T) {
	uc := newAuth(t, memory.NewSeededStore(), auth.JWTConfig{})
	_, err := uc.Register(context.Background(), alice())
	require.NoError(t, err)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "alice", Password: "pw123"})
	require.NoError(t, err)
	assert.Empty(t, out.Token)
	assert.Equal(t, "alice", out.Principal.Username)
	assert.Equal(t, []string{entity.RoleUser}, out.Principal.Roles)
}

func TestLogin_ConSecretEmiteTokenVerificable(t *testing.T) {
	uc := newAuth(t, memory.NewSeededStore(), auth.JWTConfig{Secret: "s3cret", ExpMinutes: 5, Issuer: "plm-test"})
	_, err := uc.Register(context.Background(), alice())
	require.NoError(t, err)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "alice", Password: "pw123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	p, err := uc.PrincipalFromToken(out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.Principal.UserID, p.UserID)
	assert.True(t, p.HasAnyGrant(entity.RoleUser))

	_, err = uc.PrincipalFromToken("basura")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ─────────────────────────────────────────────────────────────────────────────
// Hasher
// ─────────────────────────────────────────────────────────────────────────────

func TestBcryptHasher_Propiedades(t *testing.T) {
	h := auth.NewBcryptHasher(bcrypt.MinCost)
	for _, pw := range []string{"pw123", "contraseña-ñ", strings.Repeat("a", 72)} {
		hash, err := h.Hash(pw)
		require.NoError(t, err)
		assert.NoError(t, h.Verify(hash, pw))
		assert.ErrorIs(t, h.Verify(hash, pw+"x"), domain.ErrInvalidCredentials)

		other, err := h.Hash(pw)
		require.NoError(t, err)
		assert.NotEqual(t, hash, other, "cada hash lleva su propia sal")
	}
}

func TestNewBcryptHasher_CostoFueraDeRango(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, auth.NewBcryptHasher(1).Cost())
	assert.Equal(t, 12, auth.NewBcryptHasher(12).Cost())
}
