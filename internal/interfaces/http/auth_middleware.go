package http

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/plm-api/internal/application/dto"
	"github.com/jhoicas/plm-api/internal/domain/entity"
)

// LocalPrincipal key del principal autenticado en c.Locals.
const LocalPrincipal = "principal"

const basicChallenge = `Basic realm="plm"`

// Authenticator resuelve el principal a partir de credenciales Basic o de un token bearer.
type Authenticator interface {
	Authenticate(ctx context.Context, login, password string) (*entity.Principal, error)
	PrincipalFromToken(token string) (*entity.Principal, error)
}

// AuthMiddleware valida Authorization (Basic o Bearer) y deja el principal en c.Locals.
// Con required=false una petición sin header pasa como anónima; un header presente siempre se verifica.
func AuthMiddleware(authn Authenticator, required bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if header == "" {
			if !required {
				return c.Next()
			}
			return unauthorized(c, "MISSING_CREDENTIALS", "Authorization header requerido")
		}
		scheme, value, ok := strings.Cut(header, " ")
		value = strings.TrimSpace(value)
		if !ok || value == "" {
			return unauthorized(c, "INVALID_CREDENTIALS", "formato: Basic <base64> o Bearer <token>")
		}

		var principal *entity.Principal
		var err error
		switch {
		case strings.EqualFold(scheme, "Basic"):
			login, password, ok := decodeBasic(value)
			if !ok {
				return unauthorized(c, "INVALID_CREDENTIALS", "credenciales Basic mal formadas")
			}
			principal, err = authn.Authenticate(c.UserContext(), login, password)
		case strings.EqualFold(scheme, "Bearer"):
			principal, err = authn.PrincipalFromToken(value)
		default:
			return unauthorized(c, "INVALID_CREDENTIALS", "esquema de autorización no soportado")
		}
		if err != nil {
			return writeError(c, "auth.middleware", err)
		}

		c.Locals(LocalPrincipal, principal)
		l := zerolog.Ctx(c.UserContext()).With().Str("username", principal.Username).Logger()
		c.SetUserContext(l.WithContext(c.UserContext()))
		return c.Next()
	}
}

// RequireGrant admite al principal si tiene alguno de los grants. Sin principal responde 401.
func RequireGrant(grants ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p == nil {
			return unauthorized(c, "MISSING_CREDENTIALS", "autenticación requerida")
		}
		if !p.HasAnyGrant(grants...) {
			zerolog.Ctx(c.UserContext()).Warn().
				Strs("required", grants).
				Strs("grants", p.Grants).
				Msg("acceso denegado")
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: CodeForbidden, Message: "permisos insuficientes"})
		}
		return c.Next()
	}
}

// GetPrincipal devuelve el principal del contexto (nil si la petición es anónima).
func GetPrincipal(c *fiber.Ctx) *entity.Principal {
	p, _ := c.Locals(LocalPrincipal).(*entity.Principal)
	return p
}

func decodeBasic(value string) (string, string, bool) {
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", "", false
	}
	login, password, ok := strings.Cut(string(raw), ":")
	if !ok || login == "" {
		return "", "", false
	}
	return login, password, true
}

func unauthorized(c *fiber.Ctx, code, msg string) error {
	c.Set(fiber.HeaderWWWAuthenticate, basicChallenge)
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
