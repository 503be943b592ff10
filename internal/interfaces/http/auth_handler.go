package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/plm-api/internal/application/auth"
	"github.com/jhoicas/plm-api/internal/application/dto"
	"github.com/jhoicas/plm-api/internal/application/usecase"
	"github.com/jhoicas/plm-api/internal/domain"
)

// AuthHandler maneja registro, login y el perfil del usuario autenticado.
type AuthHandler struct {
	uc    *auth.AuthUseCase
	users *usecase.UserUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, users *usecase.UserUseCase) *AuthHandler {
	return &AuthHandler{uc: uc, users: users}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "username, email, password y roles opcionales"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return writeError(c, "auth.register", err)
	}
	user, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return writeError(c, "auth.register", err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Acepta username o email. Devuelve el principal y, si hay JWT_SECRET, un token bearer.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username (o email) y password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return writeError(c, "auth.login", err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, "auth.login", err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         auth
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/users/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p := GetPrincipal(c)
	if p == nil {
		return unauthorized(c, "MISSING_CREDENTIALS", "autenticación requerida")
	}
	out := dto.MeResponse{PrincipalResponse: auth.ToPrincipalResponse(p)}
	user, err := h.users.GetByID(c.UserContext(), p.UserID)
	switch {
	case err == nil:
		out.Email = user.Email
		out.CreatedAt = &user.CreatedAt
	case !errors.Is(err, domain.ErrNotFound):
		return writeError(c, "auth.me", err)
	}
	return c.JSON(out)
}
