package dto

import (
	"time"

	"github.com/jhoicas/plm-api/internal/domain/entity"
)

// RegisterRequest entrada para registro. Role (singular) se conserva por compatibilidad con el cliente web;
// Roles permite solicitar varios. Ambos son opcionales: sin roles se asigna ROLE_USER.
type RegisterRequest struct {
	Username string   `json:"username" validate:"required,min=1,max=100"`
	Email    string   `json:"email" validate:"required,email,max=255"`
	Password string   `json:"password" validate:"required,max=72"`
	Role     string   `json:"role" validate:"omitempty,max=50"`
	Roles    []string `json:"roles" validate:"omitempty,dive,max=50"`
}

// RequestedRoles une Role y Roles en una sola lista (sin vacíos).
func (r RegisterRequest) RequestedRoles() []string {
	out := make([]string, 0, len(r.Roles)+1)
	if r.Role != "" {
		out = append(out, r.Role)
	}
	for _, name := range r.Roles {
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// LoginRequest entrada para login: username acepta también el email.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserResponse mapea la entidad a su salida HTTP; nil si u es nil.
func NewUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Roles:     u.RoleNames(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// PrincipalResponse identidad autenticada y sus grants.
type PrincipalResponse struct {
	UserID   string   `json:"userId"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// LoginResponse salida del login. Token solo viaja si hay JWT_SECRET configurado.
type LoginResponse struct {
	Message   string            `json:"message"`
	Principal PrincipalResponse `json:"principal"`
	Token     string            `json:"token,omitempty"`
}

// MeResponse salida de /api/auth/users/me.
type MeResponse struct {
	PrincipalResponse
	Email     string     `json:"email,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}
