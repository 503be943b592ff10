package auth

import (
	"context"

	"github.com/jhoicas/plm-api/internal/domain/repository"
)

// UserTxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// El registro (resolución de roles + alta del usuario) es todo o nada.
type UserTxRunner interface {
	RunUsers(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		roleRepo repository.RoleRepository,
	) error) error
}
