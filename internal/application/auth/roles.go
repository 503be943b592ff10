package auth

import (
	"context"
	"fmt"
	"slices"

	"github.com/jhoicas/plm-api/internal/domain"
	"github.com/jhoicas/plm-api/internal/domain/entity"
	"github.com/jhoicas/plm-api/internal/domain/repository"
)

// CheckRoleSeed lista los roles disponibles y devuelve ErrConfiguration si falta
// el rol por defecto; sin él todo registro terminaría en error.
func CheckRoleSeed(ctx context.Context, roleRepo repository.RoleRepository) ([]string, error) {
	roles, err := roleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar roles: %w", err)
	}
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	if !slices.Contains(names, entity.DefaultRole) {
		return names, fmt.Errorf("%w: falta el rol %s (¿migraciones aplicadas?)", domain.ErrConfiguration, entity.DefaultRole)
	}
	return names, nil
}
