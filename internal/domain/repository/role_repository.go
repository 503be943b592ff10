package repository

import (
	"context"

	"github.com/jhoicas/plm-api/internal/domain/entity"
)

// RoleRepository define el puerto de lectura para los roles sembrados (DIP).
type RoleRepository interface {
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	List(ctx context.Context) ([]*entity.Role, error)
}
