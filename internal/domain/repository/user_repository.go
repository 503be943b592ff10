package repository

import (
	"context"

	"github.com/jhoicas/plm-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get* devuelven (nil, nil) cuando no existe el registro.
type UserRepository interface {
	// Create persiste el usuario y sus vínculos con roles. Devuelve ErrDuplicateUsername
	// o ErrDuplicateEmail si el almacén rechaza la unicidad.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
