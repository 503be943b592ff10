package usecase

import (
	"context"

	"github.com/jhoicas/plm-api/internal/application/dto"
	"github.com/jhoicas/plm-api/internal/domain"
	"github.com/jhoicas/plm-api/internal/domain/repository"
)

// UserUseCase consultas de usuarios (sin password).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario por ID. Devuelve ErrNotFound si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewUserResponse(user), nil
}
