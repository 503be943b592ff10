package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/plm-api/internal/domain/entity"
	"github.com/jhoicas/plm-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación del puerto RoleRepository sobre PostgreSQL (usable con pool o tx).
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador de persistencia para roles.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// GetByName busca un rol por nombre exacto. Devuelve (nil, nil) si no existe.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	query, args, err := psql.Select("id", "name").From("roles").Where("name = ?", name).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build role query: %w", err)
	}
	var role entity.Role
	if err := pgxscan.Get(ctx, r.q, &role, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &role, nil
}

// List devuelve todos los roles ordenados por ID.
func (r *RoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	query, args, err := psql.Select("id", "name").From("roles").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build roles query: %w", err)
	}
	var roles []*entity.Role
	if err := pgxscan.Select(ctx, r.q, &roles, query, args...); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}
