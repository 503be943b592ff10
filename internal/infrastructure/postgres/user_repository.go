package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/plm-api/internal/domain/entity"
	"github.com/jhoicas/plm-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

var userColumns = []string{"id", "username", "email", "password_hash", "created_at", "updated_at"}

type userRow struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (u userRow) toEntity(roles []entity.Role) *entity.User {
	return &entity.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Roles:        roles,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste el usuario y sus filas en user_roles. Debe correr dentro de TxRunner.RunUsers
// para que un fallo a mitad no deje un usuario sin roles.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query, args, err := psql.Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert user: %w", err)
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		if dup := duplicateError(err); dup != nil {
			return dup
		}
		return fmt.Errorf("insert user: %w", err)
	}
	if len(user.Roles) == 0 {
		return nil
	}

	ins := psql.Insert("user_roles").Columns("user_id", "role_id")
	for _, role := range user.Roles {
		ins = ins.Values(user.ID, role.ID)
	}
	query, args, err = ins.ToSql()
	if err != nil {
		return fmt.Errorf("build insert user_roles: %w", err)
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert user_roles: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getBy(ctx, "id", id)
}

// GetByUsername obtiene un usuario por username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getBy(ctx, "username", username)
}

// GetByEmail obtiene un usuario por email (ya normalizado).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, "email", email)
}

// ExistsByUsername indica si el username ya está en uso.
func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username", username)
}

// ExistsByEmail indica si el email ya está registrado.
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email", email)
}

func (r *UserRepo) getBy(ctx context.Context, column, value string) (*entity.User, error) {
	query, args, err := psql.Select(userColumns...).
		From("users").
		Where(column+" = ?", value).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}
	var row userRow
	if err := pgxscan.Get(ctx, r.q, &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by %s: %w", column, err)
	}
	roles, err := r.rolesOf(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	return row.toEntity(roles), nil
}

func (r *UserRepo) rolesOf(ctx context.Context, userID string) ([]entity.Role, error) {
	query, args, err := psql.Select("r.id", "r.name").
		From("roles r").
		Join("user_roles ur ON ur.role_id = r.id").
		Where("ur.user_id = ?", userID).
		OrderBy("r.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user roles query: %w", err)
	}
	var roles []entity.Role
	if err := pgxscan.Select(ctx, r.q, &roles, query, args...); err != nil {
		return nil, fmt.Errorf("get user roles: %w", err)
	}
	return roles, nil
}

func (r *UserRepo) exists(ctx context.Context, column, value string) (bool, error) {
	sub, args, err := psql.Select("1").From("users").Where(column+" = ?", value).ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}
	var ok bool
	if err := r.q.QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&ok); err != nil {
		return false, fmt.Errorf("user exists by %s: %w", column, err)
	}
	return ok, nil
}
