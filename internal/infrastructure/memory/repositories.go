package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/plm-api/internal/domain"
	"github.com/jhoicas/plm-api/internal/domain/entity"
	"github.com/jhoicas/plm-api/internal/domain/repository"
)

var (
	_ repository.RoleRepository    = (*RoleRepo)(nil)
	_ repository.UserRepository    = (*UserRepo)(nil)
	_ repository.ProductRepository = (*ProductRepo)(nil)
)

type accessor func(func(*state) error) error

// RoleRepo implementación en memoria de RoleRepository.
type RoleRepo struct {
	with accessor
}

// GetByName busca un rol por nombre exacto.
func (r *RoleRepo) GetByName(_ context.Context, name string) (*entity.Role, error) {
	var out *entity.Role
	err := r.with(func(st *state) error {
		if role, ok := st.roles[name]; ok {
			out = &role
		}
		return nil
	})
	return out, err
}

// List devuelve los roles ordenados por ID.
func (r *RoleRepo) List(_ context.Context) ([]*entity.Role, error) {
	var out []*entity.Role
	err := r.with(func(st *state) error {
		for _, role := range st.roles {
			role := role
			out = append(out, &role)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

// UserRepo implementación en memoria de UserRepository. Hace cumplir unicidad de username y email.
type UserRepo struct {
	with accessor
}

// Create persiste el usuario; rechaza duplicados como lo haría la constraint UNIQUE.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.with(func(st *state) error {
		for _, u := range st.users {
			if u.Username == user.Username {
				return domain.ErrDuplicateUsername
			}
			if u.Email == user.Email {
				return domain.ErrDuplicateEmail
			}
		}
		st.users[user.ID] = copyUser(*user)
		return nil
	})
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.ID == id })
}

// GetByUsername obtiene un usuario por username.
func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Username == username })
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Email == email })
}

// ExistsByUsername indica si el username ya está en uso.
func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u, err := r.GetByUsername(ctx, username)
	return u != nil, err
}

// ExistsByEmail indica si el email ya está registrado.
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, err := r.GetByEmail(ctx, email)
	return u != nil, err
}

func (r *UserRepo) find(match func(entity.User) bool) (*entity.User, error) {
	var out *entity.User
	err := r.with(func(st *state) error {
		for _, u := range st.users {
			if match(u) {
				c := copyUser(u)
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

// ProductRepo implementación en memoria de ProductRepository. Hace cumplir unicidad del código de producto.
type ProductRepo struct {
	with accessor
}

// Create persiste el producto.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.with(func(st *state) error {
		for _, p := range st.products {
			if p.ProductCode == product.ProductCode {
				return domain.ErrDuplicateProductCode
			}
		}
		st.products[product.ID] = *product
		return nil
	})
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.with(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetByProductCode obtiene un producto por código de negocio.
func (r *ProductRepo) GetByProductCode(_ context.Context, code string) (*entity.Product, error) {
	list, err := r.filter(func(p entity.Product) bool { return p.ProductCode == code })
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

// List lista productos (más recientes primero) aplicando los filtros opcionales.
func (r *ProductRepo) List(_ context.Context, f entity.ProductFilter) ([]*entity.Product, error) {
	search := strings.ToLower(f.Search)
	return r.filter(func(p entity.Product) bool {
		if f.Category != "" && p.Category != f.Category {
			return false
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			return false
		}
		return true
	})
}

// ListByStatus lista productos en un estado.
func (r *ProductRepo) ListByStatus(_ context.Context, status entity.ProductStatus) ([]*entity.Product, error) {
	return r.filter(func(p entity.Product) bool { return p.Status == status })
}

// UpdateStatus sobrescribe el estado del producto.
func (r *ProductRepo) UpdateStatus(_ context.Context, id string, status entity.ProductStatus, updatedAt time.Time) (bool, error) {
	found := false
	err := r.with(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return nil
		}
		p.Status = status
		p.UpdatedAt = updatedAt
		st.products[id] = p
		found = true
		return nil
	})
	return found, err
}

func (r *ProductRepo) filter(match func(entity.Product) bool) ([]*entity.Product, error) {
	out := []*entity.Product{}
	err := r.with(func(st *state) error {
		for _, p := range st.products {
			if match(p) {
				p := p
				out = append(out, &p)
			}
		}
		return nil
	})
	sortProducts(out)
	return out, err
}
