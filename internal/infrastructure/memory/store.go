// Package memory implementa los puertos de persistencia en memoria (DB_DRIVER=memory).
// Sirve para desarrollo local sin PostgreSQL y como doble de pruebas de los casos de uso.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/plm-api/internal/application/auth"
	"github.com/jhoicas/plm-api/internal/application/usecase"
	"github.com/jhoicas/plm-api/internal/domain/entity"
	"github.com/jhoicas/plm-api/internal/domain/repository"
)

var (
	_ auth.UserTxRunner       = (*Store)(nil)
	_ usecase.ProductTxRunner = (*Store)(nil)
)

type state struct {
	roles      map[string]entity.Role // por nombre
	users      map[string]entity.User // por id
	products   map[string]entity.Product
	nextRoleID int64
}

func (s *state) clone() *state {
	c := &state{
		roles:      make(map[string]entity.Role, len(s.roles)),
		users:      make(map[string]entity.User, len(s.users)),
		products:   make(map[string]entity.Product, len(s.products)),
		nextRoleID: s.nextRoleID,
	}
	for k, v := range s.roles {
		c.roles[k] = v
	}
	for k, v := range s.users {
		c.users[k] = copyUser(v)
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	return c
}

// Store almacén en memoria. Cada operación fuera de transacción toma el mutex;
// RunUsers/RunProducts trabajan sobre una copia que solo se publica si fn no falla.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea el almacén sembrando los roles indicados (como lo hace la migración de PostgreSQL).
func NewStore(seedRoles ...string) *Store {
	st := &state{
		roles:    map[string]entity.Role{},
		users:    map[string]entity.User{},
		products: map[string]entity.Product{},
	}
	for _, name := range seedRoles {
		if _, ok := st.roles[name]; ok {
			continue
		}
		st.nextRoleID++
		st.roles[name] = entity.Role{ID: st.nextRoleID, Name: name}
	}
	return &Store{st: st}
}

// NewSeededStore crea el almacén con ROLE_USER y ROLE_ADMIN.
func NewSeededStore() *Store {
	return NewStore(entity.RoleUser, entity.RoleAdmin)
}

// Ping siempre responde; existe para el health check.
func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) locked(fn func(*state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

func (s *Store) inTx(ctx context.Context, fn func(access func(func(*state) error) error) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.st.clone()
	access := func(f func(*state) error) error { return f(work) }
	if err := fn(access); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Roles repositorio de roles fuera de transacción.
func (s *Store) Roles() *RoleRepo { return &RoleRepo{with: s.locked} }

// Users repositorio de usuarios fuera de transacción.
func (s *Store) Users() *UserRepo { return &UserRepo{with: s.locked} }

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{with: s.locked} }

// RunUsers ejecuta fn con repos de usuarios y roles atados a una transacción.
func (s *Store) RunUsers(ctx context.Context, fn func(userRepo repository.UserRepository, roleRepo repository.RoleRepository) error) error {
	return s.inTx(ctx, func(access func(func(*state) error) error) error {
		return fn(&UserRepo{with: access}, &RoleRepo{with: access})
	})
}

// RunProducts ejecuta fn con el repo de productos atado a una transacción.
func (s *Store) RunProducts(ctx context.Context, fn func(productRepo repository.ProductRepository) error) error {
	return s.inTx(ctx, func(access func(func(*state) error) error) error {
		return fn(&ProductRepo{with: access})
	})
}

// UserCount cantidad de usuarios persistidos.
func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.users)
}

func copyUser(u entity.User) entity.User {
	u.Roles = append([]entity.Role(nil), u.Roles...)
	return u
}

func sortProducts(list []*entity.Product) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
