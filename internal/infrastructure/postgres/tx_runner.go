package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/plm-api/internal/application/auth"
	"github.com/jhoicas/plm-api/internal/application/usecase"
	"github.com/jhoicas/plm-api/internal/domain/repository"
)

var (
	_ auth.UserTxRunner       = (*TxRunner)(nil)
	_ usecase.ProductTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db TxBeginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db TxBeginner) *TxRunner {
	return &TxRunner{db: db}
}

// RunUsers abre una transacción con repos de usuarios y roles (registro atómico usuario + user_roles).
func (r *TxRunner) RunUsers(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewUserRepository(tx), NewRoleRepository(tx))
	})
}

// RunProducts abre una transacción con el repo de productos (lectura + cambio de estado).
func (r *TxRunner) RunProducts(ctx context.Context, fn func(productRepo repository.ProductRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewProductRepository(tx))
	})
}

// run inicia una transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
