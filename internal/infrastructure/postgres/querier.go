package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier es lo mínimo que necesitan los repositorios: lo cumplen *pgxpool.Pool, pgx.Tx y pgxmock.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxBeginner es un Querier capaz de abrir transacciones.
type TxBeginner interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}
