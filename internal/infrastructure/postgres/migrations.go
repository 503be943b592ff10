package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"

	// Driver pgx para database/sql; goose no trabaja sobre pgxpool.
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// goose usa estado global (base FS y dialecto).
var gooseMu sync.Mutex

const migrationsDir = "migrations"

// OpenDB abre un *sql.DB con el driver pgx para usar con goose.
func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db for migrations: %w", err)
	}
	return db, nil
}

// ApplyMigrations aplica todas las migraciones pendientes embebidas en el binario.
func ApplyMigrations(ctx context.Context, dsn string) error {
	db, err := OpenDB(dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	return Migrate(ctx, db, "up")
}

// Migrate ejecuta un comando de goose (up, down, status, version, reset) sobre db.
func Migrate(ctx context.Context, db *sql.DB, command string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()
	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.RunContext(ctx, command, db, migrationsDir); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
