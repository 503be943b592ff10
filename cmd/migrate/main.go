// Comando migrate aplica las migraciones embebidas de PostgreSQL.
//
//	go run ./cmd/migrate [up|down|status|version|reset]
package main

import (
	"context"
	"os"

	"github.com/jhoicas/plm-api/internal/infrastructure/postgres"
	"github.com/jhoicas/plm-api/pkg/config"
	"github.com/jhoicas/plm-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}
	switch command {
	case "up", "down", "status", "version", "reset":
	default:
		log.Fatal().Str("command", command).Msg("comando no soportado (up, down, status, version, reset)")
	}

	db, err := postgres.OpenDB(cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("abrir base de datos")
	}
	defer db.Close()

	if err := postgres.Migrate(context.Background(), db, command); err != nil {
		log.Error().Err(err).Str("command", command).Msg("migración fallida")
		os.Exit(1)
	}
	log.Info().Str("command", command).Msg("migración completada")
}
