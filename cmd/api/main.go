// @title           PLM API
// @version         1.0
// @description     API de gestión del ciclo de vida de productos (PLM).
// @BasePath        /
// @securityDefinitions.basic  BasicAuth
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	_ "github.com/jhoicas/plm-api/docs"
	"github.com/jhoicas/plm-api/internal/application/auth"
	"github.com/jhoicas/plm-api/internal/application/usecase"
	"github.com/jhoicas/plm-api/internal/domain/repository"
	"github.com/jhoicas/plm-api/internal/infrastructure/memory"
	"github.com/jhoicas/plm-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/plm-api/internal/interfaces/http"
	"github.com/jhoicas/plm-api/pkg/config"
	"github.com/jhoicas/plm-api/pkg/logger"
)

// storage agrupa lo que cada driver de persistencia aporta al arranque.
type storage struct {
	roles    repository.RoleRepository
	users    repository.UserRepository
	products repository.ProductRepository
	userTx   auth.UserTxRunner
	prodTx   usecase.ProductTxRunner
	db       httpRouter.Pinger
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("db_driver", cfg.DB.Driver).
		Bool("public_products", cfg.Security.PublicProducts).
		Msg("iniciando aplicación")
	if cfg.Security.PublicProducts {
		log.Warn().Msg("SECURITY_PUBLIC_PRODUCTS=true: las rutas de productos no exigen autenticación")
	}

	ctx := log.WithContext(context.Background())
	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer store.close()

	if roles, err := auth.CheckRoleSeed(ctx, store.roles); err != nil {
		log.Warn().Err(err).Strs("roles", roles).Msg("registro de usuarios no disponible")
	} else {
		log.Info().Strs("roles", roles).Msg("roles disponibles")
	}

	hasher := auth.NewBcryptHasher(cfg.Security.BcryptCost)
	authUC := auth.NewAuthUseCase(store.users, store.userTx, hasher, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(store.users)
	productUC := usecase.NewProductUseCase(store.products, store.prodTx)

	var metrics *httpRouter.Metrics
	if cfg.App.MetricsEnabled {
		metrics = httpRouter.NewMetrics("plm")
	}

	app := httpRouter.NewApp(httpRouter.AppDeps{
		RouterDeps: httpRouter.RouterDeps{
			AuthUC:         authUC,
			UserUC:         userUC,
			ProductUC:      productUC,
			PublicProducts: cfg.Security.PublicProducts,
		},
		Name:        cfg.App.Name,
		Logger:      log.Zerolog(),
		DB:          store.db,
		Metrics:     metrics,
		CORSOrigins: cfg.HTTP.CORSAllowOrigins,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "PLM API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	go func() {
		addr := cfg.HTTP.Addr()
		log.Info().Str("addr", addr).Msg("servidor HTTP escuchando")
		if err := app.Listen(addr); err != nil {
			log.Error().Err(err).Msg("servidor HTTP")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("apagando servidor...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

// openStorage prepara PostgreSQL (con migraciones si DB_AUTO_MIGRATE) o el almacén en memoria.
func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.DB.Driver == config.DriverMemory {
		st := memory.NewSeededStore()
		return &storage{
			roles:    st.Roles(),
			users:    st.Users(),
			products: st.Products(),
			userTx:   st,
			prodTx:   st,
			db:       st,
			close:    func() {},
		}, nil
	}

	if cfg.DB.AutoMigrate {
		if err := postgres.ApplyMigrations(ctx, cfg.DB.ConnectionString()); err != nil {
			return nil, err
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	txRunner := postgres.NewTxRunner(pool)
	return &storage{
		roles:    postgres.NewRoleRepository(pool),
		users:    postgres.NewUserRepository(pool),
		products: postgres.NewProductRepository(pool),
		userTx:   txRunner,
		prodTx:   txRunner,
		db:       pool,
		close:    pool.Close,
	}, nil
}
