package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/plm-api/internal/application/auth"
	"github.com/jhoicas/plm-api/internal/application/usecase"
	"github.com/jhoicas/plm-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	UserUC    *usecase.UserUseCase
	ProductUC *usecase.ProductUseCase
	// PublicProducts deja las rutas de productos abiertas (un header Authorization enviado igual se verifica).
	PublicProducts bool
}

// AppDeps dependencias de la aplicación Fiber completa.
type AppDeps struct {
	RouterDeps
	Name        string
	Logger      zerolog.Logger
	DB          Pinger
	Metrics     *Metrics // nil desactiva /metrics
	CORSOrigins string
}

// NewApp construye la aplicación Fiber con middlewares, /health, /metrics y las rutas de la API.
func NewApp(deps AppDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      deps.Name,
		ErrorHandler: ErrorHandler,
	})
	app.Use(requestid.New())
	app.Use(RequestLogger(deps.Logger))
	app.Use(recover.New())
	origins := strings.ReplaceAll(deps.CORSOrigins, " ", "")
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		// Fiber no admite credenciales con el comodín "*".
		AllowCredentials: origins != "*",
		MaxAge:           3600,
	}))
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}

	app.Get("/health", NewHealthHandler(deps.DB, deps.Name).Check)
	Router(app, deps.RouterDeps)
	return app
}

// Router registra las rutas de la API.
func Router(app fiber.Router, deps RouterDeps) {
	api := app.Group("/api")
	authenticate := AuthMiddleware(deps.AuthUC, true)
	optionalAuth := AuthMiddleware(deps.AuthUC, false)

	// Auth: registro y login públicos; /users/me siempre autenticado
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/users/me", authenticate, authHandler.Me)

	productHandler := NewProductHandler(deps.ProductUC)
	var products fiber.Router
	var canCreate, canChangeStatus []fiber.Handler
	if deps.PublicProducts {
		products = api.Group("/products", optionalAuth)
	} else {
		products = api.Group("/products", authenticate)
		canCreate = []fiber.Handler{RequireGrant(entity.RoleUser, entity.RoleAdmin)}
		canChangeStatus = []fiber.Handler{RequireGrant(entity.RoleAdmin)}
	}

	products.Get("/", productHandler.List)
	products.Get("/code/:productId", productHandler.GetByCode)
	products.Get("/status/:status", productHandler.ListByStatus)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", append(canCreate, productHandler.Create)...)
	products.Put("/:id/status", append(canChangeStatus, productHandler.UpdateStatus)...)
	products.Post("/:id/advance", append(canChangeStatus, productHandler.Advance)...)
}
