package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Drivers de persistencia soportados.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	Security SecurityConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env            string // development, staging, production
	Name           string
	LogLevel       string
	SwaggerFile    string
	MetricsEnabled bool
}

// DBConfig configuración de persistencia.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	Driver      string // postgres | memory
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int32
	AutoMigrate bool
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT. Secret vacío desactiva los tokens bearer.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host             string
	Port             int
	CORSAllowOrigins string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SecurityConfig parámetros de autenticación y autorización.
type SecurityConfig struct {
	BcryptCost int
	// PublicProducts deja las rutas de productos sin autenticación.
	// En false las lecturas exigen sesión y los cambios de estado ROLE_ADMIN.
	PublicProducts bool
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, DB_PORT, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:            getString(v, "APP_ENV", "development"),
			Name:           getString(v, "APP_NAME", "plm-api"),
			LogLevel:       getString(v, "LOG_LEVEL", "info"),
			SwaggerFile:    getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
			MetricsEnabled: getBool(v, "METRICS_ENABLED", true),
		},
		DB: DBConfig{
			Driver:      strings.ToLower(getString(v, "DB_DRIVER", DriverPostgres)),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "plm"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    int32(getInt(v, "DB_MAX_CONNS", 25)),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", true),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "plm-api"),
		},
		HTTP: HTTPConfig{
			Host:             getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:             getInt(v, "HTTP_PORT", 8080),
			CORSAllowOrigins: getString(v, "CORS_ALLOW_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173"),
		},
		Security: SecurityConfig{
			BcryptCost:     getInt(v, "BCRYPT_COST", bcrypt.DefaultCost),
			PublicProducts: getBool(v, "SECURITY_PUBLIC_PRODUCTS", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate revisa combinaciones de valores que impedirían arrancar.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("DB_DRIVER inválido %q (use %s o %s)", c.DB.Driver, DriverPostgres, DriverMemory)
	}
	if c.Security.BcryptCost < bcrypt.MinCost || c.Security.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST debe estar entre %d y %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("HTTP_PORT inválido: %d", c.HTTP.Port)
	}
	if c.DB.MaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS debe ser positivo")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
