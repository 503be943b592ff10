package postgres_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/plm-api/internal/infrastructure/postgres"
	"github.com/jhoicas/plm-api/pkg/config"
)

func TestPoolConfig_DesdeCampos(t *testing.T) {
	cfg := config.DBConfig{Host: "db", Port: 5433, User: "u", Password: "p", DBName: "plm", SSLMode: "disable", MaxConns: 7}

	pc, err := postgres.PoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "plm", pc.ConnConfig.Database)
	assert.Equal(t, int32(7), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, time.Hour, pc.MaxConnLifetime)
}

func TestPoolConfig_DatabaseURLTienePrioridad(t *testing.T) {
	cfg := config.DBConfig{DatabaseURL: "postgres://x:y@otro:5432/prod?sslmode=disable", Host: "db", MaxConns: 1}

	pc, err := postgres.PoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "otro", pc.ConnConfig.Host)
	assert.Equal(t, "prod", pc.ConnConfig.Database)
	assert.Equal(t, int32(1), pc.MinConns, "MinConns no supera MaxConns")
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := postgres.PoolConfig(config.DBConfig{DatabaseURL: "postgres://%zz"})
	assert.Error(t, err)
}
