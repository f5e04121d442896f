package database

import (
	"io"
	"io/fs"
	"strings"
	"testing"

	"places-api/internal/config"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolConfig(t *testing.T) {
	cfg := config.Default().Database
	cfg.MaxConns = 7

	t.Run("info level does not trace queries", func(t *testing.T) {
		poolConfig, err := PoolConfig(cfg, zerolog.New(io.Discard).Level(zerolog.InfoLevel))
		require.NoError(t, err)
		assert.Equal(t, int32(7), poolConfig.MaxConns)
		assert.Equal(t, "localhost", poolConfig.ConnConfig.Host)
		assert.Equal(t, uint16(5432), poolConfig.ConnConfig.Port)
		assert.Equal(t, "places", poolConfig.ConnConfig.Database)
		assert.Nil(t, poolConfig.ConnConfig.Tracer)
	})

	t.Run("debug level traces queries", func(t *testing.T) {
		poolConfig, err := PoolConfig(cfg, zerolog.New(io.Discard).Level(zerolog.DebugLevel))
		require.NoError(t, err)
		tracer, ok := poolConfig.ConnConfig.Tracer.(*tracelog.TraceLog)
		require.True(t, ok)
		assert.Equal(t, tracelog.LogLevelDebug, tracer.LogLevel)
	})

	t.Run("values with spaces and quotes survive parsing", func(t *testing.T) {
		odd := cfg
		odd.User = "app user"
		odd.Password = "p@ss word' dbname=other"
		poolConfig, err := PoolConfig(odd, zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, "app user", poolConfig.ConnConfig.User)
		assert.Equal(t, "p@ss word' dbname=other", poolConfig.ConnConfig.Password)
		assert.Equal(t, "places", poolConfig.ConnConfig.Database)
	})

	t.Run("invalid dsn", func(t *testing.T) {
		bad := cfg
		bad.Port = -1
		_, err := PoolConfig(bad, zerolog.Nop())
		assert.Error(t, err)
	})
}

func TestMigrationsAreEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(Migrations(), ".")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	data, err := fs.ReadFile(Migrations(), entries[0].Name())
	require.NoError(t, err)
	sql := string(data)
	assert.Contains(t, sql, "CREATE TABLE users")
	assert.Contains(t, sql, "REFERENCES users(id)")
	assert.True(t, strings.Contains(sql, "---- create above / drop below ----"))
}
