package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sharath2004-tech/odoo-sub001/internal/config"
)

func TestPostgresWithoutDSN(t *testing.T) {
	pg, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, pg.PoolHandle())

	var id string
	err = pg.QueryRow(context.Background(), "SELECT 1").Scan(&id)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.ErrorIs(t, pg.Ping(context.Background()), ErrNotConfigured)
	assert.NotPanics(t, pg.Close)

	var nilPG *Postgres
	assert.ErrorIs(t, nilPG.Ping(context.Background()), ErrNotConfigured)
}

func TestRunMigrationsWithoutPool(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, "does-not-matter", zap.NewNop()))
}

func TestRedisPingUnconfigured(t *testing.T) {
	var r *Redis
	assert.Error(t, r.Ping(context.Background()))
	assert.NotPanics(t, r.Close)
}

func TestMigrationFilesPresent(t *testing.T) {
	entries, err := os.ReadDir(filepath.Join("..", "..", DefaultMigrationsDir))
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	content, err := os.ReadFile(filepath.Join("..", "..", DefaultMigrationsDir, entries[0].Name()))
	require.NoError(t, err)
	for _, column := range []string{"id", "full_name", "email", "role", "status"} {
		assert.Contains(t, string(content), column)
	}
}
