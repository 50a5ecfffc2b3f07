package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "greenspot-etl", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "greenspot", cfg.Database.DBName)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "auto", cfg.ETL.InputFormat)
	assert.Equal(t, ",", cfg.ETL.Delimiter)
	assert.Equal(t, 1000, cfg.ETL.MaxQualityLogEntries)
	assert.Equal(t, 100, cfg.ETL.BatchSize)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("GREENSPOT_DATABASE_HOST", "db.internal")
	t.Setenv("GREENSPOT_DATABASE_PORT", "5433")
	t.Setenv("GREENSPOT_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ProductionRequiresCredentials(t *testing.T) {
	t.Setenv("GREENSPOT_APP_ENV", "production")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss:word",
		DBName:   "greenspot",
		SSLMode:  "disable",
	}

	dsn := d.DSN()

	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "p%40ss%3Aword")
	assert.Contains(t, dsn, "sslmode=disable")
	assert.Contains(t, dsn, "/greenspot")
}
