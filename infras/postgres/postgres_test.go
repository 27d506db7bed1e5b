package postgres_test

import (
	"net/url"
	"testing"

	"daybooker/config"
	"daybooker/infras/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "test_"

	node := config.PostgresNode{
		Host:     "db.local",
		Port:     "5432",
		Username: "daybooker",
		Password: "p@ss:word/1",
		Name:     "daybooker",
		SSLMode:  "disable",
		Timezone: "Europe/Paris",
	}

	dsn := postgres.DSN(cfg, node, url.Values{"x-migrations-table": {"schema_migrations"}})

	parsed, err := url.Parse(dsn)
	require.NoError(t, err)

	password, _ := parsed.User.Password()

	assert.Equal(t, "postgres", parsed.Scheme)
	assert.Equal(t, "daybooker", parsed.User.Username())
	assert.Equal(t, "p@ss:word/1", password)
	assert.Equal(t, "db.local:5432", parsed.Host)
	assert.Equal(t, "/test_daybooker", parsed.Path)
	assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
	assert.Equal(t, "Europe/Paris", parsed.Query().Get("timezone"))
	assert.Equal(t, "schema_migrations", parsed.Query().Get("x-migrations-table"))
}

func TestDSNWithoutTimezone(t *testing.T) {
	dsn := postgres.DSN(&config.Config{}, config.PostgresNode{Host: "localhost", Port: "5432", Name: "app", SSLMode: "require"}, nil)

	parsed, err := url.Parse(dsn)
	require.NoError(t, err)

	assert.False(t, parsed.Query().Has("timezone"))
	assert.Equal(t, "/app", parsed.Path)
}
