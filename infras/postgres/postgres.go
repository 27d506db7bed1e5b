package postgres

//nolint:revive
import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"daybooker/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const driverName = "postgres"

// Connection splits reads onto a replica; writes and transactions use Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	return &Connection{
		Read:  Connect(cfg, "read", cfg.DB.Postgres.Read),
		Write: Connect(cfg, "write", cfg.DB.Postgres.Write),
	}
}

// Ping reports whether both pools can reach the database.
func (c *Connection) Ping(ctx context.Context) error {
	for name, db := range map[string]*sqlx.DB{"read": c.Read, "write": c.Write} {
		if db == nil {
			return fmt.Errorf("%s pool is not connected", name)
		}

		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("failed to ping %s pool: %w", name, err)
		}
	}

	return nil
}

// DSN builds a postgres URL for node. Extra params are appended to the query.
func DSN(cfg *config.Config, node config.PostgresNode, params url.Values) string {
	query := url.Values{}
	query.Set("sslmode", node.SSLMode)

	if node.Timezone != "" {
		query.Set("timezone", node.Timezone)
	}

	for key, values := range params {
		query[key] = values
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(node.Username, node.Password),
		Host:     net.JoinHostPort(node.Host, node.Port),
		Path:     "/" + cfg.DB.Postgres.Prefix + node.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// Connect retries up to MaxRetry times and returns nil when every attempt fails.
func Connect(cfg *config.Config, name string, node config.PostgresNode) *sqlx.DB {
	pg := cfg.DB.Postgres
	dsn := DSN(cfg, node, nil)

	logger := log.With().
		Str("name", name).
		Str("host", node.Host).
		Str("port", node.Port).
		Str("dbName", pg.Prefix+node.Name).
		Logger()

	for attempt := 1; attempt <= pg.MaxRetry; attempt++ {
		db, err := sqlx.Connect(driverName, dsn)
		if err == nil {
			db.SetMaxOpenConns(pg.MaxOpenConns)
			db.SetMaxIdleConns(pg.MaxIdleConns)
			db.SetConnMaxLifetime(time.Duration(pg.ConnMaxLifeMin) * time.Minute)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(pg.RetryWaitTime) * time.Second)
	}

	logger.Error().Int("attempts", pg.MaxRetry).Msg("Giving up connecting to database")

	return nil
}
