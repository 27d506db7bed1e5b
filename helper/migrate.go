package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"daybooker/config"
	"daybooker/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

type step struct {
	run  func(*migrate.Migrate) error
	done string
}

var steps = map[string]step{
	"up":      {run: (*migrate.Migrate).Up, done: "Schema migrated to latest version"},
	"down":    {run: func(m *migrate.Migrate) error { return m.Steps(-1) }, done: "Rolled back one migration"},
	"step-up": {run: func(m *migrate.Migrate) error { return m.Steps(1) }, done: "Applied one migration"},
	"drop":    {run: (*migrate.Migrate).Down, done: "Rolled back every migration"},
}

func open(cfg *config.Config) (*migrate.Migrate, error) {
	params := url.Values{}
	if cfg.DB.Postgres.MigrationTable != "" {
		params.Set("x-migrations-table", cfg.DB.Postgres.MigrationTable)
	}

	mig, err := migrate.New(migrationSource, postgres.DSN(cfg, cfg.DB.Postgres.Write, params))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Runner applies the named migration action against the write database.
func Runner(cfg *config.Config, action string) error {
	s, ok := steps[action]
	if !ok {
		return fmt.Errorf("unknown migration action %q", action)
	}

	mig, err := open(cfg)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err := s.run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading schema version: %w", err)
	}

	log.Info().Uint("version", version).Bool("dirty", dirty).Msg(s.done)

	return nil
}

func Up(cfg *config.Config) error {
	return Runner(cfg, "up")
}

func StepUp(cfg *config.Config) error {
	return Runner(cfg, "step-up")
}

func Down(cfg *config.Config) error {
	return Runner(cfg, "down")
}

func Drop(cfg *config.Config) error {
	return Runner(cfg, "drop")
}

// Force marks version as applied and clears the dirty flag after a failed run.
func Force(cfg *config.Config, version int) error {
	mig, err := open(cfg)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err := mig.Force(version); err != nil {
		return fmt.Errorf("error forcing schema version %d: %w", version, err)
	}

	log.Warn().Int("version", version).Msg("Schema version forced")

	return nil
}
