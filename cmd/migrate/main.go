package main

import (
	"fmt"
	"strconv"

	"daybooker/config"
	"daybooker/helper"
	"daybooker/shared/logger"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg, "migrate")

	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the DayBooker database schema",
	}

	commands := []struct {
		use   string
		short string
		run   func(*config.Config) error
	}{
		{"up", "Apply all pending migrations", helper.Up},
		{"down", "Roll back the latest migration", helper.Down},
		{"step-up", "Apply the next pending migration", helper.StepUp},
		{"drop", "Roll back every migration", helper.Drop},
	}

	for _, command := range commands {
		run := command.run

		rootCmd.AddCommand(&cobra.Command{
			Use:   command.use,
			Short: command.short,
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return run(cfg)
			},
		})
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "force [version]",
		Short: "Mark a schema version as applied and clear the dirty flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[0], err)
			}

			return helper.Force(cfg, version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}
