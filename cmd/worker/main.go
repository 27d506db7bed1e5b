package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"daybooker/config"
	"daybooker/di"
	"daybooker/shared/logger"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const stopTimeout = 30 * time.Second

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg, "worker")

	rootCmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the DayBooker scheduled jobs and event consumers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "run [job]",
		Short: "Run a single job once and exit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			worker := di.InitializeWorker()
			defer worker.Kafka.Close()

			return worker.Jobs.Run(cmd.Context(), args[0])
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("worker failed")
	}
}

func serve(ctx context.Context) error {
	worker := di.InitializeWorker()
	defer worker.Kafka.Close()

	if err := worker.Jobs.Register(); err != nil {
		return err
	}

	worker.Scheduler.Start()

	log.Info().Msg("Worker started")

	done := make(chan struct{})

	go func() {
		defer close(done)

		worker.Consumer.Run(ctx)
	}()

	<-ctx.Done()

	log.Info().Msg("Stopping worker")

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), stopTimeout)
	defer cancel()

	if err := worker.Scheduler.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("failed to stop scheduler")
	}

	<-done

	log.Info().Msg("Worker stopped")

	return nil
}
