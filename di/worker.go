package di

import (
	"daybooker/infras/kafka"
	"daybooker/infras/scheduler"
	"daybooker/internal/events"
	"daybooker/internal/jobs"
)

// Worker bundles the background processes run by cmd/worker.
type Worker struct {
	Scheduler scheduler.Scheduler
	Jobs      *jobs.Jobs
	Consumer  *events.ActivityConsumer
	Kafka     kafka.Client
}
