package jobs

import (
	"fmt"
	"log/slog"

	"parcelhub/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	outboxRelayJob *OutboxRelayJob
}

func NewJobManager(relayer Relayer, locker ports.Locker, relaySchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		outboxRelayJob: NewOutboxRelayJob(relayer, locker, relaySchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}
	return nil
}

// StopAll stops all jobs and waits for running passes to finish.
func (jm *JobManager) StopAll() {
	jm.outboxRelayJob.Stop()
}
