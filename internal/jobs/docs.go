// Package jobs provides scheduled background tasks for parcelhub, built on
// github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
// OutboxRelayJob re-dispatches outbox events that were not published right
// after their command committed: PENDING rows older than the stale window
// (the process died before publishing) and PROCESSING rows whose claim
// expired (the process died while dispatching). Passes never overlap within
// one process, and across instances a redis lock lets only one of them relay.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relay, locker, cfg.OutboxRelaySchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
