// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// StaleOrderJob - runs every minute and requests cancellation of orders that
// have stayed pending longer than the configured TTL. Cancellation is
// published as an event rather than written directly, so auto-expiry goes
// through the same state machine as provider webhooks.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(staleOrderJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// A zero stale-order TTL disables the sweep.
package jobs
