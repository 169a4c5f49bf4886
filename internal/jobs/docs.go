// Package jobs provides scheduled background tasks for the parcel lifecycle
// engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. SlaSweepJob - Runs every minute and reports parcels whose delivery
// deadline has passed without the parcel reaching a terminal status.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(overdueHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The sweep job only reads; a failed sweep is logged and retried on the next
// tick, never escalated.
package jobs
