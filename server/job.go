package main

import (
	"context"
	"time"

	"github.com/mattermost/mattermost/server/public/pluginapi/cluster"

	listsync "github.com/mattermost/sharepoint-list-sync-plugin/server/sync"
)

// nextWaitInterval calculates the duration to wait before the next sync execution.
// This function is called by the cluster job scheduler to determine when to run
// the sync job next.
//
// On the first run (when metadata.LastFinished is zero), the job runs immediately.
// On subsequent runs, it waits for the configured interval from the last completion time.
func (p *Plugin) nextWaitInterval(now time.Time, metadata cluster.JobMetadata) time.Duration {
	// First run - execute immediately
	if metadata.LastFinished.IsZero() {
		return 0
	}

	nextRunTime := metadata.LastFinished.Add(p.getConfiguration().syncInterval())

	// If next run time is in the past, run immediately
	if nextRunTime.Before(now) {
		return 0
	}

	return nextRunTime.Sub(now)
}

// runSync snapshots the configured list and records what changed since the last run.
//
// Failures are logged and the job simply waits for its next run; the stored
// snapshot is only replaced after a successful list read.
func (p *Plugin) runSync() {
	listAdapter := p.getAdapter()
	if listAdapter == nil {
		p.client.Log.Debug("Skipping list sync, plugin is not configured")
		return
	}

	timeout := p.getConfiguration().syncInterval()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	changes, err := listsync.SyncList(ctx, listAdapter, p.store, p.API, time.Now)
	if err != nil {
		p.client.Log.Error("Failed to sync SharePoint list", "list_id", listAdapter.ListID(), "error", err.Error())
		return
	}

	if changes.Empty() {
		p.client.Log.Debug("No list changes since last sync", "list_id", listAdapter.ListID())
	}
}
