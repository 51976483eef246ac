package sync

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mattermost/sharepoint-list-sync-plugin/server/adapter"
	"github.com/mattermost/sharepoint-list-sync-plugin/server/store/kvstore"
)

// SyncList pulls the full content of a list, compares it with the snapshot
// stored by the previous run and persists the new snapshot.
//
// Workflow:
//  1. List every item through the source (logs in on first use)
//  2. Load the previous snapshot from KVStore (empty on first run)
//  3. Diff the two snapshots
//  4. Save the new snapshot, then the sync timestamp
//
// Nothing is persisted when listing fails, so the next run diffs against the
// last good snapshot. The returned ChangeSet describes what changed since then.
func SyncList(ctx context.Context, source ItemSource, store kvstore.KVStore, logger adapter.Logger, now func() time.Time) (*ChangeSet, error) {
	runID := uuid.NewString()
	listID := source.ListID()

	logger.LogInfo("List sync starting", "list_id", listID, "run_id", runID)

	items, err := source.List(ctx, adapter.ListRequest{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list items")
	}

	previous, err := store.GetListSnapshot(listID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load previous snapshot")
	}

	changes := DiffSnapshots(previous, items)

	if err := store.SaveListSnapshot(listID, items); err != nil {
		return nil, errors.Wrap(err, "failed to save snapshot")
	}

	if err := store.SaveLastSyncTime(listID, now()); err != nil {
		// The snapshot is already saved; only the status report is stale.
		logger.LogWarn("Failed to save last sync time", "list_id", listID, "run_id", runID, "error", err.Error())
	}

	logger.LogInfo("List sync completed",
		"list_id", listID,
		"run_id", runID,
		"items", len(items),
		"created", len(changes.Created),
		"updated", len(changes.Updated),
		"deleted", len(changes.Deleted),
	)

	return &changes, nil
}
