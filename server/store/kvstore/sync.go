package kvstore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/mattermost/sharepoint-list-sync-plugin/server/sharepoint"
)

// Key prefixes for list sync state. Every key is suffixed with the list GUID
// so several lists can be tracked side by side.
const (
	// listSnapshotPrefix stores the items seen on the last successful sync.
	// Format: "list_snapshot_{listID}" -> JSON object of itemId -> item
	listSnapshotPrefix = "list_snapshot_"

	// lastSyncTimestampPrefix stores when the list was last synced successfully.
	// Format: "last_sync_timestamp_{listID}" -> RFC3339 timestamp
	lastSyncTimestampPrefix = "last_sync_timestamp_"
)

// SaveListSnapshot stores the items of a list as observed by the last sync.
func (kv Client) SaveListSnapshot(listID string, items map[sharepoint.ItemID]sharepoint.Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal snapshot for list %s", listID)
	}

	_, err = kv.client.KV.Set(listSnapshotPrefix+listID, data)
	if err != nil {
		return errors.Wrapf(err, "failed to save snapshot for list %s", listID)
	}
	return nil
}

// GetListSnapshot returns the items stored by the last sync, or an empty map
// if the list was never synced.
func (kv Client) GetListSnapshot(listID string) (map[sharepoint.ItemID]sharepoint.Item, error) {
	var data []byte
	if err := kv.client.KV.Get(listSnapshotPrefix+listID, &data); err != nil {
		return nil, errors.Wrapf(err, "failed to get snapshot for list %s", listID)
	}

	items := make(map[sharepoint.ItemID]sharepoint.Item)
	if len(data) == 0 {
		return items, nil
	}

	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal snapshot for list %s", listID)
	}
	return items, nil
}

// SaveLastSyncTime stores the timestamp of the last successful sync of a list.
func (kv Client) SaveLastSyncTime(listID string, t time.Time) error {
	// Store as RFC3339 format for readability and easy parsing
	timestamp := t.Format(time.RFC3339)
	_, err := kv.client.KV.Set(lastSyncTimestampPrefix+listID, []byte(timestamp))
	if err != nil {
		return errors.Wrapf(err, "failed to save last sync timestamp for list %s", listID)
	}
	return nil
}

// GetLastSyncTime returns the timestamp of the last successful sync of a list.
// Returns zero time if the list has never been synced.
func (kv Client) GetLastSyncTime(listID string) (time.Time, error) {
	var data []byte
	if err := kv.client.KV.Get(lastSyncTimestampPrefix+listID, &data); err != nil {
		return time.Time{}, errors.Wrapf(err, "failed to get last sync timestamp for list %s", listID)
	}
	if len(data) == 0 {
		return time.Time{}, nil
	}

	t, err := time.Parse(time.RFC3339, string(data))
	if err != nil {
		return time.Time{}, errors.Wrap(err, fmt.Sprintf("failed to parse timestamp: %s", string(data)))
	}
	return t, nil
}
