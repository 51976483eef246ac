package kvstore

import (
	"time"

	"github.com/mattermost/sharepoint-list-sync-plugin/server/sharepoint"
)

type KVStore interface {
	// List snapshot methods - the last observed content of each synced list
	SaveListSnapshot(listID string, items map[sharepoint.ItemID]sharepoint.Item) error
	GetListSnapshot(listID string) (map[sharepoint.ItemID]sharepoint.Item, error)

	// Sync timestamp methods - report when a list was last synced
	SaveLastSyncTime(listID string, t time.Time) error
	GetLastSyncTime(listID string) (time.Time, error)
}
