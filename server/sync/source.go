package sync

import (
	"context"

	"github.com/mattermost/sharepoint-list-sync-plugin/server/adapter"
	"github.com/mattermost/sharepoint-list-sync-plugin/server/sharepoint"
)

// ItemSource defines the list a snapshot sync reads from.
//
// *adapter.Adapter satisfies it: each call returns the whole list keyed by item
// id. The source owns its own session handling; SyncList never logs in.
type ItemSource interface {
	// ListID identifies the list, used as the KVStore key for its snapshot.
	ListID() string

	// List returns every item of the list. The request's query is not applied.
	List(ctx context.Context, req adapter.ListRequest) (map[sharepoint.ItemID]sharepoint.Item, error)
}
