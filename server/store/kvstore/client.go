package kvstore

import (
	"github.com/mattermost/mattermost/server/public/pluginapi"
)

// Client exposes KVStore operations through a well-defined interface.
// Keys and value formats are owned here so callers never touch raw KV entries.
type Client struct {
	client *pluginapi.Client
}

// NewKVStore creates a new KVStore client wrapping the pluginapi.Client.
func NewKVStore(client *pluginapi.Client) KVStore {
	return Client{
		client: client,
	}
}
