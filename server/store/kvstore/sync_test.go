package kvstore

import (
	"testing"
	"time"

	"github.com/mattermost/mattermost/server/public/model"
	"github.com/mattermost/mattermost/server/public/plugin/plugintest"
	"github.com/mattermost/mattermost/server/public/pluginapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mattermost/sharepoint-list-sync-plugin/server/sharepoint"
)

func newTestStore() (KVStore, *plugintest.API) {
	api := &plugintest.API{}
	return NewKVStore(pluginapi.NewClient(api, &plugintest.Driver{})), api
}

func TestListSnapshot(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		store, api := newTestStore()

		var saved []byte
		api.On("KVSetWithOptions", "list_snapshot_abc", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).([]byte)
			}).
			Return(true, nil)

		items := map[sharepoint.ItemID]sharepoint.Item{
			10: {"itemId": 10, "Title": "a"},
			11: {"itemId": 11, "Title": "b"},
		}
		require.NoError(t, store.SaveListSnapshot("abc", items))
		require.NotEmpty(t, saved)

		api.On("KVGet", "list_snapshot_abc").Return(saved, nil)

		got, err := store.GetListSnapshot("abc")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[10]["Title"])
		assert.Equal(t, "b", got[11]["Title"])
		api.AssertExpectations(t)
	})

	t.Run("missing snapshot is empty", func(t *testing.T) {
		store, api := newTestStore()
		api.On("KVGet", "list_snapshot_abc").Return(nil, nil)

		got, err := store.GetListSnapshot("abc")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("kv failure", func(t *testing.T) {
		store, api := newTestStore()
		api.On("KVGet", "list_snapshot_abc").Return(nil, model.NewAppError("KVGet", "app.kv.get", nil, "db down", 500))

		got, err := store.GetListSnapshot("abc")
		require.Error(t, err)
		assert.Nil(t, got)
		assert.Contains(t, err.Error(), "failed to get snapshot for list abc")
	})
}

func TestLastSyncTime(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		store, api := newTestStore()
		now := time.Date(2026, 10, 19, 14, 30, 0, 0, time.UTC)

		api.On("KVSetWithOptions", "last_sync_timestamp_abc", []byte("2026-10-19T14:30:00Z"), mock.Anything).
			Return(true, nil)
		require.NoError(t, store.SaveLastSyncTime("abc", now))

		api.On("KVGet", "last_sync_timestamp_abc").Return([]byte("2026-10-19T14:30:00Z"), nil)
		got, err := store.GetLastSyncTime("abc")
		require.NoError(t, err)
		assert.True(t, now.Equal(got))
		api.AssertExpectations(t)
	})

	t.Run("never synced", func(t *testing.T) {
		store, api := newTestStore()
		api.On("KVGet", "last_sync_timestamp_abc").Return(nil, nil)

		got, err := store.GetLastSyncTime("abc")
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	})

	t.Run("corrupt timestamp", func(t *testing.T) {
		store, api := newTestStore()
		api.On("KVGet", "last_sync_timestamp_abc").Return([]byte("yesterday"), nil)

		_, err := store.GetLastSyncTime("abc")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse timestamp")
	})
}
