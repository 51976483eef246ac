package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/mattermost/sharepoint-list-sync-plugin/server/adapter"
	"github.com/mattermost/sharepoint-list-sync-plugin/server/sharepoint"
)

// FileSource implements ItemSource over a saved list export: a JSON object
// mapping item ids to items, as printed by `splist list`.
type FileSource struct {
	listID   string
	filePath string
}

// NewFileSource returns a source that reports listID and reads filePath on every List call.
func NewFileSource(listID, filePath string) *FileSource {
	return &FileSource{listID: listID, filePath: filePath}
}

// ListID returns the list the export was taken from.
func (f *FileSource) ListID() string {
	return f.listID
}

// List reads the export file.
func (f *FileSource) List(_ context.Context, _ adapter.ListRequest) (map[sharepoint.ItemID]sharepoint.Item, error) {
	return ReadSnapshotFile(f.filePath)
}

// ReadSnapshotFile loads a list export. Keys must be item ids; numbers are
// kept as json.Number.
func ReadSnapshotFile(filePath string) (map[sharepoint.ItemID]sharepoint.Item, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read file %s", filePath)
	}

	var raw map[string]sharepoint.Item
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrapf(err, "failed to parse JSON from %s", filePath)
	}

	items := make(map[sharepoint.ItemID]sharepoint.Item, len(raw))
	for key, item := range raw {
		id, err := sharepoint.ParseItemID(key)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read export %s", filePath)
		}
		items[id] = item
	}
	return items, nil
}
