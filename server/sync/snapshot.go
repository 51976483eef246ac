package sync

import (
	"encoding/json"
	"reflect"
	"sort"

	"github.com/mattermost/sharepoint-list-sync-plugin/server/sharepoint"
)

// ChangeSet lists the item ids that differ between two snapshots of a list.
// Each slice is sorted ascending.
type ChangeSet struct {
	Created []sharepoint.ItemID `json:"created"`
	Updated []sharepoint.ItemID `json:"updated"`
	Deleted []sharepoint.ItemID `json:"deleted"`
}

// Empty reports whether nothing changed.
func (c ChangeSet) Empty() bool {
	return len(c.Created) == 0 && len(c.Updated) == 0 && len(c.Deleted) == 0
}

// DiffSnapshots compares the previous and current content of a list.
//
// Items are compared by their JSON form, so a number decoded as float64 from
// the KVStore equals the same number decoded as json.Number from SharePoint.
func DiffSnapshots(prev, next map[sharepoint.ItemID]sharepoint.Item) ChangeSet {
	changes := ChangeSet{
		Created: []sharepoint.ItemID{},
		Updated: []sharepoint.ItemID{},
		Deleted: []sharepoint.ItemID{},
	}

	for id, item := range next {
		old, exists := prev[id]
		if !exists {
			changes.Created = append(changes.Created, id)
			continue
		}
		if !sameItem(old, item) {
			changes.Updated = append(changes.Updated, id)
		}
	}

	for id := range prev {
		if _, exists := next[id]; !exists {
			changes.Deleted = append(changes.Deleted, id)
		}
	}

	sortIDs(changes.Created)
	sortIDs(changes.Updated)
	sortIDs(changes.Deleted)

	return changes
}

func sameItem(a, b sharepoint.Item) bool {
	ca, errA := canonical(a)
	cb, errB := canonical(b)
	if errA != nil || errB != nil {
		// Unencodable items are treated as changed so they are never silently skipped.
		return false
	}
	return reflect.DeepEqual(ca, cb)
}

func canonical(item sharepoint.Item) (interface{}, error) {
	data, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func sortIDs(ids []sharepoint.ItemID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
