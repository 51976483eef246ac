package sharepoint

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

// ItemIDField is the record field that carries an item's identifier.
const ItemIDField = "itemId"

// ItemID identifies an item within a SharePoint list.
type ItemID int

func (id ItemID) String() string {
	return strconv.Itoa(int(id))
}

// ParseItemID parses the decimal form of an item identifier.
func ParseItemID(s string) (ItemID, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid item id %q", s)
	}
	return ItemID(n), nil
}

// Item is a single list record, keyed by field name.
type Item map[string]interface{}

// ID returns the identifier stored under ItemIDField.
// Numbers decoded from JSON arrive as float64 or json.Number, so both are accepted.
func (i Item) ID() (ItemID, error) {
	raw, ok := i[ItemIDField]
	if !ok || raw == nil {
		return 0, errors.Errorf("item has no %s field", ItemIDField)
	}

	switch v := raw.(type) {
	case ItemID:
		return v, nil
	case int:
		return ItemID(v), nil
	case int64:
		return ItemID(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, errors.Errorf("%s %v is not an integer", ItemIDField, v)
		}
		return ItemID(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, errors.Wrapf(err, "invalid %s %q", ItemIDField, v.String())
		}
		return ItemID(n), nil
	case string:
		return ParseItemID(v)
	default:
		return 0, errors.Errorf("unsupported %s type %T", ItemIDField, raw)
	}
}

// Clone returns a shallow copy of the item.
func (i Item) Clone() Item {
	out := make(Item, len(i))
	for k, v := range i {
		out[k] = v
	}
	return out
}

// ListResponse is the result of reading an entire list.
type ListResponse struct {
	Items []Item
}
