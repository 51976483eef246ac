// Package adapter exposes create/read/update/delete/list over a single
// SharePoint list, logging in lazily before the first remote call.
package adapter

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/mattermost/sharepoint-list-sync-plugin/server/sharepoint"
)

//go:generate mockgen -destination=mocks/mock_store_client.go -package=mocks github.com/mattermost/sharepoint-list-sync-plugin/server/adapter StoreClient

// StoreClient is the remote list store the adapter drives.
// *sharepoint.Client implements it.
type StoreClient interface {
	Login(ctx context.Context) error
	CreateItem(ctx context.Context, listID string, data sharepoint.Item) (sharepoint.Item, error)
	ReadItem(ctx context.Context, listID string, id sharepoint.ItemID) (sharepoint.Item, error)
	UpdateItem(ctx context.Context, listID string, data sharepoint.Item) (sharepoint.Item, error)
	DeleteItem(ctx context.Context, listID string, id sharepoint.ItemID) error
	ReadList(ctx context.Context, listID string) (*sharepoint.ListResponse, error)
}

// Config identifies the list an Adapter serves and how to reach it.
type Config struct {
	// Store is handed to sharepoint.NewClient untouched.
	Store sharepoint.Options

	// ListTitle is the display title of the list.
	ListTitle string

	// ListID is the list GUID used on every remote call.
	ListID string
}

func (c Config) validate() error {
	if strings.TrimSpace(c.ListID) == "" {
		return errors.New("list id must be a sharepoint list Id")
	}
	if strings.TrimSpace(c.ListTitle) == "" {
		return errors.New("list title must be a sharepoint list Title")
	}
	return nil
}

// CreateRequest carries the fields of the item to create.
type CreateRequest struct {
	Data sharepoint.Item
}

// ReadRequest names the item to read.
type ReadRequest struct {
	ID sharepoint.ItemID
}

// UpdateRequest carries the item to update and its new fields.
type UpdateRequest struct {
	ID   sharepoint.ItemID
	Data sharepoint.Item
}

// DeleteRequest names the item to delete.
type DeleteRequest struct {
	ID sharepoint.ItemID
}

// ListRequest is accepted for symmetry with the other operations.
// Query is not applied; List always returns the whole list.
type ListRequest struct {
	Query map[string]interface{}
}

// CreateResult pairs the new item's identifier with the record SharePoint returned.
type CreateResult struct {
	UID  sharepoint.ItemID `json:"uid"`
	Data sharepoint.Item   `json:"data"`
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used for session events.
func WithLogger(logger Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// Adapter serves one SharePoint list. Each Adapter holds its own session state,
// so adapters for different lists authenticate independently.
type Adapter struct {
	client    StoreClient
	listID    string
	listTitle string
	logger    Logger

	authenticated atomic.Bool

	create operation[CreateRequest, *CreateResult]
	read   operation[ReadRequest, sharepoint.Item]
	update operation[UpdateRequest, sharepoint.Item]
	del    operation[DeleteRequest, sharepoint.Item]
	list   operation[ListRequest, map[sharepoint.ItemID]sharepoint.Item]
}

// New validates cfg, builds the SharePoint client and returns an Adapter.
// It performs no network activity; the first operation logs in.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	client, err := sharepoint.NewClient(cfg.Store)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create sharepoint client")
	}

	return NewWithClient(cfg, client, opts...)
}

// NewWithClient returns an Adapter driving the supplied client. cfg.Store is ignored.
func NewWithClient(cfg Config, client StoreClient, opts ...Option) (*Adapter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if client == nil {
		return nil, errors.New("store client is required")
	}

	a := &Adapter{
		client:    client,
		listID:    cfg.ListID,
		listTitle: cfg.ListTitle,
		logger:    nopLogger{},
	}
	for _, opt := range opts {
		opt(a)
	}

	a.create = ensureLogin(a, a.doCreate)
	a.read = ensureLogin(a, a.doRead)
	a.update = ensureLogin(a, a.doUpdate)
	a.del = ensureLogin(a, a.doDelete)
	a.list = ensureLogin(a, a.doList)

	return a, nil
}

// ListID returns the GUID of the served list.
func (a *Adapter) ListID() string { return a.listID }

// ListTitle returns the display title of the served list.
func (a *Adapter) ListTitle() string { return a.listTitle }

// Create adds a new item to the list.
func (a *Adapter) Create(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	return a.create(ctx, req)
}

// Read returns the item as stored in SharePoint.
func (a *Adapter) Read(ctx context.Context, req ReadRequest) (sharepoint.Item, error) {
	return a.read(ctx, req)
}

// Update writes req.Data to the item and returns the stored record.
func (a *Adapter) Update(ctx context.Context, req UpdateRequest) (sharepoint.Item, error) {
	return a.update(ctx, req)
}

// Delete removes the item and returns its content as read just before removal.
func (a *Adapter) Delete(ctx context.Context, req DeleteRequest) (sharepoint.Item, error) {
	return a.del(ctx, req)
}

// List returns every item of the list keyed by item id.
func (a *Adapter) List(ctx context.Context, req ListRequest) (map[sharepoint.ItemID]sharepoint.Item, error) {
	return a.list(ctx, req)
}

func (a *Adapter) doCreate(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	res, err := a.client.CreateItem(ctx, a.listID, req.Data)
	if err != nil {
		return nil, errors.Wrapf(err, "sharepoint create error for list %s", a.listID)
	}

	uid, err := res.ID()
	if err != nil {
		return nil, errors.Wrapf(err, "sharepoint create error for list %s", a.listID)
	}

	return &CreateResult{UID: uid, Data: res}, nil
}

func (a *Adapter) doRead(ctx context.Context, req ReadRequest) (sharepoint.Item, error) {
	res, err := a.client.ReadItem(ctx, a.listID, req.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "sharepoint read error for list %s for item id %s", a.listID, req.ID)
	}
	return res, nil
}

func (a *Adapter) doUpdate(ctx context.Context, req UpdateRequest) (sharepoint.Item, error) {
	// SharePoint locates the record by the id embedded in the payload.
	// The caller's map is left untouched.
	data := req.Data.Clone()
	data[sharepoint.ItemIDField] = req.ID

	res, err := a.client.UpdateItem(ctx, a.listID, data)
	if err != nil {
		return nil, errors.Wrapf(err, "sharepoint update error for list %s for item id %s", a.listID, req.ID)
	}
	return res, nil
}

func (a *Adapter) doDelete(ctx context.Context, req DeleteRequest) (sharepoint.Item, error) {
	// SharePoint's delete has no response body, so the item is read first and
	// that snapshot is what the caller gets back.
	snapshot, err := a.Read(ctx, ReadRequest{ID: req.ID})
	if err != nil {
		return nil, preDeleteReadError{
			errors.Wrapf(err, "delete failed to perform pre-delete read for item %s, list %s", req.ID, a.listID),
		}
	}

	if err := a.client.DeleteItem(ctx, a.listID, req.ID); err != nil {
		return nil, errors.Wrapf(err, "sharepoint delete error for item %s, list %s", req.ID, a.listID)
	}

	return snapshot, nil
}

func (a *Adapter) doList(ctx context.Context, _ ListRequest) (map[sharepoint.ItemID]sharepoint.Item, error) {
	res, err := a.client.ReadList(ctx, a.listID)
	if err != nil {
		return nil, errors.Wrapf(err, "sharepoint list error for list %s", a.listID)
	}

	items := make(map[sharepoint.ItemID]sharepoint.Item)
	if res == nil {
		return items, nil
	}

	for _, item := range res.Items {
		id, err := item.ID()
		if err != nil {
			return nil, errors.Wrapf(err, "sharepoint list error for list %s", a.listID)
		}
		items[id] = item
	}
	return items, nil
}
