package sharepoint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const (
	defaultTimeout = 30 * time.Second

	acceptNoMetadata = "application/json;odata=nometadata"

	// sharePointIDField is the identifier SharePoint assigns to list items.
	sharePointIDField = "Id"
)

// Options configures a Client. See NewClient.
type Options struct {
	// SiteURL is the absolute URL of the SharePoint site holding the list,
	// e.g. https://contoso.sharepoint.com/sites/team.
	SiteURL string

	Username string
	Password string

	// HTTPClient overrides the HTTP client used for requests.
	HTTPClient *http.Client

	// Timeout applies when HTTPClient is nil. Defaults to 30s.
	Timeout time.Duration
}

// Client talks to the SharePoint REST API of a single site.
type Client struct {
	siteURL    string
	username   string
	password   string
	httpClient *http.Client

	digestLock sync.RWMutex
	digest     string
}

// NewClient validates opts and returns a Client. No network activity happens here.
func NewClient(opts Options) (*Client, error) {
	siteURL := strings.TrimRight(strings.TrimSpace(opts.SiteURL), "/")
	if siteURL == "" {
		return nil, errors.New("sharepoint: site URL is required")
	}

	parsed, err := url.Parse(siteURL)
	if err != nil {
		return nil, errors.Wrap(err, "sharepoint: invalid site URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.Errorf("sharepoint: site URL must be http or https, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("sharepoint: site URL has no host")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		siteURL:    siteURL,
		username:   opts.Username,
		password:   opts.Password,
		httpClient: httpClient,
	}, nil
}

type contextInfo struct {
	FormDigestValue string `json:"FormDigestValue"`
}

// Login authenticates against the site and stores the request digest needed
// for write operations.
func (c *Client) Login(ctx context.Context) error {
	var info contextInfo
	if err := c.do(ctx, http.MethodPost, "/_api/contextinfo", nil, nil, &info); err != nil {
		return errors.Wrap(err, "failed to fetch context info")
	}
	if info.FormDigestValue == "" {
		return errors.New("context info response has no form digest")
	}

	c.digestLock.Lock()
	c.digest = info.FormDigestValue
	c.digestLock.Unlock()

	return nil
}

// CreateItem adds data as a new item of the list.
func (c *Client) CreateItem(ctx context.Context, listID string, data Item) (Item, error) {
	headers, err := c.writeHeaders("")
	if err != nil {
		return nil, err
	}

	var created Item
	if err := c.do(ctx, http.MethodPost, itemsPath(listID), headers, toFields(data), &created); err != nil {
		return nil, err
	}
	return fromFields(created), nil
}

// ReadItem fetches a single item.
func (c *Client) ReadItem(ctx context.Context, listID string, id ItemID) (Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodGet, itemPath(listID, id), nil, nil, &item); err != nil {
		return nil, err
	}
	return fromFields(item), nil
}

// UpdateItem merges data into the item whose identifier is embedded in data,
// then returns the stored record.
func (c *Client) UpdateItem(ctx context.Context, listID string, data Item) (Item, error) {
	id, err := data.ID()
	if err != nil {
		return nil, err
	}

	headers, err := c.writeHeaders("MERGE")
	if err != nil {
		return nil, err
	}

	if err := c.do(ctx, http.MethodPost, itemPath(listID, id), headers, toFields(data), nil); err != nil {
		return nil, err
	}
	return c.ReadItem(ctx, listID, id)
}

// DeleteItem removes an item. SharePoint returns no body for deletes.
func (c *Client) DeleteItem(ctx context.Context, listID string, id ItemID) error {
	headers, err := c.writeHeaders("DELETE")
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, itemPath(listID, id), headers, nil, nil)
}

type listItemsResponse struct {
	Value []Item `json:"value"`
}

// ReadList fetches every item of the list.
func (c *Client) ReadList(ctx context.Context, listID string) (*ListResponse, error) {
	var res listItemsResponse
	if err := c.do(ctx, http.MethodGet, itemsPath(listID), nil, nil, &res); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(res.Value))
	for _, item := range res.Value {
		items = append(items, fromFields(item))
	}
	return &ListResponse{Items: items}, nil
}

func (c *Client) writeHeaders(method string) (http.Header, error) {
	c.digestLock.RLock()
	digest := c.digest
	c.digestLock.RUnlock()

	if digest == "" {
		return nil, errors.New("sharepoint: not logged in")
	}

	h := make(http.Header)
	h.Set("X-RequestDigest", digest)
	if method != "" {
		h.Set("X-HTTP-Method", method)
		h.Set("IF-MATCH", "*")
	}
	return h, nil
}

func (c *Client) do(ctx context.Context, method, path string, headers http.Header, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to encode request body")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.siteURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	for k, values := range headers {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", acceptNoMetadata)
	if body != nil {
		req.Header.Set("Content-Type", acceptNoMetadata)
	}
	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s failed", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		return &HTTPError{StatusCode: resp.StatusCode, Body: data}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return errors.Wrapf(err, "failed to decode response of %s %s", method, path)
	}
	return nil
}

func itemsPath(listID string) string {
	return fmt.Sprintf("/_api/web/lists(guid'%s')/items", url.PathEscape(listID))
}

func itemPath(listID string, id ItemID) string {
	return fmt.Sprintf("%s(%d)", itemsPath(listID), int(id))
}

// toFields strips the adapter-side identifier before sending a record.
func toFields(data Item) Item {
	out := data.Clone()
	delete(out, ItemIDField)
	return out
}

// fromFields surfaces SharePoint's Id as the itemId field.
func fromFields(item Item) Item {
	if item == nil {
		return nil
	}
	if id, ok := item[sharePointIDField]; ok {
		item[ItemIDField] = id
	}
	return item
}
