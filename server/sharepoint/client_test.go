package sharepoint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testListID = "6d2f1a3e-0000-4c1b-9a7e-123456789abc"

// fakeSite is a minimal in-memory SharePoint site serving one list.
type fakeSite struct {
	t      *testing.T
	items  map[int]map[string]interface{}
	nextID int
	digest string
}

func newFakeSite(t *testing.T) (*fakeSite, *httptest.Server) {
	site := &fakeSite{
		t:      t,
		items:  make(map[int]map[string]interface{}),
		nextID: 1,
		digest: "0x1234,19 Oct 2026",
	}

	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			user, pass, ok := req.BasicAuth()
			if !ok || user != "alice" || pass != "secret" {
				http.Error(w, `{"error":"access denied"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, req)
		})
	})
	r.HandleFunc("/_api/contextinfo", site.contextInfo).Methods(http.MethodPost)
	r.HandleFunc("/_api/web/lists(guid'{list}')/items", site.listItems).Methods(http.MethodGet)
	r.HandleFunc("/_api/web/lists(guid'{list}')/items", site.createItem).Methods(http.MethodPost)
	r.HandleFunc("/_api/web/lists(guid'{list}')/items({id:[0-9]+})", site.getItem).Methods(http.MethodGet)
	r.HandleFunc("/_api/web/lists(guid'{list}')/items({id:[0-9]+})", site.writeItem).Methods(http.MethodPost)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return site, srv
}

func (s *fakeSite) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(s.t, json.NewEncoder(w).Encode(v))
}

func (s *fakeSite) checkList(w http.ResponseWriter, req *http.Request) bool {
	if mux.Vars(req)["list"] != testListID {
		http.Error(w, `{"error":"list not found"}`, http.StatusNotFound)
		return false
	}
	return true
}

func (s *fakeSite) checkDigest(w http.ResponseWriter, req *http.Request) bool {
	if req.Header.Get("X-RequestDigest") != s.digest {
		http.Error(w, `{"error":"invalid digest"}`, http.StatusForbidden)
		return false
	}
	return true
}

func (s *fakeSite) contextInfo(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"FormDigestValue":          s.digest,
		"FormDigestTimeoutSeconds": 1800,
	})
}

func (s *fakeSite) listItems(w http.ResponseWriter, req *http.Request) {
	if !s.checkList(w, req) {
		return
	}
	values := make([]map[string]interface{}, 0, len(s.items))
	for _, item := range s.items {
		values = append(values, item)
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"value": values})
}

func (s *fakeSite) createItem(w http.ResponseWriter, req *http.Request) {
	if !s.checkList(w, req) || !s.checkDigest(w, req) {
		return
	}
	var fields map[string]interface{}
	require.NoError(s.t, json.NewDecoder(req.Body).Decode(&fields))
	fields["Id"] = s.nextID
	s.items[s.nextID] = fields
	s.nextID++
	s.writeJSON(w, http.StatusCreated, fields)
}

func (s *fakeSite) getItem(w http.ResponseWriter, req *http.Request) {
	if !s.checkList(w, req) {
		return
	}
	id, _ := ParseItemID(mux.Vars(req)["id"])
	item, ok := s.items[int(id)]
	if !ok {
		http.Error(w, `{"error":"item does not exist"}`, http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, item)
}

func (s *fakeSite) writeItem(w http.ResponseWriter, req *http.Request) {
	if !s.checkList(w, req) || !s.checkDigest(w, req) {
		return
	}
	id, _ := ParseItemID(mux.Vars(req)["id"])
	item, ok := s.items[int(id)]
	if !ok {
		http.Error(w, `{"error":"item does not exist"}`, http.StatusNotFound)
		return
	}

	switch req.Header.Get("X-HTTP-Method") {
	case "MERGE":
		var fields map[string]interface{}
		require.NoError(s.t, json.NewDecoder(req.Body).Decode(&fields))
		for k, v := range fields {
			item[k] = v
		}
	case "DELETE":
		delete(s.items, int(id))
	default:
		http.Error(w, `{"error":"unsupported method"}`, http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func newTestClient(t *testing.T, srv *httptest.Server, password string) *Client {
	client, err := NewClient(Options{
		SiteURL:    srv.URL + "/",
		Username:   "alice",
		Password:   password,
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)
	return client
}

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{name: "missing site url", opts: Options{}, wantErr: "site URL is required"},
		{name: "bad scheme", opts: Options{SiteURL: "ftp://example.com"}, wantErr: "must be http or https"},
		{name: "no host", opts: Options{SiteURL: "https://"}, wantErr: "no host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.opts)
			require.Error(t, err)
			assert.Nil(t, client)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	client, err := NewClient(Options{SiteURL: "https://contoso.sharepoint.com/sites/team/"})
	require.NoError(t, err)
	assert.Equal(t, "https://contoso.sharepoint.com/sites/team", client.siteURL)
	assert.Equal(t, defaultTimeout, client.httpClient.Timeout)
}

func TestClient_Login(t *testing.T) {
	t.Run("stores the form digest", func(t *testing.T) {
		site, srv := newFakeSite(t)
		client := newTestClient(t, srv, "secret")

		require.NoError(t, client.Login(context.Background()))
		assert.Equal(t, site.digest, client.digest)
	})

	t.Run("bad credentials", func(t *testing.T) {
		_, srv := newFakeSite(t)
		client := newTestClient(t, srv, "wrong")

		err := client.Login(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to fetch context info")

		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.True(t, httpErr.Unauthorized())
		assert.Empty(t, client.digest)
	})
}

func TestClient_WritesRequireLogin(t *testing.T) {
	_, srv := newFakeSite(t)
	client := newTestClient(t, srv, "secret")

	_, err := client.CreateItem(context.Background(), testListID, Item{"Title": "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")

	err = client.DeleteItem(context.Background(), testListID, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestClient_ItemLifecycle(t *testing.T) {
	site, srv := newFakeSite(t)
	client := newTestClient(t, srv, "secret")
	ctx := context.Background()

	require.NoError(t, client.Login(ctx))

	created, err := client.CreateItem(ctx, testListID, Item{"Title": "evan", ItemIDField: 99})
	require.NoError(t, err)
	id, err := created.ID()
	require.NoError(t, err)
	assert.Equal(t, ItemID(1), id)
	assert.Equal(t, "evan", created["Title"])
	assert.NotContains(t, site.items[1], ItemIDField, "itemId is adapter-side only")

	read, err := client.ReadItem(ctx, testListID, id)
	require.NoError(t, err)
	assert.Equal(t, "evan", read["Title"])

	updated, err := client.UpdateItem(ctx, testListID, Item{"Title": "evan2", ItemIDField: id})
	require.NoError(t, err)
	assert.Equal(t, "evan2", updated["Title"])

	_, err = client.CreateItem(ctx, testListID, Item{"Title": "second"})
	require.NoError(t, err)

	list, err := client.ReadList(ctx, testListID)
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	for _, item := range list.Items {
		_, err := item.ID()
		assert.NoError(t, err)
	}

	require.NoError(t, client.DeleteItem(ctx, testListID, id))
	_, err = client.ReadItem(ctx, testListID, id)
	require.Error(t, err)
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.True(t, httpErr.NotFound())
}

func TestClient_UnknownList(t *testing.T) {
	_, srv := newFakeSite(t)
	client := newTestClient(t, srv, "secret")

	_, err := client.ReadList(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=404")
}

func TestClient_UpdateRequiresItemID(t *testing.T) {
	_, srv := newFakeSite(t)
	client := newTestClient(t, srv, "secret")
	require.NoError(t, client.Login(context.Background()))

	_, err := client.UpdateItem(context.Background(), testListID, Item{"Title": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no itemId field")
}
