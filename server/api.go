package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/mattermost/sharepoint-list-sync-plugin/server/adapter"
	"github.com/mattermost/sharepoint-list-sync-plugin/server/sharepoint"
)

// initRouter initializes the HTTP router for the plugin.
func (p *Plugin) initRouter() *mux.Router {
	router := mux.NewRouter()

	// Middleware to require that the user is logged in
	router.Use(p.MattermostAuthorizationRequired)

	apiRouter := router.PathPrefix("/api/v1").Subrouter()

	itemsRouter := apiRouter.PathPrefix("/items").Subrouter()
	itemsRouter.Use(p.AdapterRequired)
	itemsRouter.HandleFunc("", p.handleListItems).Methods(http.MethodGet)
	itemsRouter.HandleFunc("", p.handleCreateItem).Methods(http.MethodPost)
	itemsRouter.HandleFunc("/{id:[0-9]+}", p.handleReadItem).Methods(http.MethodGet)
	itemsRouter.HandleFunc("/{id:[0-9]+}", p.handleUpdateItem).Methods(http.MethodPut)
	itemsRouter.HandleFunc("/{id:[0-9]+}", p.handleDeleteItem).Methods(http.MethodDelete)

	apiRouter.HandleFunc("/sync/status", p.handleSyncStatus).Methods(http.MethodGet)

	return router
}

// MattermostAuthorizationRequired rejects requests that do not come from a logged in user.
func (p *Plugin) MattermostAuthorizationRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("Mattermost-User-ID")
		if userID == "" {
			http.Error(w, "Not authorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type adapterContextKey struct{}

// AdapterRequired rejects item requests while no list is configured. Otherwise
// the current adapter is bound to the request, so a configuration change
// mid-request does not swap it out.
func (p *Plugin) AdapterRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		listAdapter := p.getAdapter()
		if listAdapter == nil {
			http.Error(w, "SharePoint list is not configured", http.StatusServiceUnavailable)
			return
		}

		ctx := context.WithValue(r.Context(), adapterContextKey{}, listAdapter)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestAdapter returns the adapter bound by AdapterRequired, falling back to
// the current one. It writes a 503 and returns false when neither is set.
func (p *Plugin) requestAdapter(w http.ResponseWriter, r *http.Request) (*adapter.Adapter, bool) {
	listAdapter, _ := r.Context().Value(adapterContextKey{}).(*adapter.Adapter)
	if listAdapter == nil {
		listAdapter = p.getAdapter()
	}
	if listAdapter == nil {
		http.Error(w, "SharePoint list is not configured", http.StatusServiceUnavailable)
		return nil, false
	}
	return listAdapter, true
}

type itemPayload struct {
	Data sharepoint.Item `json:"data"`
}

func (p *Plugin) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	listAdapter, ok := p.requestAdapter(w, r)
	if !ok {
		return
	}

	var payload itemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Data == nil {
		http.Error(w, "request body must be {\"data\": {...}}", http.StatusBadRequest)
		return
	}

	res, err := listAdapter.Create(r.Context(), adapter.CreateRequest{Data: payload.Data})
	if err != nil {
		p.writeAdapterError(w, err)
		return
	}
	p.writeJSON(w, http.StatusCreated, res)
}

func (p *Plugin) handleReadItem(w http.ResponseWriter, r *http.Request) {
	listAdapter, ok := p.requestAdapter(w, r)
	if !ok {
		return
	}

	id, ok := p.itemID(w, r)
	if !ok {
		return
	}

	res, err := listAdapter.Read(r.Context(), adapter.ReadRequest{ID: id})
	if err != nil {
		p.writeAdapterError(w, err)
		return
	}
	p.writeJSON(w, http.StatusOK, res)
}

func (p *Plugin) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	listAdapter, ok := p.requestAdapter(w, r)
	if !ok {
		return
	}

	id, ok := p.itemID(w, r)
	if !ok {
		return
	}

	var payload itemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Data == nil {
		http.Error(w, "request body must be {\"data\": {...}}", http.StatusBadRequest)
		return
	}

	res, err := listAdapter.Update(r.Context(), adapter.UpdateRequest{ID: id, Data: payload.Data})
	if err != nil {
		p.writeAdapterError(w, err)
		return
	}
	p.writeJSON(w, http.StatusOK, res)
}

func (p *Plugin) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	listAdapter, ok := p.requestAdapter(w, r)
	if !ok {
		return
	}

	id, ok := p.itemID(w, r)
	if !ok {
		return
	}

	res, err := listAdapter.Delete(r.Context(), adapter.DeleteRequest{ID: id})
	if err != nil {
		p.writeAdapterError(w, err)
		return
	}
	p.writeJSON(w, http.StatusOK, res)
}

func (p *Plugin) handleListItems(w http.ResponseWriter, r *http.Request) {
	listAdapter, ok := p.requestAdapter(w, r)
	if !ok {
		return
	}

	res, err := listAdapter.List(r.Context(), adapter.ListRequest{})
	if err != nil {
		p.writeAdapterError(w, err)
		return
	}
	p.writeJSON(w, http.StatusOK, res)
}

type syncStatus struct {
	ListID       string     `json:"list_id"`
	ListTitle    string     `json:"list_title"`
	LastSyncTime *time.Time `json:"last_sync_time"`
}

func (p *Plugin) handleSyncStatus(w http.ResponseWriter, _ *http.Request) {
	config := p.getConfiguration()
	if err := config.IsValid(); err != nil {
		http.Error(w, "SharePoint list is not configured", http.StatusServiceUnavailable)
		return
	}

	status := syncStatus{ListID: config.ListID, ListTitle: config.ListTitle}

	lastSync, err := p.store.GetLastSyncTime(config.ListID)
	if err != nil {
		p.client.Log.Error("Failed to get last sync time", "list_id", config.ListID, "error", err.Error())
		http.Error(w, "failed to get sync status", http.StatusInternalServerError)
		return
	}
	if !lastSync.IsZero() {
		status.LastSyncTime = &lastSync
	}

	p.writeJSON(w, http.StatusOK, status)
}

func (p *Plugin) itemID(w http.ResponseWriter, r *http.Request) (sharepoint.ItemID, bool) {
	id, err := sharepoint.ParseItemID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeAdapterError reports a failed list operation. Every adapter error
// originates at SharePoint, so it is surfaced as a bad gateway. The full error
// is only logged; the response carries the operation context and remote status.
func (p *Plugin) writeAdapterError(w http.ResponseWriter, err error) {
	if adapter.IsAuthError(err) {
		p.client.Log.Warn("SharePoint login failed", "error", err.Error())
	} else {
		p.client.Log.Error("SharePoint list operation failed", "error", err.Error())
	}
	http.Error(w, publicErrorMessage(err), http.StatusBadGateway)
}

// publicErrorMessage strips the root cause, which may hold a raw SharePoint
// response body, from err's message.
func publicErrorMessage(err error) string {
	msg := strings.TrimSuffix(err.Error(), ": "+errors.Cause(err).Error())
	if msg == err.Error() {
		msg = "SharePoint list operation failed"
	}

	var httpErr *sharepoint.HTTPError
	if errors.As(err, &httpErr) {
		msg = fmt.Sprintf("%s (sharepoint status %d)", msg, httpErr.StatusCode)
	}
	return msg
}

func (p *Plugin) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		p.client.Log.Error("Failed to write response", "error", err.Error())
	}
}
