package main

import (
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/mattermost/mattermost/server/public/plugin"
	"github.com/mattermost/mattermost/server/public/pluginapi"
	"github.com/mattermost/mattermost/server/public/pluginapi/cluster"
	"github.com/pkg/errors"

	"github.com/mattermost/sharepoint-list-sync-plugin/server/adapter"
	"github.com/mattermost/sharepoint-list-sync-plugin/server/store/kvstore"
)

// Plugin implements the interface expected by the Mattermost server to communicate between the server and plugin processes.
type Plugin struct {
	plugin.MattermostPlugin

	// client is the Mattermost server API client.
	client *pluginapi.Client

	// backgroundJob snapshots the configured list on the configured time interval.
	backgroundJob *cluster.Job

	// store persists list snapshots and sync timestamps.
	store kvstore.KVStore

	// router serves the item API under the plugin's HTTP path.
	router *mux.Router

	// adapterLock synchronizes access to listAdapter.
	adapterLock sync.RWMutex

	// listAdapter serves the configured SharePoint list. Nil while the plugin is unconfigured.
	listAdapter *adapter.Adapter

	// configurationLock synchronizes access to the configuration.
	configurationLock sync.RWMutex

	// configuration is the active plugin configuration. Consult getConfiguration and
	// setConfiguration for usage.
	configuration *configuration
}

// OnActivate is invoked when the plugin is activated. If an error is returned, the plugin will be deactivated.
func (p *Plugin) OnActivate() error {
	p.client = pluginapi.NewClient(p.API, p.Driver)
	p.store = kvstore.NewKVStore(p.client)
	p.router = p.initRouter()

	// Using cluster.Schedule ensures only one server instance snapshots the list
	// in multi-server deployments (automatic leader election and failover).
	job, err := cluster.Schedule(
		p.API,
		"SharePointListSync",
		p.nextWaitInterval,
		p.runSync,
	)
	if err != nil {
		return errors.Wrap(err, "failed to schedule list sync job")
	}

	p.backgroundJob = job

	return nil
}

// OnDeactivate is invoked when the plugin is deactivated.
// Cleans up the list sync cluster job to prevent orphaned resources.
func (p *Plugin) OnDeactivate() error {
	if p.backgroundJob != nil {
		if err := p.backgroundJob.Close(); err != nil {
			p.API.LogError("Failed to close list sync job", "err", err)
		}
	}
	return nil
}

// ServeHTTP routes plugin HTTP requests to the item API.
func (p *Plugin) ServeHTTP(_ *plugin.Context, w http.ResponseWriter, r *http.Request) {
	p.router.ServeHTTP(w, r)
}

func (p *Plugin) getAdapter() *adapter.Adapter {
	p.adapterLock.RLock()
	defer p.adapterLock.RUnlock()
	return p.listAdapter
}

func (p *Plugin) setAdapter(a *adapter.Adapter) {
	p.adapterLock.Lock()
	defer p.adapterLock.Unlock()
	p.listAdapter = a
}

// See https://developers.mattermost.com/extend/plugins/server/reference/
