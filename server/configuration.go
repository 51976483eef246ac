package main

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/mattermost/sharepoint-list-sync-plugin/server/adapter"
	"github.com/mattermost/sharepoint-list-sync-plugin/server/sharepoint"
)

// defaultSyncIntervalMinutes applies when SyncIntervalMinutes is unset.
const defaultSyncIntervalMinutes = 60

// configuration holds the plugin settings from plugin.json. Public fields are
// loaded from the server configuration in OnConfigurationChange.
//
// The active configuration is swapped as a whole under configurationLock and
// never modified in place; use Clone to derive a changed copy.
type configuration struct {
	// SiteURL is the SharePoint site holding the list.
	SiteURL  string
	Username string
	Password string

	// ListTitle and ListID identify the synced list. Both are required.
	ListTitle string
	ListID    string

	// SyncIntervalMinutes controls how often the list snapshot job runs.
	SyncIntervalMinutes int
}

// Clone copies the configuration. All fields are values, so a shallow copy suffices.
func (c *configuration) Clone() *configuration {
	var clone = *c
	return &clone
}

// IsValid checks the settings needed to build a list adapter.
func (c *configuration) IsValid() error {
	if strings.TrimSpace(c.SiteURL) == "" {
		return errors.New("SharePoint site URL is required")
	}
	if strings.TrimSpace(c.ListID) == "" {
		return errors.New("SharePoint list Id is required")
	}
	if strings.TrimSpace(c.ListTitle) == "" {
		return errors.New("SharePoint list Title is required")
	}
	if c.SyncIntervalMinutes < 0 {
		return errors.New("sync interval must not be negative")
	}
	return nil
}

// syncInterval returns how long to wait between list snapshot runs.
func (c *configuration) syncInterval() time.Duration {
	if c.SyncIntervalMinutes <= 0 {
		return defaultSyncIntervalMinutes * time.Minute
	}
	return time.Duration(c.SyncIntervalMinutes) * time.Minute
}

// adapterConfig maps the plugin settings to the list adapter configuration.
func (c *configuration) adapterConfig() adapter.Config {
	return adapter.Config{
		Store: sharepoint.Options{
			SiteURL:  c.SiteURL,
			Username: c.Username,
			Password: c.Password,
		},
		ListTitle: c.ListTitle,
		ListID:    c.ListID,
	}
}

// getConfiguration retrieves the active configuration under lock, making it safe to use
// concurrently. The active configuration may change underneath the client of this method, but
// the struct returned by this API call is considered immutable.
func (p *Plugin) getConfiguration() *configuration {
	p.configurationLock.RLock()
	defer p.configurationLock.RUnlock()

	if p.configuration == nil {
		return &configuration{}
	}

	return p.configuration
}

// setConfiguration replaces the active configuration under lock.
//
// Do not call it while holding configurationLock. It panics when handed the
// active configuration, which means that struct was modified without Clone.
func (p *Plugin) setConfiguration(configuration *configuration) {
	p.configurationLock.Lock()
	defer p.configurationLock.Unlock()

	if configuration != nil && p.configuration == configuration {
		panic("setConfiguration called with the existing configuration")
	}

	p.configuration = configuration
}

// OnConfigurationChange is invoked when configuration changes may have been made.
//
// A new list adapter, and with it a fresh SharePoint session, is built for every
// configuration. An invalid configuration leaves the plugin running without an adapter
// so the API reports it as unconfigured instead of failing activation.
func (p *Plugin) OnConfigurationChange() error {
	var configuration = new(configuration)

	// Load the public configuration fields from the Mattermost server configuration.
	if err := p.API.LoadPluginConfiguration(configuration); err != nil {
		return errors.Wrap(err, "failed to load plugin configuration")
	}

	p.setConfiguration(configuration)

	if err := configuration.IsValid(); err != nil {
		p.API.LogWarn("SharePoint list sync is not configured", "reason", err.Error())
		p.setAdapter(nil)
		return nil
	}

	listAdapter, err := adapter.New(configuration.adapterConfig(), adapter.WithLogger(p.API))
	if err != nil {
		return errors.Wrap(err, "failed to create list adapter")
	}
	p.setAdapter(listAdapter)

	return nil
}
