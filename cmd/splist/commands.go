package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mattermost/sharepoint-list-sync-plugin/server/adapter"
	"github.com/mattermost/sharepoint-list-sync-plugin/server/sharepoint"
	listsync "github.com/mattermost/sharepoint-list-sync-plugin/server/sync"
)

type rootOptions struct {
	siteURL   string
	username  string
	password  string
	listID    string
	listTitle string
	timeout   time.Duration
	verbose   bool
}

// newRootCmd builds the command tree. Output goes to out, logs to errOut, so
// tests can run fresh instances in isolation.
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "splist",
		Short:        "Create, read, update, delete and list SharePoint list items",
		SilenceUsage: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.siteURL, "site", os.Getenv("SHAREPOINT_SITE_URL"), "SharePoint site URL")
	flags.StringVar(&opts.username, "username", os.Getenv("SHAREPOINT_USERNAME"), "SharePoint username")
	flags.StringVar(&opts.password, "password", os.Getenv("SHAREPOINT_PASSWORD"), "SharePoint password")
	flags.StringVar(&opts.listID, "list-id", os.Getenv("SHAREPOINT_LIST_ID"), "list Id (GUID)")
	flags.StringVar(&opts.listTitle, "list-title", os.Getenv("SHAREPOINT_LIST_TITLE"), "list Title")
	flags.DurationVar(&opts.timeout, "timeout", 30*time.Second, "request timeout")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log adapter activity to stderr")

	cmd.AddCommand(
		newCreateCmd(opts),
		newReadCmd(opts),
		newUpdateCmd(opts),
		newDeleteCmd(opts),
		newListCmd(opts),
		newDiffCmd(opts),
	)

	return cmd
}

func newCreateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create <json>",
		Short: "Create an item from a JSON object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := parseItem(args[0])
			if err != nil {
				return err
			}
			return run(cmd, opts, func(ctx context.Context, a *adapter.Adapter) (interface{}, error) {
				return a.Create(ctx, adapter.CreateRequest{Data: data})
			})
		},
	}
}

func newReadCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Read a single item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := sharepoint.ParseItemID(args[0])
			if err != nil {
				return err
			}
			return run(cmd, opts, func(ctx context.Context, a *adapter.Adapter) (interface{}, error) {
				return a.Read(ctx, adapter.ReadRequest{ID: id})
			})
		},
	}
}

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <json>",
		Short: "Merge fields into an existing item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := sharepoint.ParseItemID(args[0])
			if err != nil {
				return err
			}
			data, err := parseItem(args[1])
			if err != nil {
				return err
			}
			return run(cmd, opts, func(ctx context.Context, a *adapter.Adapter) (interface{}, error) {
				return a.Update(ctx, adapter.UpdateRequest{ID: id, Data: data})
			})
		},
	}
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an item and print what was removed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := sharepoint.ParseItemID(args[0])
			if err != nil {
				return err
			}
			return run(cmd, opts, func(ctx context.Context, a *adapter.Adapter) (interface{}, error) {
				return a.Delete(ctx, adapter.DeleteRequest{ID: id})
			})
		},
	}
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every item keyed by item id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, a *adapter.Adapter) (interface{}, error) {
				return a.List(ctx, adapter.ListRequest{})
			})
		},
	}
}

func newDiffCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <export.json>",
		Short: "Compare the live list with a saved `list` export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := listsync.NewFileSource(opts.listID, args[0]).List(cmd.Context(), adapter.ListRequest{})
			if err != nil {
				return err
			}
			return run(cmd, opts, func(ctx context.Context, a *adapter.Adapter) (interface{}, error) {
				live, err := a.List(ctx, adapter.ListRequest{})
				if err != nil {
					return nil, err
				}
				return listsync.DiffSnapshots(saved, live), nil
			})
		},
	}
}

type operation func(ctx context.Context, a *adapter.Adapter) (interface{}, error)

func run(cmd *cobra.Command, opts *rootOptions, op operation) error {
	listAdapter, err := opts.adapter(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	res, err := op(ctx, listAdapter)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func (o *rootOptions) adapter(errOut io.Writer) (*adapter.Adapter, error) {
	if strings.TrimSpace(o.siteURL) == "" {
		return nil, errors.New("--site or SHAREPOINT_SITE_URL is required")
	}

	return adapter.New(adapter.Config{
		Store: sharepoint.Options{
			SiteURL:  o.siteURL,
			Username: o.username,
			Password: o.password,
			Timeout:  o.timeout,
		},
		ListID:    o.listID,
		ListTitle: o.listTitle,
	}, adapter.WithLogger(newLogger(errOut, o.verbose)))
}

func parseItem(raw string) (sharepoint.Item, error) {
	var item sharepoint.Item
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&item); err != nil {
		return nil, errors.Wrap(err, "item must be a JSON object")
	}
	if item == nil {
		return nil, errors.New("item must be a JSON object")
	}
	return item, nil
}
