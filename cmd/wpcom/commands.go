package main

import (
	"net/http"
	"strings"

	"github.com/samvad-hq/wpcom-harvester/pkg/wpcom"
	"github.com/spf13/cobra"
)

// paramFlags are the -p/--data flags shared by every request command.
type paramFlags struct {
	pairs []string
	data  string
}

func (p *paramFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&p.pairs, "param", "p", nil, "request param key=value (repeatable)")
	cmd.Flags().StringVar(&p.data, "data", "", "request params as a JSON object")
}

func (p *paramFlags) params() (wpcom.Params, error) {
	return parseParams(p.pairs, p.data)
}

func newCallCmd(o *rootOptions) *cobra.Command {
	var (
		pf     paramFlags
		method string
	)
	cmd := &cobra.Command{
		Use:   "call <route>",
		Short: "Send a request to any route, e.g. sites/example.com/posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := pf.params()
			if err != nil {
				return err
			}
			return o.print(o.client.Do(cmd.Context(), strings.ToUpper(method), args[0], params))
		},
	}
	cmd.Flags().StringVarP(&method, "method", "X", http.MethodGet, "HTTP method")
	pf.register(cmd)
	return cmd
}

func newSitesCmd(o *rootOptions) *cobra.Command {
	var pf paramFlags
	cmd := &cobra.Command{
		Use:   "sites",
		Short: "List the sites of the token's user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := pf.params()
			if err != nil {
				return err
			}
			return o.print(o.client.MeSites(cmd.Context(), params))
		},
	}
	pf.register(cmd)
	return cmd
}

func newPostsCmd(o *rootOptions) *cobra.Command {
	var pf paramFlags
	cmd := &cobra.Command{
		Use:   "posts <site>",
		Short: "List posts of a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := pf.params()
			if err != nil {
				return err
			}
			return o.print(o.client.Posts(cmd.Context(), args[0], params))
		},
	}
	pf.register(cmd)
	return cmd
}

func newStatsCmd(o *rootOptions) *cobra.Command {
	var pf paramFlags
	cmd := &cobra.Command{
		Use:   "stats <site> [report]",
		Short: "Show the stats overview or one report (" + strings.Join(wpcom.Reports, ", ") + ")",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := pf.params()
			if err != nil {
				return err
			}
			report := ""
			if len(args) == 2 {
				report = args[1]
			}
			return o.print(o.client.StatsReport(cmd.Context(), args[0], report, params))
		},
	}
	pf.register(cmd)
	return cmd
}

func newMediaCmd(o *rootOptions) *cobra.Command {
	var pf paramFlags
	cmd := &cobra.Command{
		Use:   "media <site> [media-id]",
		Short: "List media of a site or show one item",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := pf.params()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return o.print(o.client.AllMedia(cmd.Context(), args[0], params))
			}
			mediaID, err := parseID("media-id", args[1])
			if err != nil {
				return err
			}
			return o.print(o.client.MediaItem(cmd.Context(), args[0], mediaID, params))
		},
	}
	pf.register(cmd)
	return cmd
}

func newMenusCmd(o *rootOptions) *cobra.Command {
	var pf paramFlags
	cmd := &cobra.Command{
		Use:   "menus <site> [menu-id]",
		Short: "List navigation menus of a site or show one menu",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := pf.params()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return o.print(o.client.Menus(cmd.Context(), args[0], params))
			}
			menuID, err := parseID("menu-id", args[1])
			if err != nil {
				return err
			}
			return o.print(o.client.Menu(cmd.Context(), args[0], menuID, params))
		},
	}
	pf.register(cmd)
	return cmd
}

func newUsersCmd(o *rootOptions) *cobra.Command {
	var pf paramFlags
	cmd := &cobra.Command{
		Use:   "users <site> [user-id]",
		Short: "List users of a site or show one user",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := pf.params()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return o.print(o.client.Users(cmd.Context(), args[0], params))
			}
			userID, err := parseID("user-id", args[1])
			if err != nil {
				return err
			}
			return o.print(o.client.User(cmd.Context(), args[0], userID, params))
		},
	}
	pf.register(cmd)
	return cmd
}
