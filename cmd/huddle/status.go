package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/garrettladley/huddle/internal/dispatch"
	"github.com/garrettladley/huddle/internal/oauth"
	"github.com/garrettladley/huddle/internal/theme"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show seen-set size, notification method and auth state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			t := theme.New()
			stats := a.poller.Stats(ctx)

			polling := t.Warn("no")
			if stats.Polling {
				polling = t.OK("yes")
			}

			status, err := a.permissions.Request(ctx)
			if err != nil {
				return err
			}
			permission := t.Error(string(status))
			if status == dispatch.StatusGranted {
				permission = t.OK(string(status))
			}

			auth := t.OK("env token")
			if a.cfg.Token == "" {
				has, err := oauth.NewStoreTokenSource(a.cfg.ServerURL, a.local).HasToken(ctx)
				switch {
				case err != nil:
					auth = t.Error(err.Error())
				case has:
					auth = t.OK("stored token")
				default:
					auth = t.Warn("not logged in")
				}
			}

			fmt.Println(t.Rows("huddle "+cmd.Root().Version,
				t.Row("server", a.cfg.ServerURL),
				t.Row("auth", auth),
				t.Row("seen", stats.SeenCount),
				t.Row("backend", a.cfg.SeenBackend),
				t.Row("interval", a.poller.Interval()),
				t.Row("method", a.dispatcher.Method()),
				t.Row("permission", permission),
				t.Row("polling", polling),
			))
			return nil
		},
	}
}
