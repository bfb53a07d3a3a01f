package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/garrettladley/huddle/internal/poller"
	"github.com/garrettladley/huddle/internal/xslog"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Poll for notifications and show desktop alerts",
		Long: "Polls the server on a fixed interval and raises a desktop alert for every new notification.\n" +
			"SIGUSR1 pauses polling (app backgrounded), SIGUSR2 resumes it (app foregrounded).",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			return watch(ctx, a)
		},
	}
}

func watch(ctx context.Context, a *app) error {
	if err := a.poller.Start(ctx); err != nil {
		if errors.Is(err, poller.ErrPermissionDenied) {
			return fmt.Errorf("notifications are disabled or no notification method is available (HUDDLE_NOTIFY_METHOD=%s): %w", a.cfg.NotifyMethod, err)
		}
		return err
	}
	defer a.poller.Stop()

	lifecycle := make(chan os.Signal, 1)
	if sigs := lifecycleSignals(); len(sigs) > 0 {
		signal.Notify(lifecycle, sigs...)
		defer signal.Stop(lifecycle)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case sig := <-lifecycle:
				if err := handleLifecycle(ctx, a, sig); err != nil {
					a.logger.WarnContext(ctx, "failed to resume polling", xslog.Error(err))
				}
			}
		}
	})

	return g.Wait()
}

func handleLifecycle(ctx context.Context, a *app, sig os.Signal) error {
	switch {
	case isBackground(sig):
		a.logger.InfoContext(ctx, "backgrounded, pausing polling")
		a.poller.Stop()
	case isForeground(sig):
		a.logger.InfoContext(ctx, "foregrounded, resuming polling")
		return a.poller.Start(ctx)
	}
	return nil
}
