package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func pollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "poll",
		Short: "Run a single poll cycle",
		Long:  "Fetches notifications once, alerts on the new ones and records them as seen. Suited to cron.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			result, err := a.poller.Tick(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("fetched %d, new %d, dispatched %d, failed %d\n",
				result.Fetched, result.New, result.Dispatched, result.Failed)
			return nil
		},
	}
}
