//go:build !release

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func addDevCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(notifyCmd())
}

func notifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Local notification tools",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "test",
		Short: "Send a test notification without touching the seen-set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if err := a.poller.SendTest(ctx); err != nil {
				return err
			}
			fmt.Printf("Sent test notification via %s.\n", a.dispatcher.Method())
			return nil
		},
	})
	return cmd
}
