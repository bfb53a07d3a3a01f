package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func seenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seen",
		Short: "Inspect or reset the seen notification IDs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget every seen notification ID",
		Long:  "Removes the persisted seen-set. The next poll alerts on every notification the server returns.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if err := a.seen.Clear(ctx); err != nil {
				return err
			}
			fmt.Println("Cleared seen notifications.")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "count",
		Short: "Print the number of seen notification IDs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			fmt.Println(len(a.seen.Load(ctx)))
			return nil
		},
	})

	return cmd
}
