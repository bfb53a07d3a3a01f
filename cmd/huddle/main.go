package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/garrettladley/huddle/internal/version"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "huddle",
		Short:   "Desktop alerts for your huddle notifications",
		Version: version.Get(),
	}

	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(pollCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(seenCmd())
	rootCmd.AddCommand(authCmd())
	addDevCommands(rootCmd)

	if err := fang.Execute(context.Background(), rootCmd, fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM)); err != nil {
		os.Exit(1)
	}
}
