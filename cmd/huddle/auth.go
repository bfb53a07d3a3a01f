package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/garrettladley/huddle/internal/oauth"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the stored bearer token",
	}
	cmd.AddCommand(loginCmd())
	cmd.AddCommand(logoutCmd())
	return cmd
}

func loginCmd() *cobra.Command {
	var (
		accessToken  string
		refreshToken string
		expiresIn    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a bearer token for the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if accessToken == "" {
				return errors.New("--token is required")
			}

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			token := &oauth2.Token{
				AccessToken:  accessToken,
				TokenType:    "Bearer",
				RefreshToken: refreshToken,
			}
			if expiresIn > 0 {
				token.Expiry = time.Now().Add(expiresIn)
			}

			if err := oauth.Save(ctx, a.local, token); err != nil {
				return err
			}

			fmt.Println("Token stored.")
			if !token.Expiry.IsZero() {
				fmt.Printf("Token expires: %s\n", token.Expiry.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&accessToken, "token", "", "access token")
	cmd.Flags().StringVar(&refreshToken, "refresh-token", "", "refresh token used once the access token expires")
	cmd.Flags().DurationVar(&expiresIn, "expires-in", 0, "access token lifetime, zero for no expiry")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Delete the stored bearer token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if err := oauth.Delete(ctx, a.local); err != nil {
				return err
			}
			fmt.Println("Token deleted.")
			return nil
		},
	}
}
