package main

import (
	"fmt"
	"time"

	"go_vocab_sets/internal/config"
	"go_vocab_sets/internal/service"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newTokenCommand() *cobra.Command {
	var (
		userID string
		name   string
		ttl    time.Duration
	)
	tokenCommand := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed session token for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(); err != nil {
				return err
			}
			id := uuid.New()
			if userID != "" {
				parsed, err := uuid.Parse(userID)
				if err != nil {
					return fmt.Errorf("invalid --user: %w", err)
				}
				id = parsed
			}
			token, err := service.IssueToken(config.Cfg.Auth.JWTSecret, id, name, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "user=%s login URL: /auth/callback?token=%s\n", id, token)
			return nil
		},
	}
	tokenCommand.Flags().StringVar(&userID, "user", "", "user id (uuid); random when empty")
	tokenCommand.Flags().StringVar(&name, "name", "", "display name")
	tokenCommand.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return tokenCommand
}
